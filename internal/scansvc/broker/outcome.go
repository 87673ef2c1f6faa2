package broker

import (
	"fmt"
	"time"

	"github.com/aurapass/kiosk-services/internal/comm"
	"github.com/aurapass/kiosk-services/internal/scansvc/engine"
	"github.com/aurapass/kiosk-services/internal/scansvc/models"
)

// MonitorEventFor maps an engine outcome to the event broadcast on the
// monitor-screen channel. Every outcome is shown, including debounced
// ones; the screen decides what to render.
func MonitorEventFor(out engine.Outcome, at time.Time) comm.MonitorEvent {
	ev := comm.MonitorEvent{
		Member: memberView(out.Member),
		At:     at,
	}

	switch out.Kind {
	case engine.CheckedIn:
		ev.Event = comm.EventCheckedIn
	case engine.CheckedOut:
		ev.Event = comm.EventCheckedOut
	case engine.NotFound:
		ev.Event = comm.EventScanFailed
		ev.Reason = "not_found"
	case engine.Ignored:
		ev.Event = comm.EventScanFailed
		ev.Reason = "ignored"
	case engine.Rejected:
		ev.Event = comm.EventScanFailed
		ev.Reason = string(out.Reason)
	}

	return ev
}

// NoticeFor builds the admin notification for an outcome. The second
// return is false for Ignored: debounce exists to absorb double-taps, so
// alerting every admin about one would be spam.
func NoticeFor(out engine.Outcome, code string, at time.Time) (comm.AdminNotice, bool) {
	notice := comm.AdminNotice{
		Member: memberView(out.Member),
		At:     at,
	}

	switch out.Kind {
	case engine.NotFound:
		notice.Title = "Scan Failed"
		notice.Body = fmt.Sprintf("Invalid QR Code Scanned: %s", code)
		notice.Level = "danger"
	case engine.Rejected:
		if out.Reason == engine.ReasonNoPhoto {
			notice.Title = "Strict Mode Denied"
			notice.Body = fmt.Sprintf("%s has no profile photo.", out.Member.Name)
		} else {
			notice.Title = "Entry Denied"
			notice.Body = fmt.Sprintf("Expired Membership: %s", out.Member.Name)
		}
		notice.Level = "danger"
	case engine.CheckedIn:
		notice.Title = "Member Entered"
		notice.Body = fmt.Sprintf("%s checked in.", out.Member.Name)
		notice.Level = "success"
	case engine.CheckedOut:
		notice.Title = "Member Left"
		notice.Body = fmt.Sprintf("%s checked out.", out.Member.Name)
		notice.Level = "info"
	default:
		return comm.AdminNotice{}, false
	}

	return notice, true
}

func memberView(m *models.Member) *comm.MemberView {
	if m == nil {
		return nil
	}

	view := &comm.MemberView{
		UniqueId:   m.UniqueId,
		Name:       m.Name,
		ExpiryDate: m.MembershipExpiryDate.Format("2006-01-02"),
	}
	if m.ProfilePhoto.Valid {
		view.Photo = m.ProfilePhoto.String
	}

	return view
}
