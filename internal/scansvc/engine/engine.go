package engine

import (
	"time"

	"github.com/aurapass/kiosk-services/internal/scansvc/models"
)

// Kind is the variant tag of a scan outcome.
type Kind string

const (
	NotFound   Kind = "not_found"
	Rejected   Kind = "rejected"
	Ignored    Kind = "ignored"
	CheckedIn  Kind = "checked_in"
	CheckedOut Kind = "checked_out"
)

// Reason qualifies a Rejected outcome.
type Reason string

const (
	ReasonExpired Reason = "expired"
	ReasonNoPhoto Reason = "no_photo"
)

// Outcome is the engine's decision for a single scan. Member is nil only
// for NotFound. Session is the open session the scan matched: for
// CheckedOut it is the session to close, for Ignored the one left alone.
type Outcome struct {
	Kind    Kind
	Reason  Reason
	Member  *models.Member
	Session *models.Session
}

// Decide maps one scan to an outcome. It is a pure function of its inputs:
// no I/O, no mutation, no errors. Business rules are evaluated in strict
// order, first match wins, so eligibility is settled before session state
// is even considered and a rejected scan can never touch the ledger.
//
// open must already be filtered to the auto-checkout window by the caller;
// stale sessions are invisible here.
func Decide(member *models.Member, open *models.Session, now time.Time, cfg models.Settings, force bool) Outcome {
	if member == nil {
		return Outcome{Kind: NotFound}
	}

	if Expired(member, now) {
		return Outcome{Kind: Rejected, Reason: ReasonExpired, Member: member}
	}

	if cfg.StrictMode && !member.HasPhoto() {
		return Outcome{Kind: Rejected, Reason: ReasonNoPhoto, Member: member}
	}

	if open != nil {
		// Double-tap protection: a second read of the same badge right
		// after check-in is not a checkout. Admin force scans skip this.
		if !force && now.Sub(open.CreatedAt) < cfg.Debounce() {
			return Outcome{Kind: Ignored, Member: member, Session: open}
		}
		return Outcome{Kind: CheckedOut, Member: member, Session: open}
	}

	return Outcome{Kind: CheckedIn, Member: member}
}

// Expired reports whether the membership has lapsed as of now. The check
// is date-grained: members stay valid through their entire expiry day.
func Expired(member *models.Member, now time.Time) bool {
	return member.MembershipExpiryDate.Before(startOfDay(now))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
