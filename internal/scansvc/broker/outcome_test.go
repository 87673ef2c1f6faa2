package broker_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aurapass/kiosk-services/internal/comm"
	"github.com/aurapass/kiosk-services/internal/scansvc/broker"
	"github.com/aurapass/kiosk-services/internal/scansvc/engine"
	"github.com/aurapass/kiosk-services/internal/scansvc/models"
)

var at = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func testMember() *models.Member {
	return &models.Member{
		ID:                   1,
		UniqueId:             "mem_aKqXv5Pz",
		Name:                 "Dana Cruz",
		MembershipExpiryDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		ProfilePhoto:         sql.NullString{String: "photos/dana.jpg", Valid: true},
	}
}

func TestMonitorEventNames(t *testing.T) {
	m := testMember()

	cases := []struct {
		out    engine.Outcome
		event  string
		reason string
	}{
		{engine.Outcome{Kind: engine.CheckedIn, Member: m}, comm.EventCheckedIn, ""},
		{engine.Outcome{Kind: engine.CheckedOut, Member: m}, comm.EventCheckedOut, ""},
		{engine.Outcome{Kind: engine.NotFound}, comm.EventScanFailed, "not_found"},
		{engine.Outcome{Kind: engine.Ignored, Member: m}, comm.EventScanFailed, "ignored"},
		{engine.Outcome{Kind: engine.Rejected, Reason: engine.ReasonExpired, Member: m}, comm.EventScanFailed, "expired"},
		{engine.Outcome{Kind: engine.Rejected, Reason: engine.ReasonNoPhoto, Member: m}, comm.EventScanFailed, "no_photo"},
	}

	for _, c := range cases {
		ev := broker.MonitorEventFor(c.out, at)
		require.Equal(t, c.event, ev.Event)
		require.Equal(t, c.reason, ev.Reason)
	}
}

func TestMonitorEventMemberProjection(t *testing.T) {
	ev := broker.MonitorEventFor(engine.Outcome{Kind: engine.CheckedIn, Member: testMember()}, at)
	require.NotNil(t, ev.Member)
	require.Equal(t, "Dana Cruz", ev.Member.Name)
	require.Equal(t, "2026-04-01", ev.Member.ExpiryDate)
	require.Equal(t, "photos/dana.jpg", ev.Member.Photo)

	// Unknown code: the screen gets a null member.
	ev = broker.MonitorEventFor(engine.Outcome{Kind: engine.NotFound}, at)
	require.Nil(t, ev.Member)
}

func TestNoticeSkipsIgnored(t *testing.T) {
	_, ok := broker.NoticeFor(engine.Outcome{Kind: engine.Ignored, Member: testMember()}, "mem_aKqXv5Pz", at)
	require.False(t, ok)
}

func TestNoticeContents(t *testing.T) {
	m := testMember()

	notice, ok := broker.NoticeFor(engine.Outcome{Kind: engine.NotFound}, "xyz", at)
	require.True(t, ok)
	require.Equal(t, "Scan Failed", notice.Title)
	require.Equal(t, "Invalid QR Code Scanned: xyz", notice.Body)
	require.Equal(t, "danger", notice.Level)

	notice, ok = broker.NoticeFor(engine.Outcome{Kind: engine.Rejected, Reason: engine.ReasonExpired, Member: m}, m.UniqueId, at)
	require.True(t, ok)
	require.Equal(t, "Entry Denied", notice.Title)
	require.Equal(t, "Expired Membership: Dana Cruz", notice.Body)

	notice, ok = broker.NoticeFor(engine.Outcome{Kind: engine.Rejected, Reason: engine.ReasonNoPhoto, Member: m}, m.UniqueId, at)
	require.True(t, ok)
	require.Equal(t, "Strict Mode Denied", notice.Title)

	notice, ok = broker.NoticeFor(engine.Outcome{Kind: engine.CheckedIn, Member: m}, m.UniqueId, at)
	require.True(t, ok)
	require.Equal(t, "Member Entered", notice.Title)
	require.Equal(t, "success", notice.Level)

	notice, ok = broker.NoticeFor(engine.Outcome{Kind: engine.CheckedOut, Member: m}, m.UniqueId, at)
	require.True(t, ok)
	require.Equal(t, "Member Left", notice.Title)
	require.Equal(t, "info", notice.Level)
}
