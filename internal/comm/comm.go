package comm

import (
	"encoding/json"
	"time"
)

// NATS topics shared by scansvc and monitorsvc.
const (
	TopicScanQueue   = "scan.kiosk"
	TopicMonitor     = "monitor.screen"
	TopicAdminNotice = "admin.notice"
)

// Broadcast channels a socket can join.
const (
	ChannelMonitor = "monitor-screen"
	ChannelAdmin   = "admin"
)

// Monitor event names.
const (
	EventCheckedIn  = "member.checked_in"
	EventCheckedOut = "member.checked_out"
	EventScanFailed = "member.scan_failed"
)

type WSMessage struct {
	Type     string          `json:"type"` // e.g. "init", "monitor-event"
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid"`
}

// ScanJob is one unit of kiosk work on the scan queue.
type ScanJob struct {
	Code      string    `json:"code"`
	Force     bool      `json:"force"` // admin override, bypasses debounce
	RequestId string    `json:"request_id"`
	ScannedAt time.Time `json:"scanned_at"`
}

// MemberView is the minimal member projection sent to screens.
type MemberView struct {
	UniqueId   string `json:"unique_id"`
	Name       string `json:"name"`
	ExpiryDate string `json:"expiry_date"`
	Photo      string `json:"photo,omitempty"`
}

// MonitorEvent is broadcast on the monitor-screen channel. Event is one of
// member.checked_in, member.checked_out, member.scan_failed. Reason is set
// only for member.scan_failed: expired, no_photo, not_found or ignored.
type MonitorEvent struct {
	Event  string      `json:"event"`
	Reason string      `json:"reason,omitempty"`
	Member *MemberView `json:"member"` // null when the code is unknown
	At     time.Time   `json:"at"`
}

// AdminNotice is broadcast to admin clients and persisted per admin.
type AdminNotice struct {
	Title  string      `json:"title"`
	Body   string      `json:"body"`
	Level  string      `json:"level"` // success | info | danger
	Member *MemberView `json:"member,omitempty"`
	At     time.Time   `json:"at"`
}

// ChannelInit is the payload of the socket "init" message, declaring which
// broadcast channel the socket wants.
type ChannelInit struct {
	Channel string `json:"channel"` // monitor-screen | admin
}
