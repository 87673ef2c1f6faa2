package models

import (
	"database/sql"
	"time"
)

// Session represents one row of the check_ins table: a single physical
// visit. CreatedAt is the check-in time; CheckOutAt stays null while the
// member is inside.
type Session struct {
	ID         int64        `json:"id"`
	MemberID   int64        `json:"member_id"`
	CheckOutAt sql.NullTime `json:"check_out_at,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// Open reports whether the session has not been closed yet.
func (s *Session) Open() bool {
	return !s.CheckOutAt.Valid
}
