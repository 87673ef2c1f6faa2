package models

import (
	"database/sql"
	"time"
)

// Member represents the members table. UniqueId is the opaque code encoded
// in the QR badge, assigned once at creation and never reused.
type Member struct {
	ID                   int64          `json:"id"`
	UniqueId             string         `json:"unique_id"`
	Name                 string         `json:"name"`
	Email                sql.NullString `json:"email,omitempty"`
	MembershipExpiryDate time.Time      `json:"membership_expiry_date"` // date-grained
	ProfilePhoto         sql.NullString `json:"profile_photo,omitempty"`
	DeletedAt            sql.NullTime   `json:"deleted_at,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// HasPhoto reports whether the member has a usable profile photo on file.
func (m *Member) HasPhoto() bool {
	return m.ProfilePhoto.Valid && m.ProfilePhoto.String != ""
}
