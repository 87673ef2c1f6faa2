package models

import "time"

// Settings is the gym_settings singleton row. CameraMirror and
// EmailRemindersEnabled are stored for the admin UI but never read by the
// scan engine.
type Settings struct {
	ID                    int64     `json:"id"`
	CameraMirror          bool      `json:"camera_mirror"`
	KioskDebounceSeconds  int       `json:"kiosk_debounce_seconds"`
	StrictMode            bool      `json:"strict_mode"` // require photo for entry
	AutoCheckoutHours     int       `json:"auto_checkout_hours"`
	EmailRemindersEnabled bool      `json:"email_reminders_enabled"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// DefaultSettings are used when the singleton row has not been created yet.
func DefaultSettings() Settings {
	return Settings{
		CameraMirror:          true,
		KioskDebounceSeconds:  10,
		StrictMode:            false,
		AutoCheckoutHours:     12,
		EmailRemindersEnabled: true,
	}
}

// Debounce is the double-scan protection window.
func (s Settings) Debounce() time.Duration {
	return time.Duration(s.KioskDebounceSeconds) * time.Second
}

// AutoCheckoutWindow is how long an open session stays visible to the
// engine before it is treated as abandoned.
func (s Settings) AutoCheckoutWindow() time.Duration {
	return time.Duration(s.AutoCheckoutHours) * time.Hour
}
