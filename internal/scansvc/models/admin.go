package models

import "time"

// Admin represents the users table; every admin receives a copy of scan
// notifications.
type Admin struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
