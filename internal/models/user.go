package models

import "time"

// User represents a registered platform user. Registration is gated on
// the institutional email domain.
type User struct {
	ID        string    `json:"id"` // UUID
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
