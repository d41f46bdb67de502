package models

import "time"

// ItemType розрізняє оголошення про загублені та знайдені речі.
type ItemType string

const (
	ItemTypeLost  ItemType = "lost"
	ItemTypeFound ItemType = "found"
)

// Item represents a single lost-or-found report posted by a user.
type Item struct {
	ID          string    `json:"id"` // UUID
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        ItemType  `json:"type"`
	Location    string    `json:"location"`
	ImageURL    string    `json:"image_url,omitempty"`
	ContactInfo string    `json:"contact_info"`
	UserID      string    `json:"user_id"` // owner of the report
	CreatedAt   time.Time `json:"created_at"`
}
