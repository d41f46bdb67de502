package models

import "time"

// ChatSession is a time- and message-count-bounded chat channel between
// exactly two participants negotiating the return of one item.
type ChatSession struct {
	// ID is the unique identifier for the session (UUID).
	ID string `json:"id"`
	// ItemID references the item under negotiation.
	ItemID string `json:"item_id"`
	// Participants holds the requester and the item owner. The pair is
	// fixed at creation and never changes.
	Participants [2]string `json:"participants"`
	// Messages is always empty in the stored record; the message log is
	// kept separately by the store. Present so session responses carry
	// an explicit empty list.
	Messages []ChatMessage `json:"messages"`
	// CreatedAt is the moment the session was opened.
	CreatedAt time.Time `json:"created_at"`
	// ExpiresAt is CreatedAt plus the session TTL, fixed at creation.
	ExpiresAt time.Time `json:"expires_at"`
	// IsActive flips to false exactly once, on terminal expiry.
	IsActive bool `json:"is_active"`
}

// ChatMessage is one message in a session's append-only log. The JSON
// form is also the wire representation pushed to connected clients:
// session_id never leaves the server.
type ChatMessage struct {
	ID        string    `json:"id"` // UUID
	SessionID string    `json:"-"`
	SenderID  string    `json:"sender_id"`
	Message   string    `json:"message"` // raw text payload, unvalidated
	Timestamp time.Time `json:"timestamp"`
}
