package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ChatSessionArchive is the PostgreSQL record written for a session that
// the retention sweeper removed from the in-memory store. The embedded
// gorm.Model provides the archive row ID and timestamps.
type ChatSessionArchive struct {
	gorm.Model

	// SessionID is the original in-memory session UUID.
	SessionID string `gorm:"type:uuid;not null;uniqueIndex"`
	// ItemID references the item that was under negotiation.
	ItemID string `gorm:"type:uuid;not null;index"`
	// Participants holds the two user IDs of the session.
	Participants pq.StringArray `gorm:"type:text[]"`
	// OpenedAt and ExpiredAt mirror the session's created_at/expires_at.
	OpenedAt  time.Time
	ExpiredAt time.Time
	// MessageCount is the length of the archived message log.
	MessageCount int
}

// ChatMessageArchive is one archived message of a swept session.
type ChatMessageArchive struct {
	gorm.Model

	SessionID string `gorm:"type:uuid;not null;index:idx_archive_session_msg"`
	MessageID string `gorm:"type:uuid;not null"`
	SenderID  string `gorm:"type:text;not null;index:idx_archive_session_msg"`
	Body      string `gorm:"type:text;not null"`
	SentAt    time.Time
}
