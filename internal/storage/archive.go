package storage

import (
	"log"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"reclaimr/backend/internal/models"
)

// Archive writes swept chat sessions to PostgreSQL. It sits entirely
// behind the retention sweeper; the live chat path never touches it.
type Archive struct {
	DB *gorm.DB
}

// NewArchive runs the archive migrations and returns the service.
func NewArchive(db *gorm.DB) (*Archive, error) {
	if err := db.AutoMigrate(&models.ChatSessionArchive{}, &models.ChatMessageArchive{}); err != nil {
		return nil, err
	}
	return &Archive{DB: db}, nil
}

// ArchiveSession persists the session record and its full message log in
// one transaction.
func (a *Archive) ArchiveSession(session *models.ChatSession, messages []models.ChatMessage) error {
	record := models.ChatSessionArchive{
		SessionID:    session.ID,
		ItemID:       session.ItemID,
		Participants: pq.StringArray(session.Participants[:]),
		OpenedAt:     session.CreatedAt,
		ExpiredAt:    session.ExpiresAt,
		MessageCount: len(messages),
	}

	return a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			log.Printf("ERROR: Failed to archive session %s: %v", session.ID, err)
			return err
		}
		for _, msg := range messages {
			row := models.ChatMessageArchive{
				SessionID: msg.SessionID,
				MessageID: msg.ID,
				SenderID:  msg.SenderID,
				Body:      msg.Message,
				SentAt:    msg.Timestamp,
			}
			if err := tx.Create(&row).Error; err != nil {
				log.Printf("ERROR: Failed to archive message %s: %v", msg.ID, err)
				return err
			}
		}
		return nil
	})
}

// CountArchivedSessions returns the number of archived session records.
func (a *Archive) CountArchivedSessions() (int64, error) {
	var count int64
	err := a.DB.Model(&models.ChatSessionArchive{}).Count(&count).Error
	return count, err
}

// CountArchivedMessages returns the number of archived message rows.
func (a *Archive) CountArchivedMessages() (int64, error) {
	var count int64
	err := a.DB.Model(&models.ChatMessageArchive{}).Count(&count).Error
	return count, err
}

// PurgeOlderThan deletes archive rows for sessions that expired before
// the cutoff. Returns the number of session records removed.
func (a *Archive) PurgeOlderThan(cutoff time.Time) (int64, error) {
	var sessionIDs []string
	if err := a.DB.Model(&models.ChatSessionArchive{}).
		Where("expired_at < ?", cutoff).
		Pluck("session_id", &sessionIDs).Error; err != nil {
		return 0, err
	}
	if len(sessionIDs) == 0 {
		return 0, nil
	}

	err := a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id IN ?", sessionIDs).
			Delete(&models.ChatMessageArchive{}).Error; err != nil {
			return err
		}
		return tx.Where("session_id IN ?", sessionIDs).
			Delete(&models.ChatSessionArchive{}).Error
	})
	return int64(len(sessionIDs)), err
}
