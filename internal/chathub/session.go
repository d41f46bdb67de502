package chathub

import (
	"time"

	"github.com/google/uuid"

	"reclaimr/backend/internal/config"
	"reclaimr/backend/internal/models"
	"reclaimr/backend/internal/storage"
)

// SessionService owns the chat session lifecycle: creation with a fixed
// participant pair and deadline, and the expiry check.
type SessionService struct {
	Storage storage.Storage
}

func NewSessionService(s storage.Storage) *SessionService {
	return &SessionService{Storage: s}
}

// CreateSession opens a session between the requester and the item's
// owner. The requester/owner equality check belongs to the caller, which
// holds the item lookup.
func (s *SessionService) CreateSession(itemID, requesterID, ownerID string) (*models.ChatSession, error) {
	now := time.Now().UTC()
	session := &models.ChatSession{
		ID:           uuid.New().String(),
		ItemID:       itemID,
		Participants: [2]string{requesterID, ownerID},
		Messages:     []models.ChatMessage{},
		CreatedAt:    now,
		ExpiresAt:    now.Add(config.SessionTTL),
		IsActive:     true,
	}

	if err := s.Storage.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// IsExpired reports whether the session is past its deadline or its
// message log has reached the cap. The count is read fresh from the
// store so concurrent message arrivals are reflected.
func (s *SessionService) IsExpired(session *models.ChatSession) bool {
	if time.Now().UTC().After(session.ExpiresAt) {
		return true
	}
	count, err := s.Storage.MessageCount(session.ID)
	if err != nil {
		return false
	}
	return count >= config.MaxSessionMessages
}
