package chathub

import (
	"log"
	"time"

	"reclaimr/backend/internal/config"
	"reclaimr/backend/internal/models"
	"reclaimr/backend/internal/storage"
)

// Archiver receives a session and its message log right before the
// sweeper drops them from the store. Implementations may persist them
// elsewhere; a nil Archiver means swept sessions are simply discarded.
type Archiver interface {
	ArchiveSession(session *models.ChatSession, messages []models.ChatMessage) error
}

// SweeperService removes stale sessions from the store. It is layered
// purely on the Storage interface and never touches the registry or the
// dispatch path. A session becomes sweepable once its deadline plus the
// grace period has passed; sessions closed early by the message cap fall
// under the same cutoff.
type SweeperService struct {
	Storage  storage.Storage
	Archiver Archiver
	Interval time.Duration
	Grace    time.Duration

	stopCh chan struct{}
}

func NewSweeperService(s storage.Storage, archiver Archiver) *SweeperService {
	return &SweeperService{
		Storage:  s,
		Archiver: archiver,
		Interval: config.SweepInterval,
		Grace:    config.RetentionGrace,
		stopCh:   make(chan struct{}),
	}
}

// Run loops until Stop is called.
func (s *SweeperService) Run() {
	log.Println("Retention sweeper started.")
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *SweeperService) Stop() {
	close(s.stopCh)
}

// Sweep performs one pass and returns the number of sessions removed.
func (s *SweeperService) Sweep() int {
	sessions, err := s.Storage.ListSessions()
	if err != nil {
		log.Printf("ERROR: Failed to list sessions for sweep: %v", err)
		return 0
	}

	now := time.Now().UTC()
	swept := 0
	for _, session := range sessions {
		if now.Before(session.ExpiresAt.Add(s.Grace)) {
			continue
		}

		if s.Archiver != nil {
			messages, err := s.Storage.GetMessages(session.ID)
			if err != nil {
				log.Printf("ERROR: Failed to load messages of session %s: %v", session.ID, err)
				continue
			}
			if err := s.Archiver.ArchiveSession(session, messages); err != nil {
				// Keep the session around and retry on the next pass.
				log.Printf("ERROR: Failed to archive session %s: %v", session.ID, err)
				continue
			}
		}

		if err := s.Storage.DeleteSession(session.ID); err != nil {
			log.Printf("ERROR: Failed to delete session %s: %v", session.ID, err)
			continue
		}
		swept++
	}

	if swept > 0 {
		log.Printf("Retention sweep removed %d sessions.", swept)
	}
	return swept
}
