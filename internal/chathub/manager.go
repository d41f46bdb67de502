package chathub

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"reclaimr/backend/internal/config"
	"reclaimr/backend/internal/models"
	"reclaimr/backend/internal/storage"
)

var (
	// ErrSessionNotFound is returned by Connect when the session id is
	// unknown. The connection must be closed, never retried.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired is returned by Connect when the session is past
	// its deadline or message cap.
	ErrSessionExpired = errors.New("session expired")
)

// ManagerService wires the chat core together: the session store, the
// connection registry and the fan-out path. One instance serves the
// whole process.
type ManagerService struct {
	Storage  storage.Storage
	Registry *Registry
	Sessions *SessionService
}

func NewManagerService(s storage.Storage) *ManagerService {
	return &ManagerService{
		Storage:  s,
		Registry: NewRegistry(),
		Sessions: NewSessionService(s),
	}
}

// Connect validates the client's session and registers the connection.
// Nothing is registered on an error path.
func (m *ManagerService) Connect(c Client) error {
	session, err := m.Storage.GetSession(c.GetSessionID())
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}
	if m.Sessions.IsExpired(session) {
		return ErrSessionExpired
	}

	m.Registry.Register(c)
	return nil
}

// Disconnect releases the client's registry entries. Called on remote
// disconnect; safe on every path into the closed state.
func (m *ManagerService) Disconnect(c Client) {
	m.Registry.Unregister(c)
}

// HandleInbound turns one inbound text frame into a persisted message,
// fans it out, and enforces the message cap on the frame that crosses it.
func (m *ManagerService) HandleInbound(c Client, text string) {
	sessionID := c.GetSessionID()

	msg := models.ChatMessage{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		SenderID:  c.GetUserID(),
		Message:   text,
		Timestamp: time.Now().UTC(),
	}

	if err := m.Storage.AppendMessage(msg); err != nil {
		log.Printf("ERROR: Failed to persist message for session %s: %v", sessionID, err)
	}

	m.Broadcast(sessionID, msg)

	count, err := m.Storage.MessageCount(sessionID)
	if err != nil {
		log.Printf("ERROR: Failed to read message count for session %s: %v", sessionID, err)
		return
	}
	if count >= config.MaxSessionMessages {
		m.closeSession(sessionID)
	}
}

// Broadcast pushes the message to every live connection of the session.
// Sends are non-blocking; a client whose buffer is full is evicted and
// closed, without affecting delivery to the others. With no connections
// registered this is a no-op.
func (m *ManagerService) Broadcast(sessionID string, msg models.ChatMessage) {
	for _, c := range m.Registry.Connections(sessionID) {
		select {
		case c.GetSendChannel() <- msg:
		default:
			log.Printf("Evicting unresponsive client %s from session %s", c.GetUserID(), sessionID)
			m.Registry.Unregister(c)
			c.Close()
		}
	}
}

// closeSession marks the session inactive and ends every live connection
// with the message-limit close code, releasing their registry entries.
func (m *ManagerService) closeSession(sessionID string) {
	if err := m.Storage.SetSessionInactive(sessionID); err != nil {
		log.Printf("ERROR: Failed to deactivate session %s: %v", sessionID, err)
	}

	for _, c := range m.Registry.Connections(sessionID) {
		m.Registry.Unregister(c)
		c.CloseWithReason(config.CloseMessageLimit, "message limit reached")
	}
}
