package storage

import (
	"sync"

	"reclaimr/backend/internal/config"
	"reclaimr/backend/internal/models"
)

// Storage is the flat data store behind the platform: users, item
// reports, chat sessions and their message logs. Every method is
// independently atomic; lookups for unknown ids return (nil, nil)
// rather than an error.
type Storage interface {
	SaveUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(userID string) (*models.User, error)

	SaveItem(item *models.Item) error
	GetAllItems() ([]*models.Item, error)
	GetItemByID(itemID string) (*models.Item, error)

	CreateSession(session *models.ChatSession) error
	GetSession(sessionID string) (*models.ChatSession, error)
	SetSessionInactive(sessionID string) error
	ListSessions() ([]*models.ChatSession, error)
	DeleteSession(sessionID string) error

	AppendMessage(msg models.ChatMessage) error
	GetMessages(sessionID string) ([]models.ChatMessage, error)
	MessageCount(sessionID string) (int, error)

	CountUsers() (int, error)
	CountItems() (int, error)
	CountActiveSessions() (int, error)

	ResetAll() error
}

// Service is the in-memory Storage implementation. All platform state
// lives in one process; a single mutex guards every table.
type Service struct {
	mu       sync.Mutex
	users    map[string]*models.User
	items    map[string]*models.Item
	sessions map[string]*models.ChatSession
	messages map[string][]models.ChatMessage
}

// NewStorageService Constructor
func NewStorageService() *Service {
	return &Service{
		users:    make(map[string]*models.User),
		items:    make(map[string]*models.Item),
		sessions: make(map[string]*models.ChatSession),
		messages: make(map[string][]models.ChatMessage),
	}
}

func (s *Service) SaveUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (s *Service) GetUserByID(userID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[userID], nil
}

func (s *Service) SaveItem(item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
	return nil
}

func (s *Service) GetAllItems() ([]*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]*models.Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	return items, nil
}

func (s *Service) GetItemByID(itemID string) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[itemID], nil
}

// CreateSession stores the session record and opens its empty message log.
func (s *Service) CreateSession(session *models.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	s.messages[session.ID] = []models.ChatMessage{}
	return nil
}

// GetSession returns a copy of the session record, so callers never
// observe a half-written IsActive flip.
func (s *Service) GetSession(sessionID string) (*models.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (s *Service) SetSessionInactive(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[sessionID]; ok {
		session.IsActive = false
	}
	return nil
}

func (s *Service) ListSessions() ([]*models.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions := make([]*models.ChatSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		copied := *session
		sessions = append(sessions, &copied)
	}
	return sessions, nil
}

// DeleteSession removes the session record together with its message log.
func (s *Service) DeleteSession(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	delete(s.messages, sessionID)
	return nil
}

// AppendMessage appends to the session's log. Messages for unknown
// sessions are silently dropped. The log is hard-capped: concurrent
// senders racing past the limit cannot grow it beyond MaxSessionMessages.
func (s *Service) AppendMessage(msg models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if log, ok := s.messages[msg.SessionID]; ok && len(log) < config.MaxSessionMessages {
		s.messages[msg.SessionID] = append(log, msg)
	}
	return nil
}

// GetMessages returns the session's log in append order, empty for an
// unknown session.
func (s *Service) GetMessages(sessionID string) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := s.messages[sessionID]
	out := make([]models.ChatMessage, len(log))
	copy(out, log)
	return out, nil
}

func (s *Service) MessageCount(sessionID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages[sessionID]), nil
}

func (s *Service) CountUsers() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users), nil
}

func (s *Service) CountItems() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items), nil
}

func (s *Service) CountActiveSessions() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, session := range s.sessions {
		if session.IsActive {
			count++
		}
	}
	return count, nil
}

// ResetAll clears every table. Used by the admin reset endpoint and tests.
func (s *Service) ResetAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]*models.User)
	s.items = make(map[string]*models.Item)
	s.sessions = make(map[string]*models.ChatSession)
	s.messages = make(map[string][]models.ChatMessage)
	return nil
}
