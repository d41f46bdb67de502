package chathub_test

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"reclaimr/backend/internal/models"
)

// MockClient is a test double for the chathub.Client interface. Its Recv
// channel stands in for the write pump; a zero-capacity channel simulates
// a connection that fails to accept a send.
type MockClient struct {
	userID    string
	sessionID string
	Recv      chan models.ChatMessage

	mu          sync.Mutex
	closed      bool
	closeCode   int
	closeReason string
}

func newMockClient(userID, sessionID string) *MockClient {
	return &MockClient{
		userID:    userID,
		sessionID: sessionID,
		Recv:      make(chan models.ChatMessage, 10), // Buffered to prevent blocking in tests
	}
}

// newBlockedClient returns a client whose send channel can never accept
// a message.
func newBlockedClient(userID, sessionID string) *MockClient {
	return &MockClient{
		userID:    userID,
		sessionID: sessionID,
		Recv:      make(chan models.ChatMessage),
	}
}

func (c *MockClient) GetUserID() string                         { return c.userID }
func (c *MockClient) GetSessionID() string                      { return c.sessionID }
func (c *MockClient) GetSendChannel() chan<- models.ChatMessage { return c.Recv }

func (c *MockClient) Run() {}

func (c *MockClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *MockClient) CloseWithReason(code int, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.closeCode = code
	c.closeReason = reason
}

func (c *MockClient) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *MockClient) CloseCode() (int, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeCode, c.closeReason
}

// DrainMessages empties the client's receive channel.
func (c *MockClient) DrainMessages() []models.ChatMessage {
	var messages []models.ChatMessage
	for {
		select {
		case msg := <-c.Recv:
			messages = append(messages, msg)
		default:
			return messages
		}
	}
}

// MockArchiver is a testify mock of the chathub.Archiver interface.
type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) ArchiveSession(session *models.ChatSession, messages []models.ChatMessage) error {
	args := m.Called(session, messages)
	return args.Error(0)
}
