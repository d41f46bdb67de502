package chathub

import "reclaimr/backend/internal/models"

// Client is the interface for one live connection viewing a chat session
// (e.g., WebSocket). It abstracts the underlying transport so the hub and
// registry can manage different client types uniformly.
type Client interface {
	// GetUserID returns the identity the connection was accepted under.
	GetUserID() string
	// GetSessionID returns the session the connection is viewing. It is
	// fixed for the lifetime of the connection.
	GetSessionID() string

	// GetSendChannel returns the channel the dispatcher pushes outbound
	// messages into. It is a send-only channel backed by a bounded buffer.
	GetSendChannel() chan<- models.ChatMessage

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's outbound side; queued messages are
	// flushed before the transport-level close frame.
	Close()
	// CloseWithReason behaves like Close but ends the transport with a
	// distinguishable close code and reason.
	CloseWithReason(code int, reason string)
}
