package config

import "time"

const (
	// Session
	SessionTTL         = 30 * time.Minute
	MaxSessionMessages = 25

	// WebSocket close codes sent to chat clients
	CloseMessageLimit    = 4002
	CloseSessionExpired  = 4003
	CloseSessionNotFound = 4004

	// Auth
	TokenTTL = 72 * time.Hour

	// Retention
	SweepInterval  = 5 * time.Minute
	RetentionGrace = 1 * time.Hour
)
