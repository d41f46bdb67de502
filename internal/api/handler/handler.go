package handler

import (
	"os"

	"reclaimr/backend/internal/chathub"
	"reclaimr/backend/internal/storage"
)

// Handler carries the chat hub, the data store and the auth settings
// shared by all HTTP endpoints.
type Handler struct {
	Manager *chathub.ManagerService
	Storage storage.Storage
	// Identity resolves the user behind an incoming chat connection. It
	// is injectable so deployments can tighten the chat transport without
	// touching the endpoint state machine.
	Identity IdentityResolver

	jwtSecret   []byte
	emailDomain string
}

func NewHandler(manager *chathub.ManagerService, s storage.Storage) *Handler {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "YOUR_ULTRA_SECRET_KEY_HERE"
	}
	domain := os.Getenv("COLLEGE_EMAIL_DOMAIN")
	if domain == "" {
		domain = "college.edu"
	}

	h := &Handler{
		Manager:     manager,
		Storage:     s,
		jwtSecret:   []byte(secret),
		emailDomain: domain,
	}
	h.Identity = h.resolveIdentity
	return h
}
