package chathub

import "sync"

// Registry tracks which connections are viewing which session. It owns
// two tables: session id -> set of live clients, and user id -> session
// id (last write wins). An empty client set is removed outright, so a
// present key always has at least one connection.
type Registry struct {
	mu           sync.Mutex
	connections  map[string]map[Client]struct{}
	userSessions map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		connections:  make(map[string]map[Client]struct{}),
		userSessions: make(map[string]string),
	}
}

// Register adds the client to its session's set, creating the set if
// needed, and points the user at that session.
func (r *Registry) Register(c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessionID := c.GetSessionID()
	if _, ok := r.connections[sessionID]; !ok {
		r.connections[sessionID] = make(map[Client]struct{})
	}
	r.connections[sessionID][c] = struct{}{}
	r.userSessions[c.GetUserID()] = sessionID
}

// Unregister removes the client from its session's set and drops the
// user mapping. The user mapping is deleted even if the user has since
// been pointed at another session. Safe to call more than once.
func (r *Registry) Unregister(c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessionID := c.GetSessionID()
	if set, ok := r.connections[sessionID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(r.connections, sessionID)
		}
	}
	delete(r.userSessions, c.GetUserID())
}

// Connections returns a snapshot of the session's live clients. Order is
// unspecified.
func (r *Registry) Connections(sessionID string) []Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.connections[sessionID]
	if !ok {
		return nil
	}
	clients := make([]Client, 0, len(set))
	for c := range set {
		clients = append(clients, c)
	}
	return clients
}

// SessionForUser returns the session the user is currently attached to.
func (r *Registry) SessionForUser(userID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sessionID, ok := r.userSessions[userID]
	return sessionID, ok
}

// HasSession reports whether any connection is registered for the session.
func (r *Registry) HasSession(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.connections[sessionID]
	return ok
}

// Reset drops every registration.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connections = make(map[string]map[Client]struct{})
	r.userSessions = make(map[string]string)
}
