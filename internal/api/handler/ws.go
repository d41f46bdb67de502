package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"reclaimr/backend/internal/chathub"
	"reclaimr/backend/internal/config"
	"reclaimr/backend/internal/models"
)

// IdentityResolver maps an incoming chat connection request to a user id.
type IdentityResolver func(r *http.Request) (string, error)

// mockChatUserID is the shared placeholder identity for chat connections
// that carry no token, mirroring the platform's open chat transport.
const mockChatUserID = "mock_user_id"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten in production!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// resolveIdentity is the default IdentityResolver: a `token` query
// parameter carrying the platform JWT identifies the caller; without one
// the connection falls back to the placeholder identity.
func (h *Handler) resolveIdentity(r *http.Request) (string, error) {
	token := r.URL.Query().Get("token")
	if token == "" {
		return mockChatUserID, nil
	}
	return h.parseToken(token)
}

// ServeChatWS upgrades the connection and attaches it to the requested
// chat session. Unknown or expired sessions are closed right after the
// handshake with a distinguishable close code; nothing is registered on
// those paths.
func (h *Handler) ServeChatWS(c *gin.Context) {
	sessionID := c.Param("session_id")

	userID, err := h.Identity(c.Request)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		return
	}

	client := &chathub.WebSocketClient{
		UserID:    userID,
		SessionID: sessionID,
		Conn:      conn,
		Manager:   h.Manager,
		Send:      make(chan models.ChatMessage, 256),
	}

	if err := h.Manager.Connect(client); err != nil {
		code, reason := closeCodeFor(err)
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason))
		conn.Close()
		return
	}

	client.Run()
}

func closeCodeFor(err error) (int, string) {
	switch {
	case errors.Is(err, chathub.ErrSessionNotFound):
		return config.CloseSessionNotFound, "session not found"
	case errors.Is(err, chathub.ErrSessionExpired):
		return config.CloseSessionExpired, "session expired"
	default:
		return websocket.CloseInternalServerErr, "internal error"
	}
}
