package chathub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"reclaimr/backend/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// WebSocketClient implements the chathub.Client interface on top of a
// gorilla/websocket connection.
type WebSocketClient struct {
	UserID    string
	SessionID string
	Conn      *websocket.Conn
	Manager   *ManagerService
	Send      chan models.ChatMessage

	closeOnce   sync.Once
	closeCode   int
	closeReason string
}

func (c *WebSocketClient) GetUserID() string                         { return c.UserID }
func (c *WebSocketClient) GetSessionID() string                      { return c.SessionID }
func (c *WebSocketClient) GetSendChannel() chan<- models.ChatMessage { return c.Send }

// Run starts the pumps for the connection.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close shuts down the Send channel, which stops writePump after it has
// flushed any queued messages.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}

// CloseWithReason records the close code before shutting the channel, so
// writePump ends the connection with a distinguishable close frame after
// the queued messages have gone out.
func (c *WebSocketClient) CloseWithReason(code int, reason string) {
	c.closeOnce.Do(func() {
		c.closeCode = code
		c.closeReason = reason
		close(c.Send)
	})
}

// readPump reads inbound frames and hands the raw text payload to the
// manager. The whole frame is the message body; there is no structured
// parsing of client input.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Manager.Disconnect(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		c.Manager.HandleInbound(c, string(payload))
	}
}

// writePump serializes messages from the Send channel onto the wire and
// keeps the connection alive with pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed by the hub; end with the recorded
				// close frame, if any.
				payload := []byte{}
				if c.closeCode != 0 {
					payload = websocket.FormatCloseMessage(c.closeCode, c.closeReason)
				}
				c.Conn.WriteMessage(websocket.CloseMessage, payload)
				return
			}

			dataToWrite, err := json.Marshal(message)
			if err != nil {
				log.Printf("Error encoding JSON for client %s: %v", c.UserID, err)
				continue
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, dataToWrite); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
