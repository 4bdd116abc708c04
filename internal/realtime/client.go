package realtime

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const ( // ping pong heartbeat to keep the connection alive
	WriteWait      = 10 * time.Second    // max time to write a message to the peer
	PongWait       = 60 * time.Second    // max time to wait for a pong from the peer
	PingPeriod     = (PongWait * 9) / 10 // send pings before the pong wait expires
	MaxMessageSize = 512                 // maximum inbound message size allowed from peer
)

// Client is one WebSocket subscriber of the shared message-events feed.
type Client struct {
	ID          string          // unique client ID
	UserID      int64           // authenticated user behind the connection
	Conn        *websocket.Conn // WebSocket connection
	SendChannel chan []byte     // outbound events
	Hub         *Hub
}

func NewClient(id string, userID int64, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		ID:          id,
		UserID:      userID,
		Conn:        conn,
		SendChannel: make(chan []byte, 32),
		Hub:         hub,
	}
}

// ReadPump drains inbound frames so pings/pongs and close frames are
// processed. The feed is one-way; client payloads are discarded.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(PongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(PongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("Realtime read error", "client_id", c.ID, "error", err)
			}
			return
		}
	}
}

// WritePump forwards hub events to the peer and keeps the heartbeat going.
func (c *Client) WritePump() {
	ticker := time.NewTicker(PingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.SendChannel:
			c.Conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
