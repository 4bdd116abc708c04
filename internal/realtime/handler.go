package realtime

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades HTTP requests to WebSocket subscriptions of the
// shared message-events channel.
type Handler struct {
	hub *Hub
	// enabled gates channel subscription; checked per request so an
	// admin toggle applies to new connections immediately.
	enabled func() bool
}

func NewHandler(hub *Hub, enabled func() bool) *Handler {
	return &Handler{hub: hub, enabled: enabled}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ws", h.Subscribe)
}

// Subscribe upgrades the connection and attaches it to the hub.
// GET /api/v1/ws
func (h *Handler) Subscribe(c *gin.Context) {
	if h.enabled != nil && !h.enabled() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Messaging is disabled"})
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := NewClient(uuid.New().String(), userID.(int64), conn, h.hub)
	h.hub.register <- client

	go client.WritePump()
	go client.ReadPump()
}
