package realtime

import (
	"context"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans events received on the redis pub/sub channel out to every
// connected WebSocket client. Each connection runs its own read/write
// goroutines; they all coordinate with the hub through channels.
type Hub struct {
	clients    map[string]*Client // clientID -> Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
	}
}

// Run processes hub events until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			slog.Info("Realtime client connected", "client_id", client.ID, "user_id", client.UserID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.SendChannel)
			}
			h.mu.Unlock()
			slog.Info("Realtime client disconnected", "client_id", client.ID, "user_id", client.UserID)

		case message := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				select {
				case client.SendChannel <- message:
				default:
					// Slow consumer: drop the event rather than block
					// the whole fan-out.
					slog.Warn("Dropping event for slow client", "client_id", client.ID)
				}
			}
			h.mu.RUnlock()

		case <-ctx.Done():
			return
		}
	}
}

// ListenRedis subscribes to the shared message-events channel and feeds
// every payload into the hub broadcast loop. Blocks until the context
// is cancelled.
func (h *Hub) ListenRedis(ctx context.Context, client *redis.Client) {
	pubsub := client.Subscribe(ctx, MessageEventsChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcast <- []byte(msg.Payload)
		case <-ctx.Done():
			return
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
