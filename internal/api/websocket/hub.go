package websocket

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fortuna/vsteams/internal/service"
)

var errBroadcastFull = errors.New("broadcast buffer full")

// Hub tracks connected clients and fans summaries out to them
type Hub struct {
	clients   map[*Client]bool
	clientsMu sync.RWMutex

	broadcast  chan *service.VersusResult
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	totalMessages int64
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *service.VersusResult, 100),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run is the hub's main loop; it returns when ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	log.Println("[ws-hub] ✓ hub started")

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case c := <-h.register:
			h.clientsMu.Lock()
			h.clients[c] = true
			n := len(h.clients)
			h.clientsMu.Unlock()
			log.Printf("[ws-hub] client %s connected (total: %d)", c.ID, n)

		case c := <-h.unregister:
			h.clientsMu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.Send)
				log.Printf("[ws-hub] client %s disconnected (total: %d)", c.ID, len(h.clients))
			}
			h.clientsMu.Unlock()

		case result := <-h.broadcast:
			h.broadcastResult(result)
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// NotifySummary queues a result for broadcast without blocking
func (h *Hub) NotifySummary(ctx context.Context, result *service.VersusResult) error {
	select {
	case h.broadcast <- result:
		return nil
	default:
		return errBroadcastFull
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// TotalMessages returns how many summaries were delivered to at least one client
func (h *Hub) TotalMessages() int64 {
	return atomic.LoadInt64(&h.totalMessages)
}

func (h *Hub) broadcastResult(result *service.VersusResult) {
	h.clientsMu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	message := ServerMessage{
		Type:      MessageTypeSummary,
		Payload:   result,
		Timestamp: time.Now(),
	}

	sent := 0
	for _, c := range clients {
		if !c.Wants(result.Player.ID) {
			continue
		}
		if c.TrySend(message) {
			sent++
			continue
		}
		log.Printf("[ws-hub] ⚠️  client %s buffer full, disconnecting", c.ID)
		go h.Unregister(c)
	}

	if sent > 0 {
		atomic.AddInt64(&h.totalMessages, 1)
	}
}

func (h *Hub) shutdown() {
	close(h.done)

	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	log.Printf("[ws-hub] shutting down (%d active clients)", len(h.clients))
	for c := range h.clients {
		close(c.Send)
		delete(h.clients, c)
	}
}
