package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 64
)

const (
	MessageTypeSummary     = "summary"
	MessageTypeSubscribe   = "subscribe"
	MessageTypeUnsubscribe = "unsubscribe"
)

// ServerMessage is sent to clients
type ServerMessage struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// ClientMessage is received from clients. Subscribing with no player IDs
// means every player.
type ClientMessage struct {
	Type      string `json:"type"`
	PlayerIDs []int  `json:"player_ids,omitempty"`
}

// Client is one websocket connection
type Client struct {
	ID   string
	Send chan ServerMessage

	conn *websocket.Conn
	hub  *Hub

	filterMu  sync.RWMutex
	playerIDs map[int]bool
}

// NewClient creates a client with a fresh ID
func NewClient(conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		ID:   uuid.NewString(),
		Send: make(chan ServerMessage, sendBufferSize),
		conn: conn,
		hub:  hub,
	}
}

// Wants reports whether the client subscribed to playerID
func (c *Client) Wants(playerID int) bool {
	c.filterMu.RLock()
	defer c.filterMu.RUnlock()
	return len(c.playerIDs) == 0 || c.playerIDs[playerID]
}

// Subscribe restricts the client to the given players; none clears the filter
func (c *Client) Subscribe(playerIDs []int) {
	filter := make(map[int]bool, len(playerIDs))
	for _, id := range playerIDs {
		filter[id] = true
	}

	c.filterMu.Lock()
	c.playerIDs = filter
	c.filterMu.Unlock()
}

// TrySend queues msg without blocking; false means the buffer is full
func (c *Client) TrySend(msg ServerMessage) bool {
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}

// ReadPump reads subscription messages until the connection closes
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[ws-client] %s unexpected close: %v", c.ID, err)
			}
			return
		}

		switch msg.Type {
		case MessageTypeSubscribe:
			c.Subscribe(msg.PlayerIDs)
		case MessageTypeUnsubscribe:
			c.Subscribe(nil)
		default:
			// Send belongs to the hub, which may close it at any time.
			log.Printf("[ws-client] %s ignoring unknown message type %q", c.ID, msg.Type)
		}
	}
}

// WritePump writes queued messages and keepalive pings to the connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				log.Printf("[ws-client] %s write error: %v", c.ID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
