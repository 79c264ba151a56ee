package hub

import (
	log "log/slog"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// Event is the named envelope every live push travels in.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub maps recipient ids to their open live-event connections. A
// recipient may hold several connections at once; every push goes to
// all of them. The hub keeps no event history, so a recipient with no
// connections simply misses the push and resyncs from the list and
// counter endpoints on reconnect.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uint64]map[*Client]struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	if c == nil || c.recipientID == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.clients[c.recipientID]
	if set == nil {
		set = make(map[*Client]struct{})
		h.clients[c.recipientID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) Unregister(c *Client) {
	if c == nil || c.recipientID == 0 {
		return
	}
	h.mu.Lock()
	set := h.clients[c.recipientID]
	if set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.recipientID)
		}
	}
	h.mu.Unlock()
	c.Close()
}

// Push delivers a named event to every connection the recipient holds.
// A connection whose buffer is full is dropped on the spot so one
// stuck client never affects the others. Zero connections is a no-op.
func (h *Hub) Push(recipientID uint64, event string, data any) error {
	payload, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		return err
	}

	h.mu.RLock()
	set := h.clients[recipientID]
	targets := make([]*Client, 0, len(set))
	for c := range set {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if !c.enqueue(payload) {
			log.Warn("live push dropped slow client", "recipientID", recipientID)
			h.Unregister(c)
		}
	}
	return nil
}

// CountConnections reports how many open connections a recipient has.
func (h *Hub) CountConnections(recipientID uint64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[recipientID])
}

// Client is one live connection owned by a single recipient.
type Client struct {
	recipientID uint64
	conn        *websocket.Conn
	send        chan []byte

	mu     sync.Mutex
	closed bool
}

func NewClient(recipientID uint64, conn *websocket.Conn) *Client {
	return &Client{
		recipientID: recipientID,
		conn:        conn,
		send:        make(chan []byte, 64),
	}
}

func (c *Client) RecipientID() uint64 {
	return c.recipientID
}

// enqueue hands a payload to the write pump without blocking. The send
// on c.send happens under c.mu so it can never race a concurrent Close;
// only Close ever shuts the channel, and only after setting closed.
func (c *Client) enqueue(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	c.mu.Unlock()
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// WritePump drains the send buffer onto the socket. It returns when
// the client is closed or a write fails.
func (c *Client) WritePump() {
	if c.conn == nil {
		return
	}
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Warn("live push write failed", "recipientID", c.recipientID, "err", err)
			return
		}
	}
}
