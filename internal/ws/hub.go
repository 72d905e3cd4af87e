package ws

import (
	"context"
	"log"
	"sync"
)

// delivery is one serialized event addressed to a user. An empty userID
// reaches every client.
type delivery struct {
	userID  string
	payload []byte
}

// Hub tracks connected event-stream clients and routes events to them. Only
// Run mutates the client set.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	outbound   chan delivery
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	logger *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		outbound:   make(chan delivery, 256),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run routes events until ctx is done, then closes every client's queue so
// the write pumps send a close frame.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			if c == nil {
				continue
			}
			h.mu.Lock()
			h.clients[c] = struct{}{}
			total := len(h.clients)
			h.mu.Unlock()
			h.logf("[WS] Client connected | user=%q total=%d", c.userID, total)

		case c := <-h.unregister:
			h.drop(c)

		case d := <-h.outbound:
			sent := 0
			for _, c := range h.recipients(d.userID) {
				select {
				case c.send <- d.payload:
					sent++
				default:
					h.drop(c)
				}
			}
			h.logf("[WS] Event delivered | user=%q clients=%d", d.userID, sent)
		}
	}
}

func (h *Hub) recipients(userID string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		if userID == "" || c.userID == userID {
			out = append(out, c)
		}
	}
	return out
}

func (h *Hub) drop(c *Client) {
	if c == nil {
		return
	}
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	total := len(h.clients)
	h.mu.Unlock()
	if ok {
		h.logf("[WS] Client disconnected | user=%q total=%d", c.userID, total)
	}
}

func (h *Hub) Register(c *Client) {
	if h == nil {
		return
	}
	select {
	case h.register <- c:
	case <-h.done:
	}
}

func (h *Hub) Unregister(c *Client) {
	if h == nil {
		return
	}
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Send queues payload for userID's clients, or for everyone when userID is
// empty. It never blocks; a full queue drops the event and returns false.
func (h *Hub) Send(userID string, payload []byte) bool {
	if h == nil {
		return false
	}
	select {
	case h.outbound <- delivery{userID: userID, payload: payload}:
		return true
	default:
		h.logf("[WS] Event dropped | reason=queue_full")
		return false
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
