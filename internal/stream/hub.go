package stream

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/command-center/backend/internal/dashboard"
)

var (
	ErrTooManyConnections = errors.New("too many stream connections")
	ErrClientClosed       = errors.New("stream client closed")
	ErrSlowClient         = errors.New("stream client send buffer full")
)

// Client is a registered stream consumer. Send must not block; a non-nil
// error removes the client from the hub.
type Client interface {
	Send(ev Event) error
	Close()
}

// Hub tracks open stream clients and pushes events to them.
type Hub struct {
	mu       sync.Mutex
	clients  map[Client]struct{}
	maxConns int
	interval time.Duration
	now      func() time.Time
}

// NewHub creates a hub that broadcasts every interval once Run is called.
// maxConns <= 0 means unlimited.
func NewHub(interval time.Duration, maxConns int) *Hub {
	return &Hub{
		clients:  make(map[Client]struct{}),
		maxConns: maxConns,
		interval: interval,
		now:      time.Now,
	}
}

// Register adds c and sends it the one-time connected event.
func (h *Hub) Register(c Client) error {
	h.mu.Lock()
	if h.maxConns > 0 && len(h.clients) >= h.maxConns {
		h.mu.Unlock()
		return ErrTooManyConnections
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.deliver(c, Event{
		Name: EventDashboard,
		Data: ConnectedPayload{Message: connectedMessage},
	})
	return nil
}

// Unregister removes and closes c. Safe to call more than once.
func (h *Hub) Unregister(c Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()

	if ok {
		c.Close()
	}
}

// Broadcast sends an update event stamped with the current time.
func (h *Hub) Broadcast() {
	h.Publish(Event{
		Name: EventUpdate,
		Data: UpdatePayload{Timestamp: h.now().UTC().Format(dashboard.TimestampFormat)},
	})
}

// Publish sends ev to every registered client. Clients whose Send fails
// are dropped; there is no retry.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	clients := make([]Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.deliver(c, ev)
	}
}

func (h *Hub) deliver(c Client, ev Event) {
	if err := c.Send(ev); err != nil {
		log.Printf("stream: dropping client: %v", err)
		h.Unregister(c)
	}
}

// Run broadcasts on every tick until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Broadcast()
		}
	}
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// CloseAll unregisters every client, used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[Client]struct{})
	h.mu.Unlock()

	for c := range clients {
		c.Close()
	}
}
