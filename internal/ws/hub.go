package ws

import (
	"context"
	"sync"

	"telegram_initdata/internal/initdata"

	"github.com/prometheus/client_golang/prometheus"
)

// Verifier checks a raw init data payload.
type Verifier interface {
	Authenticate(ctx context.Context, raw string) (*initdata.InitData, error)
}

var connections = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "initdata_ws_connections",
	Help: "Open verify channel connections",
})

func init() {
	prometheus.MustRegister(connections)
}

// Hub tracks open verify connections so they can be closed on shutdown.
type Hub struct {
	verifier Verifier
	mu       sync.Mutex
	clients  map[*Client]struct{}
	closed   bool
}

func NewHub(verifier Verifier) *Hub {
	return &Hub{
		verifier: verifier,
		clients:  make(map[*Client]struct{}),
	}
}

func (h *Hub) register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	connections.Inc()
	return true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		connections.Dec()
	}
}

// Len returns the number of open connections.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		_ = c.Conn.Close()
	}
}
