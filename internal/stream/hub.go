package stream

import (
	"sync"
	"sync/atomic"
)

// DefaultQueue is the per-client backlog of frames. A client that falls
// further behind loses frames rather than stalling the others.
const DefaultQueue = 4

type client struct {
	send    chan []byte
	dropped atomic.Int64
}

// Hub fans encoded frames out to connected clients. Frames are shared
// between clients and must not be modified after Broadcast.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	queue   int
}

func NewHub(queue int) *Hub {
	if queue <= 0 {
		queue = DefaultQueue
	}
	return &Hub{clients: make(map[*client]struct{}), queue: queue}
}

func (h *Hub) register() *client {
	c := &client{send: make(chan []byte, h.queue)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

// unregister removes c and closes its queue. It is safe to call twice.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues frame for every client without blocking and returns
// how many clients had to drop it.
func (h *Hub) Broadcast(frame []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	dropped := 0
	for c := range h.clients {
		select {
		case c.send <- frame:
		default:
			c.dropped.Add(1)
			dropped++
		}
	}
	return dropped
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
