package ws

import (
	"encoding/json"
	"sync"
)

// Client is one admin WebSocket subscriber.
type Client struct {
	Subject string
	Send    chan []byte
	hub     *Hub
	mu      sync.Mutex
	closed  bool
}

func NewClient(subject string) *Client {
	return &Client{Subject: subject, Send: make(chan []byte, 256)}
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.hub != nil {
		c.hub.unregister(c)
	}
	close(c.Send)
}

// Hub fans gateway events out to the connected admin clients. Slow clients
// drop messages instead of blocking the publisher.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.hub = h
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// Publish sends {"type": eventType, "data": payload} to every client.
func (h *Hub) Publish(eventType string, payload interface{}) {
	data, err := json.Marshal(map[string]interface{}{"type": eventType, "data": payload})
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.Send <- data:
		default:
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
