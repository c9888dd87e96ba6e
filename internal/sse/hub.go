package sse

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/inventory_api/internal/models"
)

// EventType defines the SSE event name.
type EventType string

const (
	EventMetricsSnapshot EventType = "metrics.snapshot"
	EventMetricsUpdated  EventType = "metrics.updated"
)

// MetricsEvent is the payload pushed to an owner's dashboard streams.
type MetricsEvent struct {
	Event     EventType             `json:"event"`
	Metrics   models.DerivedMetrics `json:"metrics"`
	Timestamp time.Time             `json:"timestamp"`
}

// Client represents a connected dashboard stream.
type Client struct {
	ID      string
	OwnerID string
	Events  chan []byte
}

// Hub manages SSE client connections per owner.
type Hub struct {
	mu     sync.RWMutex
	owners map[string]map[string]*Client
}

// NewHub creates a new SSE hub.
func NewHub() *Hub {
	return &Hub{
		owners: make(map[string]map[string]*Client),
	}
}

// Register adds a new client of ownerID and returns it for streaming.
func (h *Hub) Register(ownerID, clientID string) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := &Client{
		ID:      clientID,
		OwnerID: ownerID,
		Events:  make(chan []byte, 16),
	}
	clients, ok := h.owners[ownerID]
	if !ok {
		clients = make(map[string]*Client)
		h.owners[ownerID] = clients
	}
	clients[clientID] = c
	log.Info().Str("owner_id", ownerID).Str("client_id", clientID).Int("owner_clients", len(clients)).Msg("SSE client connected")
	return c
}

// Unregister removes a client and closes its channel.
func (h *Hub) Unregister(ownerID, clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.owners[ownerID]
	if c, ok := clients[clientID]; ok {
		close(c.Events)
		delete(clients, clientID)
		if len(clients) == 0 {
			delete(h.owners, ownerID)
		}
		log.Info().Str("owner_id", ownerID).Str("client_id", clientID).Msg("SSE client disconnected")
	}
}

// DisconnectOwner closes every stream of ownerID.
func (h *Hub) DisconnectOwner(ownerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, c := range h.owners[ownerID] {
		close(c.Events)
	}
	delete(h.owners, ownerID)
}

// Broadcast sends an event to every client of ownerID.
// Non-blocking: drops message if client buffer is full.
func (h *Hub) Broadcast(ownerID string, event *MetricsEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := h.owners[ownerID]
	if len(clients) == 0 {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal SSE event")
		return
	}

	for _, c := range clients {
		select {
		case c.Events <- data:
		default:
			log.Warn().Str("client_id", c.ID).Msg("SSE client buffer full, dropping event")
		}
	}
}

// ClientCount returns the number of connected clients of ownerID.
func (h *Hub) ClientCount(ownerID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.owners[ownerID])
}
