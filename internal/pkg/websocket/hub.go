package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event names emitted over the live feed
const (
	EventNewReport           = "new-report"
	EventCommentsUpdated     = "comments-updated"
	EventReportStatusChanged = "report-status-changed"
	EventMeTooUpdated        = "me-too-updated"
	EventAdExpired           = "ad-expired"
)

// Event represents a named event sent over the live feed. Delivery is
// fire-and-forget: there is no acknowledgment, replay or cross-client
// ordering guarantee.
type Event struct {
	// Name of the event, one of the Event* constants
	Name string `json:"event"`

	// Arbitrary JSON payload
	Payload interface{} `json:"payload,omitempty"`

	// AdminOnly restricts delivery to clients in the admin room
	AdminOnly bool `json:"-"`

	// Timestamp when the event was emitted
	Timestamp time.Time `json:"timestamp"`
}

// Hub maintains the set of connected clients and fans events out to them
type Hub struct {
	// Registered clients; value marks admin-room membership
	clients map[*Client]bool

	// Channel for outbound events
	events chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		events:     make(chan *Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and event fan-out
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.events:
			h.dispatch(event)
		}
	}
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = client.isAdmin

	h.logger.Info().
		Int64("userID", client.userID).
		Bool("admin", client.isAdmin).
		Msg("Event feed client registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		h.logger.Info().
			Int64("userID", client.userID).
			Msg("Event feed client unregistered")
	}
}

// dispatch sends an event to all eligible clients
func (h *Hub) dispatch(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("event", event.Name).Msg("Failed to marshal event")
		return
	}

	h.mu.RLock()
	var slow []*Client
	delivered := 0
	for client, isAdmin := range h.clients {
		if event.AdminOnly && !isAdmin {
			continue
		}
		select {
		case client.send <- data:
			delivered++
		default:
			// Send buffer full; drop the client rather than block the hub
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	// Already inside the Run goroutine, so drop slow clients directly;
	// routing them through h.unregister would block on our own receiver.
	for _, client := range slow {
		h.unregisterClient(client)
	}

	h.logger.Debug().
		Str("event", event.Name).
		Int("clientCount", delivered).
		Msg("Event dispatched")
}

// Broadcast queues an event for delivery to every connected client
func (h *Hub) Broadcast(name string, payload interface{}) {
	h.emit(&Event{Name: name, Payload: payload, Timestamp: time.Now()})
}

// BroadcastAdmins queues an event for delivery to admin clients only
func (h *Hub) BroadcastAdmins(name string, payload interface{}) {
	h.emit(&Event{Name: name, Payload: payload, AdminOnly: true, Timestamp: time.Now()})
}

func (h *Hub) emit(event *Event) {
	select {
	case h.events <- event:
	default:
		// Fire-and-forget: dropping under pressure is acceptable
		h.logger.Warn().Str("event", event.Name).Msg("Event queue full, event dropped")
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
