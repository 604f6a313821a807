package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Message types
const (
	MessageTypeNotification = "notification"
	MessageTypeMarkRead     = "mark_read"
)

// Message represents a message sent over WebSocket
type Message struct {
	Type      string    `json:"type"`
	Username  string    `json:"username"`
	Content   string    `json:"content,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub keeps the connected clients of every user and fans messages out to them
type Hub struct {
	// Registered clients organized by username
	clients map[string]map[*Client]bool

	publish    chan *Message
	register   chan *Client
	unregister chan *Client

	// closed once Run has returned
	done chan struct{}

	mu sync.RWMutex

	listenersMu sync.RWMutex
	listeners   []chan *Message

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		publish:    make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run handles registrations and deliveries until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.publish:
			h.deliver(message)
		}
	}
}

// add hands client to the running hub. It reports false once the hub has stopped.
func (h *Hub) add(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// remove hands client back to the hub; a stopped hub has already closed it
func (h *Hub) remove(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.username]; !ok {
		h.clients[client.username] = make(map[*Client]bool)
	}
	h.clients[client.username][client] = true

	h.logger.Info().
		Str("username", client.username).
		Str("addr", client.remoteAddr()).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.username]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.username)
	}

	h.logger.Info().
		Str("username", client.username).
		Str("addr", client.remoteAddr()).
		Msg("Client unregistered")
}

func (h *Hub) deliver(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().Err(err).Str("username", message.Username).Msg("Failed to marshal message")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[message.Username]
	if !ok {
		h.logger.Debug().Str("username", message.Username).Msg("No connected clients for user")
		return
	}
	for client := range clients {
		select {
		case client.send <- data:
		default:
			// slow consumer
			h.removeLocked(client)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

// Publish queues message for the user's connected clients. It never blocks;
// when the queue is full the message is dropped.
func (h *Hub) Publish(message *Message) {
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now().UTC()
	}
	select {
	case h.publish <- message:
	default:
		h.logger.Warn().Str("username", message.Username).Msg("Hub queue full, dropping message")
	}
}

// Notify publishes a notification for username
func (h *Hub) Notify(username, content string) {
	h.Publish(&Message{Type: MessageTypeNotification, Username: username, Content: content})
}

// ClientsCount returns the number of connections for a user
func (h *Hub) ClientsCount(username string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[username])
}

// AddListener registers a channel receiving every inbound client message
func (h *Hub) AddListener(listener chan *Message) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()
	h.listeners = append(h.listeners, listener)
}

func (h *Hub) dispatchInbound(message *Message) {
	h.listenersMu.RLock()
	defer h.listenersMu.RUnlock()
	for _, l := range h.listeners {
		select {
		case l <- message:
		default:
			h.logger.Warn().Msg("Skipped slow message listener")
		}
	}
}
