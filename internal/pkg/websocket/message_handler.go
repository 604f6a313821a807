package websocket

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ReadMarker marks every notification of a user as read
type ReadMarker interface {
	MarkAllReadFor(ctx context.Context, username string) error
}

// MessageHandler acts on control messages sent by connected clients
type MessageHandler struct {
	hub    *Hub
	marker ReadMarker
	logger zerolog.Logger
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(hub *Hub, marker ReadMarker, logger zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		hub:    hub,
		marker: marker,
		logger: logger,
	}
}

// Start consumes inbound messages until ctx is cancelled
func (h *MessageHandler) Start(ctx context.Context) {
	messages := make(chan *Message, 64)
	h.hub.AddListener(messages)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-messages:
				h.Handle(ctx, msg)
			}
		}
	}()
}

// Handle processes a single inbound message
func (h *MessageHandler) Handle(ctx context.Context, msg *Message) {
	switch msg.Type {
	case MessageTypeMarkRead:
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := h.marker.MarkAllReadFor(ctx, msg.Username); err != nil {
			h.logger.Error().Err(err).Str("username", msg.Username).Msg("Failed to mark notifications read")
		}
	default:
		h.logger.Debug().Str("type", msg.Type).Str("username", msg.Username).Msg("Ignoring client message")
	}
}
