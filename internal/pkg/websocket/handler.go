package websocket

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// IdentityFunc returns the username of the authenticated caller
type IdentityFunc func(c *gin.Context) (string, bool)

// Handler upgrades authenticated requests to notification streams
type Handler struct {
	hub      *Hub
	identity IdentityFunc
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, identity IdentityFunc, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		identity: identity,
		logger:   logger,
	}
}

// HandleConnection godoc
// @Summary Stream notifications
// @Description Upgrades to a WebSocket that receives the caller's notifications as they are created
// @Tags notifications
// @Security BearerAuth
// @Param token query string false "Access token when the Authorization header cannot be set"
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} dto.ErrorResponse
// @Router /ws/notifications [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	username, ok := h.identity(c)
	if !ok || username == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "authentication required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Str("username", username).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:      h.hub,
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		username: username,
		logger:   h.logger,
	}
	if !h.hub.add(client) {
		h.logger.Warn().Str("username", username).Msg("Notification hub stopped, closing connection")
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), time.Now().Add(writeWait))
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
