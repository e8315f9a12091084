package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/pkg/auth"
)

// Handler for WebSocket connections
type Handler struct {
	hub        *Hub
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, jwtService *auth.JWTService, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:        hub,
		jwtService: jwtService,
		logger:     logger,
	}
}

// HandleConnection godoc
// @Summary Establish a WebSocket connection for the live event feed
// @Description Upgrades the HTTP connection to a WebSocket that receives named events (new-report, comments-updated, report-status-changed, me-too-updated). Admin users additionally receive admin-room events.
// @Tags websocket
// @Produce json
// @Param token query string true "JWT access token"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} gin.H "Unauthorized: JWT token missing or invalid"
// @Router /ws/events [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	// Browsers cannot set headers on websocket dials, the token rides in
	// the query string instead.
	token := c.Query("token")
	claims, err := h.jwtService.ValidateAndExtractClaims(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid or missing token",
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("userID", claims.UserID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:     h.hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		userID:  claims.UserID,
		isAdmin: claims.RoleType == string(models.RoleAdmin),
		logger:  h.logger,
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Int64("userID", claims.UserID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("Event feed connection established")
}
