package handler

import (
	"Plaza/internal/pkg/hub"
	"Plaza/internal/pkg/response"
	"Plaza/internal/pkg/security"
	"Plaza/internal/service"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamHandler owns the live notification stream. Each connection is
// registered with the hub for the duration of the socket; an abrupt
// disconnect is detected by the read loop and deregisters immediately.
type StreamHandler struct {
	hub *hub.Hub
}

func NewStreamHandler(h *hub.Hub) *StreamHandler {
	return &StreamHandler{hub: h}
}

func (s *StreamHandler) Connect(c *gin.Context) {
	// Browsers cannot set headers on websocket dials, so the token
	// rides in the query string.
	token := c.Query("token")
	if token == "" {
		response.Error(c, service.UnauthorizedError)
		return
	}
	claims, err := security.ValidateToken(token)
	if err != nil {
		log.Warn("stream auth failed", "err", err)
		response.Error(c, service.UnauthorizedError)
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("websocket upgrade failed", "err", err)
		return
	}

	client := hub.NewClient(userID, conn)
	s.hub.Register(client)
	defer s.hub.Unregister(client)

	go client.WritePump()

	log.Info("notification stream connected", "userID", userID)

	// Read loop: the client never sends application data; this only
	// detects closure, clean or not.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Info("notification stream disconnected", "userID", userID)
			return
		}
	}
}
