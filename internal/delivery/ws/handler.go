package ws

import (
	"net/http"

	"github.com/dateit-app/dateit-backend/internal/repository"
	"github.com/dateit-app/dateit-backend/internal/usecase/auth"
	"github.com/dateit-app/dateit-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades authenticated requests to WebSocket sessions.
type Handler struct {
	hub         *Hub
	authUseCase *auth.AuthUseCase
	matchRepo   repository.MatchRepository
}

func NewHandler(hub *Hub, authUseCase *auth.AuthUseCase, matchRepo repository.MatchRepository) *Handler {
	return &Handler{
		hub:         hub,
		authUseCase: authUseCase,
		matchRepo:   matchRepo,
	}
}

// Serve handles GET /ws. The login token comes as a query parameter
// because browser WebSocket clients cannot set headers.
func (h *Handler) Serve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
		return
	}

	userID, err := h.authUseCase.VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L().Warn("websocket upgrade failed",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
		return
	}

	client := newClient(h.hub, conn, h.matchRepo, userID)
	h.hub.Register(client)

	go client.writePump()
	go client.readPump()
}
