package handler

import (
	"net/http"
	"strconv"

	"github.com/dateit-app/dateit-backend/internal/usecase/chat"
	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	chatUseCase *chat.ChatUseCase
}

func NewMessageHandler(chatUseCase *chat.ChatUseCase) *MessageHandler {
	return &MessageHandler{
		chatUseCase: chatUseCase,
	}
}

// SendMessageRequest represents an outgoing chat message
type SendMessageRequest struct {
	MatchID int    `json:"match_id" binding:"required,gt=0"`
	Content string `json:"content" binding:"required"`
}

// Send handles POST /messages
func (h *MessageHandler) Send(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	msg, err := h.chatUseCase.Send(c.Request.Context(), userID, req.MatchID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// History handles GET /messages/:matchId
func (h *MessageHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	matchID, ok := pathID(c, "matchId")
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	history, err := h.chatUseCase.History(c.Request.Context(), userID, matchID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

// MarkRead handles PATCH /messages/:matchId/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	matchID, ok := pathID(c, "matchId")
	if !ok {
		return
	}

	updated, err := h.chatUseCase.MarkRead(c.Request.Context(), userID, matchID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// UnreadCount handles GET /messages/:matchId/unread-count
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	matchID, ok := pathID(c, "matchId")
	if !ok {
		return
	}

	count, err := h.chatUseCase.UnreadCount(c.Request.Context(), userID, matchID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}
