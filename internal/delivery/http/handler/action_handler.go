package handler

import (
	"net/http"

	"github.com/dateit-app/dateit-backend/internal/usecase/matching"
	"github.com/gin-gonic/gin"
)

// ActionHandler serves the like, pass and suggestion endpoints.
type ActionHandler struct {
	matchingUseCase *matching.MatchingUseCase
}

func NewActionHandler(matchingUseCase *matching.MatchingUseCase) *ActionHandler {
	return &ActionHandler{
		matchingUseCase: matchingUseCase,
	}
}

// TargetRequest names the other user of a like or pass.
type TargetRequest struct {
	TargetID int `json:"target_id" binding:"required,gt=0"`
}

// Like handles POST /auth/like
func (h *ActionHandler) Like(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req TargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.matchingUseCase.Like(c.Request.Context(), userID, req.TargetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Pass handles POST /auth/pass
func (h *ActionHandler) Pass(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req TargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.matchingUseCase.Pass(c.Request.Context(), userID, req.TargetID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "passed"})
}

// Suggestions handles GET /auth/suggestions
func (h *ActionHandler) Suggestions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	suggestions, err := h.matchingUseCase.Suggestions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}
