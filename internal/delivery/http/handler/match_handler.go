package handler

import (
	"net/http"

	"github.com/dateit-app/dateit-backend/internal/usecase/matching"
	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchingUseCase *matching.MatchingUseCase
}

func NewMatchHandler(matchingUseCase *matching.MatchingUseCase) *MatchHandler {
	return &MatchHandler{
		matchingUseCase: matchingUseCase,
	}
}

// Create handles POST /matches/create
func (h *MatchHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req TargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	match, err := h.matchingUseCase.CreateMatch(c.Request.Context(), userID, req.TargetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, match)
}

// MyMatches handles GET /matches/my-matches
func (h *MatchHandler) MyMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	matches, err := h.matchingUseCase.MyMatches(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": matches,
		"count":   len(matches),
	})
}

// PendingRequests handles GET /matches/pending-requests
func (h *MatchHandler) PendingRequests(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	requests, err := h.matchingUseCase.PendingRequests(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"count":    len(requests),
	})
}

// Get handles GET /matches/:matchId
func (h *MatchHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	matchID, ok := pathID(c, "matchId")
	if !ok {
		return
	}

	match, err := h.matchingUseCase.GetMatch(c.Request.Context(), userID, matchID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// Accept handles POST /matches/accept/:matchId
func (h *MatchHandler) Accept(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	matchID, ok := pathID(c, "matchId")
	if !ok {
		return
	}

	match, err := h.matchingUseCase.Accept(c.Request.Context(), userID, matchID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// Reject handles DELETE /matches/reject/:matchId
func (h *MatchHandler) Reject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	matchID, ok := pathID(c, "matchId")
	if !ok {
		return
	}

	if err := h.matchingUseCase.Reject(c.Request.Context(), userID, matchID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "match request rejected"})
}

// End handles PATCH /matches/:matchId/end
func (h *MatchHandler) End(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	matchID, ok := pathID(c, "matchId")
	if !ok {
		return
	}

	match, err := h.matchingUseCase.End(c.Request.Context(), userID, matchID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}
