package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dateit-app/dateit-backend/internal/domain"
	"github.com/dateit-app/dateit-backend/internal/usecase/matching"
	"github.com/dateit-app/dateit-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the error response structure
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	if tooFast, ok := matching.IsTooFast(err); ok {
		c.Header("Retry-After", strconv.FormatInt(tooFast.RetryAfter(), 10))
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: err.Error()})
		return
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrMatchNotFound),
		errors.Is(err, domain.ErrMessageNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotParticipant):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrSelfAction),
		errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrMatchExists),
		errors.Is(err, domain.ErrNotPending),
		errors.Is(err, domain.ErrNotActive),
		errors.Is(err, domain.ErrMatchEnded):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	default:
		logger.L().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (int, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return 0, false
	}
	return userID.(int), true
}

// pathID parses an integer path parameter.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return id, true
}
