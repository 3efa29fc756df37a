package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "codeberg.org/snonux/jsonlingo/internal/errors"
)

// statusFor maps a translation error to an HTTP status
func statusFor(err error, strict bool) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	case apperrors.IsFatal(err):
		return http.StatusBadGateway
	case errors.Is(err, apperrors.ErrShape), errors.Is(err, apperrors.ErrInput):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrService):
		return http.StatusBadGateway
	case strict && !errors.Is(err, apperrors.ErrConfig):
		// a leaf failed and took the document with it
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err, s.config.Strict)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", c.GetString(requestIDKey), "status", status, "error", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"detail": apperrors.UserFriendlyError(err)})
}
