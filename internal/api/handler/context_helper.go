package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/solidus85/evvie-time-tracker/internal/api/middleware"
	"github.com/solidus85/evvie-time-tracker/internal/service"
	"github.com/solidus85/evvie-time-tracker/pkg/response"
)

// MustGetUserID extracts the authenticated user's ID from the context. On
// failure a 401 has already been written; the caller should return.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// writeConflict maps a fatal validation rejection onto the wire: scheduling
// conflicts are 409, parse and limit failures are 400. Returns false when
// err is not a ConflictError.
func writeConflict(c *gin.Context, err error) bool {
	var conflict *service.ConflictError
	if !errors.As(err, &conflict) {
		return false
	}
	switch conflict.Cause {
	case service.CauseOverlap:
		response.Conflict(c, 14101, conflict.Message)
	case service.CauseExclusion:
		response.Conflict(c, 14102, conflict.Message)
	default:
		response.BadRequest(c, 14103, conflict.Message)
	}
	return true
}
