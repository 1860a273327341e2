package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobvault/internal/apperr"
)

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func AbortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

func Unauthorized(c *gin.Context)           { Error(c, http.StatusUnauthorized, "unauthorized") }
func BadRequest(c *gin.Context, msg string) { Error(c, http.StatusBadRequest, msg) }
func Forbidden(c *gin.Context, msg string)  { Error(c, http.StatusForbidden, msg) }
func NotFound(c *gin.Context, msg string)   { Error(c, http.StatusNotFound, msg) }
func Conflict(c *gin.Context, msg string)   { Error(c, http.StatusConflict, msg) }
func Internal(c *gin.Context, msg string)   { Error(c, http.StatusInternalServerError, msg) }

func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.Unauthenticated:
		return http.StatusUnauthorized
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Validation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondError translates a service error into the uniform JSON error shape.
// The underlying cause is only exposed when debug is on; clients otherwise see
// the stable user-facing message alone.
func RespondError(c *gin.Context, debug bool, err error) {
	var appErr *apperr.Error
	msg := "internal error"
	kind := apperr.Upstream
	dev := ""
	if errors.As(err, &appErr) {
		msg = appErr.Message
		kind = appErr.Kind
		dev = appErr.DevMessage()
	} else if err != nil {
		dev = err.Error()
	}

	body := gin.H{"error": msg}
	if debug && dev != "" {
		body["dev_message"] = dev
	}
	c.JSON(statusForKind(kind), body)
}

func userIDFromContext(c *gin.Context) (uint, bool) {
	value, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}
