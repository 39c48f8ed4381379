package middleware

import (
	"github.com/JonnyWalker81/apitemplate/internal/logger"
	"github.com/gin-gonic/gin"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"

	maxRequestIDLen = 128
)

// RequestID propagates the caller's X-Request-ID, or generates one, and
// attaches it to the request context so every log entry carries it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		incoming := c.GetHeader(RequestIDHeader)
		if !validRequestID(incoming) {
			incoming = ""
		}

		ctx := logger.WithRequestID(c.Request.Context(), incoming)
		id := logger.RequestIDFromContext(ctx)
		c.Request = c.Request.WithContext(ctx)

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
