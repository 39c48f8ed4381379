package middleware

import (
	"fmt"
	"net/http"

	"github.com/JonnyWalker81/apitemplate/internal/apierror"
	"github.com/gin-gonic/gin"
)

// BodyLimit caps request bodies at limit bytes. Requests that declare a
// larger Content-Length are rejected up front; others fail while binding.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 || c.Request.Body == nil {
			c.Next()
			return
		}

		if c.Request.ContentLength > limit {
			_ = c.Error(apierror.NewRequestError(http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Request body exceeds the %d byte limit.", limit)))
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
