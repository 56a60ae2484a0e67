// Package middleware holds the gin middleware of the DockAI API.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

// WithRequestID assigns every request an id, honoring one supplied by the
// client, and echoes it in the response header.
func WithRequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// RequestID returns the request id assigned by WithRequestID, or "" when the
// middleware did not run.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
