package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guttosm/mpdash/internal/logger"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"

	maxRequestIDLen = 128
)

// RequestID is a Gin middleware that tags each request with an identifier.
//
// Behavior:
//   - Reuses a non-empty inbound X-Request-ID (up to 128 bytes), otherwise
//     generates a UUID v4.
//   - Stores it in the Gin context under "request_id" and on the request
//     context via logger.WithRequestID, so upstream calls forward it.
//   - Echoes it in the "X-Request-ID" response header.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID())
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Writer.Header().Set(RequestIDHeader, id)

		c.Next()
	}
}
