package middleware

import (
	"github.com/google/uuid"

	"github.com/gin-gonic/gin"
)

// RequestID tags each request and response with a unique identifier.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()
	}
}
