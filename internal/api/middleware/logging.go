package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, reusing the caller's when it sends one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("requestID", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs all incoming requests with details
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		statusEmoji := "✅"
		if status >= 400 && status < 500 {
			statusEmoji = "⚠️"
		} else if status >= 500 {
			statusEmoji = "❌"
		}

		log.Printf("%s [%s] %s %d - %v (%s)", statusEmoji, method, path, status, duration, c.GetString("requestID"))

		for _, e := range c.Errors {
			log.Printf("❌ [Error] %v", e.Err)
		}
	}
}
