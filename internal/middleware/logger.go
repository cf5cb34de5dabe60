package middleware

import (
	"time" // Request duration

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// RequestLogger logs one line per request with logrus
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		entry := logrus.WithFields(logrus.Fields{
			"method":   c.Request.Method,           // HTTP method
			"path":     c.FullPath(),               // Route pattern
			"status":   c.Writer.Status(),          // Response status
			"duration": time.Since(start).String(), // Handling time
			"ip":       c.ClientIP(),               // Caller address
		})
		if c.Writer.Status() >= 500 {
			entry.Error("request failed")
			return
		}
		entry.Info("request handled")
	}
}
