package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/recipebook/backend/pkg/logger"
)

// RequestLogger logs one structured line per request once the handler
// chain has finished.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		event := logger.Get().Info()
		if c.Writer.Status() >= 500 {
			event = logger.Get().Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}
