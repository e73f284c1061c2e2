package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bradchang-ux/stock-backtest/internal/logger"
)

// RequestLogger emits one structured log line per request: method, path,
// status, latency, client IP, and the request ID injected by RequestID().
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		rid, _ := c.Get(RequestIDKey)
		logger.L().Info().
			Str("request_id", ridString(rid)).
			Str("method", method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func ridString(v any) string {
	s, _ := v.(string)
	return s
}
