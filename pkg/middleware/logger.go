package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/courtside-tickets/pkg/logger"
	"go.uber.org/zap"
)

// Logger logs one line per request. 5xx at error level, 4xx at warn.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", GetRequestID(c)),
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.Int("body_size", c.Writer.Size()),
		}
		if userID, ok := GetUserID(c); ok {
			fields = append(fields, zap.String("user_id", userID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		l := log.WithContext(c.Request.Context())
		switch {
		case status >= 500:
			l.Error("Server error", fields...)
		case status >= 400:
			l.Warn("Client error", fields...)
		default:
			l.Info("Request completed", fields...)
		}
	}
}
