package handlers

import (
	"time"

	"turn_queue/internal/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request. Errors attached with c.Error are
// included; internal ones are logged at error level.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if uid := c.GetString("userID"); uid != "" {
			fields = append(fields, zap.String("user_id", uid))
		}

		err := c.Errors.Last()
		switch {
		case err == nil:
			logger.Info("request", fields...)
		case apperr.KindOf(err.Err) == apperr.Internal:
			logger.Error("request failed", append(fields, zap.Error(err.Err))...)
		default:
			logger.Info("request rejected", append(fields, zap.String("reason", err.Err.Error()))...)
		}
	}
}
