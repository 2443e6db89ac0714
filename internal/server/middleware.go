package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LogMiddleware logs one line per request.
func LogMiddleware(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Infof(
			"method=%s uri=%s status=%d size=%d duration=%s",
			c.Request.Method, c.Request.RequestURI, c.Writer.Status(), c.Writer.Size(), time.Since(start),
		)
	}
}
