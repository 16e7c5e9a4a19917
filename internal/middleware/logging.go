package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Logging writes one access line per request.
func (m Middleware) Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if _, ok := m.skipPaths[c.Request.URL.Path]; ok {
			return
		}

		ctx := c.Request.Context()
		status := c.Writer.Status()
		line := "%s %s status=%d bytes=%d duration=%s"
		args := []any{c.Request.Method, c.Request.URL.Path, status, c.Writer.Size(), time.Since(start)}

		switch {
		case status >= 500:
			m.l.Errorf(ctx, line, args...)
		case status >= 400:
			m.l.Warnf(ctx, line, args...)
		default:
			m.l.Infof(ctx, line, args...)
		}
	}
}

// Recovery turns a handler panic into a logged 500.
func (m Middleware) Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		m.l.Errorf(c.Request.Context(), "internal.middleware.Recovery: panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, rec)
		c.AbortWithStatus(500)
	})
}
