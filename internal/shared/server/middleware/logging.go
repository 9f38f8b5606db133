package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/telemetry"
)

// Keys handlers set to enrich the request log line.
const (
	LogOpKey       = "op"
	LogExportIDKey = "exportId"
	LogReviewIDKey = "reviewId"
)

// Logging writes one request.complete line per request. Preflights and
// scrapes of skipPaths are not logged.
func Logging(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"route":       c.FullPath(),
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
			"bytes_out":   c.Writer.Size(),
			"client_ip":   c.ClientIP(),
			"user_id":     UserIDFromContext(c),
			"is_guest":    IsGuest(c),
			"op":          c.GetString(LogOpKey),
		}
		if id := c.GetString(LogExportIDKey); id != "" {
			fields["export_id"] = id
		}
		if id := c.GetString(LogReviewIDKey); id != "" {
			fields["review_id"] = id
		}
		if ua := c.Request.UserAgent(); ua != "" {
			fields["user_agent"] = ua
		}
		telemetry.Info("request.complete", fields)
	}
}
