package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/shared/telemetry"
)

// VisitRecorder persists a single page visit.
type VisitRecorder interface {
	RecordVisit(ctx context.Context, ip, userAgent, path, sessionID string) error
}

// Visitor records one row per inbound request, best-effort. A failed write
// must never interrupt the request.
func Visitor(recorder VisitRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if recorder == nil || strings.HasPrefix(path, "/static/") || strings.HasPrefix(path, "/api/v1/admin") {
			c.Next()
			return
		}

		ip := c.ClientIP()
		ua := c.Request.UserAgent()
		sessionID := SessionIDFromContext(c)

		if err := recorder.RecordVisit(c.Request.Context(), ip, ua, path, sessionID); err != nil {
			telemetry.Warn("visitor.record_failed", map[string]any{
				"path":  path,
				"error": err.Error(),
			})
		}

		c.Next()
	}
}
