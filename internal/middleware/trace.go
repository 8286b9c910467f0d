package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"homework-planner/pkg/log"
)

// TraceHeader carries the request trace id in and out.
const TraceHeader = "X-Trace-Id"

// Trace tags the request context with a trace id and logs one line per request.
func (m Middleware) Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		ctx := log.WithTraceID(c.Request.Context(), traceID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(TraceHeader, traceID)

		start := time.Now()
		c.Next()

		m.l.Infof(ctx, "%s %s -> %d in %s", c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
