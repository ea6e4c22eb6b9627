package apiutil

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	TraceIDHeader = "X-Trace-ID"
	TraceIDKey    = "trace_id"
)

// TraceIDMiddleware propagates the caller's X-Trace-ID or assigns a fresh one,
// storing it in the gin context and echoing it on the response.
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		c.Set(TraceIDKey, traceID)
		c.Header(TraceIDHeader, traceID)
		c.Next()
	}
}

// TraceID returns the trace id assigned by TraceIDMiddleware, if any.
func TraceID(c *gin.Context) string {
	return c.GetString(TraceIDKey)
}
