package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xxxsen/common/trace"
)

const requestIDHeader = "X-Request-Id"

// RequestID puts the request id on the request context as the trace id, so
// every logutil.GetLogger(ctx) line carries it, and echoes it back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, reqID)
		c.Request = c.Request.WithContext(trace.WithTraceId(c.Request.Context(), reqID))
		c.Next()
	}
}
