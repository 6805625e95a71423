package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/smbc/backend/internal/infrastructure/logger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracing returns otelgin followed by a handler that enriches the server span
// with the request id, user and venture once the rest of the chain has run.
// 5xx responses mark the span failed.
func Tracing(serviceName string, enabled bool) []gin.HandlerFunc {
	if !enabled {
		return nil
	}
	return []gin.HandlerFunc{otelgin.Middleware(serviceName), enrichSpan}
}

func enrichSpan(c *gin.Context) {
	c.Next()

	ctx := c.Request.Context()
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	attrs := []attribute.KeyValue{attribute.String("request_id", GetRequestID(c))}
	if userID := logger.GetUserID(ctx); userID != "" {
		attrs = append(attrs, attribute.String("user_id", userID))
	}
	if venture := logger.GetVenture(ctx); venture != "" {
		attrs = append(attrs, attribute.String("venture", venture))
	}
	span.SetAttributes(attrs...)
	if c.Writer.Status() >= 500 {
		span.SetStatus(codes.Error, "server error")
	}
}
