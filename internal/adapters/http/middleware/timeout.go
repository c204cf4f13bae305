package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/dailyjobboost/api/internal/adapters/http/dto"
	"github.com/dailyjobboost/api/internal/platform/logging"
)

// Timeout places a deadline on the request context and answers 503 when it
// expires. The deadline only propagates through handlers that honor context
// cancellation; a handler that ignores its context keeps running, the
// client just stops waiting for it.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		done := make(chan struct{})
		go func() {
			defer close(done)
			c.Next()
		}()

		select {
		case <-done:
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				respondTimeout(c, timeout)
			}
		}
	}
}

func respondTimeout(c *gin.Context, timeout time.Duration) {
	ctx := c.Request.Context()

	var traceID string
	if span := trace.SpanFromContext(ctx); span.SpanContext().HasTraceID() {
		traceID = span.SpanContext().TraceID().String()
	}

	logging.FromContext(ctx).Warn("request timeout",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Duration("timeout", timeout),
		slog.String("trace_id", traceID),
	)

	if c.Writer.Written() {
		c.Abort()
		return
	}

	resp := dto.NewErrorResponse(dto.ErrorCodeTimeout, "request timeout exceeded")
	resp.TraceID = traceID

	c.AbortWithStatusJSON(http.StatusServiceUnavailable, resp)
}
