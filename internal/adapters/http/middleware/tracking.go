// Package middleware provides HTTP middleware components for the Gin server.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dailyjobboost/api/internal/platform/logging"
)

const (
	// HeaderRequestID identifies a single HTTP request.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID identifies a business transaction that may span
	// several requests and services. Propagated unchanged when the caller
	// supplies one.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyRequestID is the gin context key for the request ID.
	ContextKeyRequestID = "request_id"

	// ContextKeyCorrelationID is the gin context key for the correlation ID.
	ContextKeyCorrelationID = "correlation_id"
)

// RequestID tags every request with an ID: the caller's X-Request-ID if
// present, a fresh UUID otherwise. The ID is echoed on the response and
// attached to the context logger.
func RequestID() gin.HandlerFunc {
	return trackingID(HeaderRequestID, ContextKeyRequestID, logging.WithRequestID)
}

// CorrelationID does the same for X-Correlation-ID. A missing header means
// this service is the transaction origin and mints the ID.
func CorrelationID() gin.HandlerFunc {
	return trackingID(HeaderCorrelationID, ContextKeyCorrelationID, logging.WithCorrelationID)
}

// trackingID is the shared extract-or-mint flow behind both middlewares.
// The tag function binds the ID to the request-scoped logger so every log
// line downstream carries it.
func trackingID(header, key string, tag func(context.Context, string) context.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(header)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(key, id)
		c.Header(header, id)
		c.Request = c.Request.WithContext(tag(c.Request.Context(), id))

		c.Next()
	}
}

// GetRequestID returns the request ID set by RequestID, or "" before it ran.
func GetRequestID(c *gin.Context) string {
	return trackingIDFrom(c, ContextKeyRequestID)
}

// GetCorrelationID returns the correlation ID set by CorrelationID, or ""
// before it ran.
func GetCorrelationID(c *gin.Context) string {
	return trackingIDFrom(c, ContextKeyCorrelationID)
}

func trackingIDFrom(c *gin.Context, key string) string {
	v, ok := c.Get(key)
	if !ok {
		return ""
	}

	id, _ := v.(string)

	return id
}
