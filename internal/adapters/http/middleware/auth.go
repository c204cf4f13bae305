package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/dailyjobboost/api/internal/adapters/http/dto"
)

const (
	// ContextKeyAdminEmail is the gin context key for the authenticated admin's email.
	ContextKeyAdminEmail = "admin_email"

	bearerPrefix = "Bearer "
)

// TokenVerifier verifies an admin bearer token and returns the subject email.
type TokenVerifier interface {
	VerifyAdminToken(token string) (string, error)
}

// RequireAdmin returns middleware that requires a valid admin bearer token.
// The token is expected in the Authorization header as "Bearer <token>".
// On success the admin's email is stored in the gin context.
func RequireAdmin(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortWithUnauthorized(c, "missing bearer token")
			return
		}

		email, err := verifier.VerifyAdminToken(token)
		if err != nil {
			abortWithUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(ContextKeyAdminEmail, email)
		c.Next()
	}
}

// GetAdminEmail retrieves the authenticated admin's email from the gin context.
// Returns empty string if the request was not authenticated.
func GetAdminEmail(c *gin.Context) string {
	if v, exists := c.Get(ContextKeyAdminEmail); exists {
		if email, ok := v.(string); ok {
			return email
		}
	}

	return ""
}

// bearerToken extracts the token from the Authorization header.
// Returns empty string if the header is absent or not a bearer scheme.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}

	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
}

// abortWithUnauthorized aborts with a 401 Unauthorized response.
func abortWithUnauthorized(c *gin.Context, message string) {
	errResp := dto.NewErrorResponse(dto.ErrorCodeUnauthorized, message)

	// Add trace ID if available
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		errResp.TraceID = span.SpanContext().TraceID().String()
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, errResp)
}
