package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dailyjobboost/api/internal/domain"
	"github.com/dailyjobboost/api/internal/ports"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Token lifetime defaults. Unsubscribe links live in inboxes for a long
// time, so they get a much longer window than operator sessions.
const (
	DefaultAdminTokenTTL       = 12 * time.Hour
	DefaultUnsubscribeTokenTTL = 90 * 24 * time.Hour
)

// Token audiences keep the two token kinds from being swapped for each
// other.
const (
	audienceAdmin       = "admin"
	audienceUnsubscribe = "unsubscribe"
)

// AuthService issues and verifies the service's two token kinds: operator
// session tokens for the quote admin API, and unsubscribe tokens embedded
// in email footers.
type AuthService struct {
	admins ports.AdminRepository
	logger *slog.Logger

	secret         []byte
	adminTTL       time.Duration
	unsubscribeTTL time.Duration
	now            func() time.Time
}

// AuthServiceConfig contains dependencies and settings for the auth
// service.
type AuthServiceConfig struct {
	Admins ports.AdminRepository
	Logger *slog.Logger

	// Secret signs all tokens (HMAC-SHA256). Required.
	Secret string

	AdminTokenTTL       time.Duration
	UnsubscribeTokenTTL time.Duration

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// NewAuthService creates an auth service with the provided dependencies.
func NewAuthService(cfg AuthServiceConfig) (*AuthService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("auth: signing secret is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.AdminTokenTTL <= 0 {
		cfg.AdminTokenTTL = DefaultAdminTokenTTL
	}

	if cfg.UnsubscribeTokenTTL <= 0 {
		cfg.UnsubscribeTokenTTL = DefaultUnsubscribeTokenTTL
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &AuthService{
		admins:         cfg.Admins,
		logger:         logger.With(slog.String("component", "app.AuthService")),
		secret:         []byte(cfg.Secret),
		adminTTL:       cfg.AdminTokenTTL,
		unsubscribeTTL: cfg.UnsubscribeTokenTTL,
		now:            cfg.Now,
	}, nil
}

// Login verifies an operator's credentials and returns a session token.
// Unknown emails and wrong passwords both come back as
// domain.ErrUnauthorized so the response does not leak which one it was.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", domain.ErrUnauthorized
		}

		return "", fmt.Errorf("looking up admin: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password))
	if err != nil {
		s.logger.WarnContext(ctx, "rejected login", slog.String("admin_id", admin.ID))

		return "", domain.ErrUnauthorized
	}

	return s.sign(audienceAdmin, admin.Email, s.adminTTL)
}

// VerifyAdminToken checks an operator session token and returns the admin
// email it was issued to.
func (s *AuthService) VerifyAdminToken(token string) (string, error) {
	return s.verify(token, audienceAdmin)
}

// UnsubscribeToken returns the token embedded in a subscriber's
// unsubscribe link.
func (s *AuthService) UnsubscribeToken(sub *domain.Subscriber) (string, error) {
	return s.sign(audienceUnsubscribe, sub.Email, s.unsubscribeTTL)
}

// VerifyUnsubscribeToken checks an unsubscribe token and returns the
// subscriber email it was issued to.
func (s *AuthService) VerifyUnsubscribeToken(token string) (string, error) {
	return s.verify(token, audienceUnsubscribe)
}

func (s *AuthService) sign(audience, subject string, ttl time.Duration) (string, error) {
	now := s.now()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return token, nil
}

func (s *AuthService) verify(raw, audience string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{},
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return "", domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domain.ErrUnauthorized
	}

	return claims.Subject, nil
}
