package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dailyjobboost/api/internal/domain"
	"github.com/dailyjobboost/api/internal/platform/logging"
	"github.com/dailyjobboost/api/internal/ports"
	"github.com/google/uuid"
)

// SubscriptionService handles the public subscribe and unsubscribe
// surface.
type SubscriptionService struct {
	subscribers ports.SubscriberRepository
	deliveryLog ports.DeliveryLogRepository
	mailer      ports.QuoteMailer
	metrics     *Metrics
	logger      *slog.Logger
}

// SubscriptionServiceConfig contains dependencies for the subscription
// service.
type SubscriptionServiceConfig struct {
	Subscribers ports.SubscriberRepository
	DeliveryLog ports.DeliveryLogRepository
	Mailer      ports.QuoteMailer
	Metrics     *Metrics
	Logger      *slog.Logger
}

// NewSubscriptionService creates a subscription service with the provided
// dependencies.
func NewSubscriptionService(cfg SubscriptionServiceConfig) *SubscriptionService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SubscriptionService{
		subscribers: cfg.Subscribers,
		deliveryLog: cfg.DeliveryLog,
		mailer:      cfg.Mailer,
		metrics:     cfg.Metrics,
		logger:      logger.With(slog.String("component", "app.SubscriptionService")),
	}
}

// Subscribe registers email for daily quotes in the given timezone.
// Subscribing an address that already exists updates its timezone and
// reactivates it, so an unsubscribed reader can simply sign up again.
// New subscribers get a welcome email; a welcome that bounces is logged
// but does not fail the subscription.
//
// The timezone accepts either a supported IANA name or one of the short
// labels the signup form uses (pst, est, ...).
func (s *SubscriptionService) Subscribe(ctx context.Context, email, timezone string) (*domain.Subscriber, error) {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = s.logger
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.NewValidationError("email", "cannot be empty")
	}

	zone, err := domain.NormalizeTimezone(timezone)
	if err != nil {
		return nil, err
	}

	existing, err := s.subscribers.GetByEmail(ctx, email)
	if err != nil && !domain.IsNotFound(err) {
		return nil, fmt.Errorf("looking up subscriber: %w", err)
	}

	sub := &domain.Subscriber{
		Email:     email,
		Timezone:  zone,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}

	isNew := existing == nil
	if isNew {
		sub.ID = uuid.NewString()
	} else {
		sub.ID = existing.ID
		sub.CreatedAt = existing.CreatedAt
	}

	err = s.subscribers.Upsert(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("saving subscriber: %w", err)
	}

	logger.InfoContext(ctx, "subscriber saved",
		slog.String("subscriber_id", sub.ID),
		slog.String("timezone", zone),
		slog.Bool("new", isNew),
	)

	if isNew {
		s.sendWelcome(ctx, sub)
	}

	return sub, nil
}

// Unsubscribe deactivates the subscriber with the given email. The
// subscriber row and its delivery history are kept, so resubscribing
// later resumes rotation where it left off.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, email string) error {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = s.logger
	}

	email = strings.ToLower(strings.TrimSpace(email))

	err := s.subscribers.SetActive(ctx, email, false)
	if err != nil {
		return fmt.Errorf("deactivating subscriber: %w", err)
	}

	logger.InfoContext(ctx, "subscriber deactivated")

	return nil
}

func (s *SubscriptionService) sendWelcome(ctx context.Context, sub *domain.Subscriber) {
	err := s.mailer.SendWelcome(ctx, sub)
	if err != nil {
		s.metrics.observeEmail("welcome", string(domain.DeliveryFailed))
		s.logger.ErrorContext(ctx, "welcome email failed",
			slog.String("subscriber_id", sub.ID),
			slog.Any("error", err),
		)

		return
	}

	s.metrics.observeEmail("welcome", string(domain.DeliverySent))

	entry := &domain.DeliveryLogEntry{
		SubscriberID: sub.ID,
		Status:       domain.DeliveryWelcomeSent,
		SentAt:       time.Now().UTC(),
	}

	err = s.deliveryLog.Append(ctx, entry)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to record welcome delivery",
			slog.String("subscriber_id", sub.ID),
			slog.Any("error", err),
		)
	}
}
