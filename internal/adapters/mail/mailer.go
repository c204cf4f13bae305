// Package mail delivers email over SMTP. A circuit breaker sits in
// front of the relay so a dead relay fails fast instead of stalling
// every dispatch batch on connect timeouts.
package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/dailyjobboost/api/internal/domain"
	gomail "github.com/wneessen/go-mail"
)

// ErrRelayUnavailable is returned while the circuit is open.
var ErrRelayUnavailable = errors.New("smtp relay unavailable")

// Breaker defaults.
const (
	defaultFailureThreshold = 5
	defaultCooldown         = 30 * time.Second
	defaultProbeQuota       = 2
)

// Config holds the SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string

	// From is the sender address; FromName its display name.
	From     string
	FromName string

	// BaseURL is the public URL of this service, used to build
	// unsubscribe links.
	BaseURL string
}

// TokenIssuer signs unsubscribe tokens for email footers.
type TokenIssuer interface {
	UnsubscribeToken(sub *domain.Subscriber) (string, error)
}

// Mailer implements ports.QuoteMailer over SMTP.
type Mailer struct {
	client  *gomail.Client
	cfg     Config
	tokens  TokenIssuer
	breaker *breaker
	logger  *slog.Logger
}

// New creates a mailer connected to the configured relay.
func New(cfg Config, tokens TokenIssuer, logger *slog.Logger) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}

	if cfg.From == "" {
		return nil, errors.New("smtp from address is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}

	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating smtp client: %w", err)
	}

	logger = logger.With(slog.String("component", "mail.Mailer"))

	b := newBreaker(breakerConfig{
		FailureThreshold: defaultFailureThreshold,
		Cooldown:         defaultCooldown,
		ProbeQuota:       defaultProbeQuota,
	})
	b.onStateChange = func(from, to breakerState) {
		logger.Warn("smtp circuit state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	}

	return &Mailer{
		client:  client,
		cfg:     cfg,
		tokens:  tokens,
		breaker: b,
		logger:  logger,
	}, nil
}

// SendDailyQuote delivers the given quote to one subscriber.
func (m *Mailer) SendDailyQuote(ctx context.Context, sub *domain.Subscriber, quote *domain.Quote) error {
	unsubscribe, err := m.unsubscribeURL(sub)
	if err != nil {
		return err
	}

	body, err := renderDaily(quote, unsubscribe)
	if err != nil {
		return err
	}

	return m.send(ctx, sub.Email, "Your daily boost is here", body)
}

// SendWelcome delivers the welcome email to a new subscriber.
func (m *Mailer) SendWelcome(ctx context.Context, sub *domain.Subscriber) error {
	unsubscribe, err := m.unsubscribeURL(sub)
	if err != nil {
		return err
	}

	body, err := renderWelcome(sub.Timezone, unsubscribe)
	if err != nil {
		return err
	}

	return m.send(ctx, sub.Email, "Welcome to DailyJobBoost", body)
}

func (m *Mailer) send(ctx context.Context, to, subject, htmlBody string) error {
	if !m.breaker.allow() {
		return fmt.Errorf("%w: circuit open", ErrRelayUnavailable)
	}

	msg := gomail.NewMsg()

	err := msg.FromFormat(m.cfg.FromName, m.cfg.From)
	if err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}

	err = msg.To(to)
	if err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	err = m.client.DialAndSendWithContext(ctx, msg)
	if err != nil {
		m.breaker.recordFailure()

		return fmt.Errorf("sending mail: %w", err)
	}

	m.breaker.recordSuccess()

	return nil
}

func (m *Mailer) unsubscribeURL(sub *domain.Subscriber) (string, error) {
	token, err := m.tokens.UnsubscribeToken(sub)
	if err != nil {
		return "", fmt.Errorf("signing unsubscribe token: %w", err)
	}

	return fmt.Sprintf("%s/api/v1/users/unsubscribe/%s",
		m.cfg.BaseURL, url.PathEscape(token)), nil
}

// Name implements ports.HealthChecker.
func (m *Mailer) Name() string { return "smtp" }

// Check implements ports.HealthChecker by dialing the relay.
func (m *Mailer) Check(ctx context.Context) error {
	err := m.client.DialWithContext(ctx)
	if err != nil {
		return fmt.Errorf("dialing smtp relay: %w", err)
	}

	return m.client.Close()
}
