package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dailyjobboost/api/internal/domain"
	"github.com/dailyjobboost/api/internal/platform/logging"
	"github.com/dailyjobboost/api/internal/ports"
	"golang.org/x/time/rate"
)

// Dispatcher delivery tuning defaults.
const (
	DefaultBatchSize     = 50
	DefaultBatchPause    = time.Second
	DefaultSendAttempts  = 3
	DefaultBackoffBase   = time.Second
	DefaultMaxConcurrent = DefaultBatchSize

	defaultSendTimeout = 30 * time.Second
)

// Dispatcher fans a single quote out to a cohort of subscribers. Delivery
// runs in batches to pace the SMTP relay; within a batch sends are
// concurrent, and each send retries transient failures with exponential
// backoff. A failed subscriber never aborts the run.
type Dispatcher struct {
	mailer      ports.QuoteMailer
	deliveryLog ports.DeliveryLogRepository
	metrics     *Metrics
	logger      *slog.Logger

	batchSize     int
	pacer         *rate.Limiter
	attempts      int
	backoffBase   time.Duration
	maxConcurrent int
	sendTimeout   time.Duration
}

// DispatcherConfig contains dependencies and tuning for the dispatcher.
// Zero values fall back to the package defaults.
type DispatcherConfig struct {
	Mailer      ports.QuoteMailer
	DeliveryLog ports.DeliveryLogRepository
	Metrics     *Metrics
	Logger      *slog.Logger

	// BatchSize is how many subscribers are handled per batch.
	BatchSize int

	// BatchPause is the minimum delay between consecutive batches.
	BatchPause time.Duration

	// SendAttempts is the total tries per subscriber, including the first.
	SendAttempts int

	// BackoffBase is the wait before the second attempt; it doubles per
	// subsequent attempt.
	BackoffBase time.Duration

	// MaxConcurrent caps in-flight sends within a batch.
	MaxConcurrent int
}

// NewDispatcher creates a dispatcher with the provided dependencies.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}

	if cfg.BatchPause <= 0 {
		cfg.BatchPause = DefaultBatchPause
	}

	if cfg.SendAttempts <= 0 {
		cfg.SendAttempts = DefaultSendAttempts
	}

	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = DefaultBackoffBase
	}

	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = cfg.BatchSize
	}

	return &Dispatcher{
		mailer:        cfg.Mailer,
		deliveryLog:   cfg.DeliveryLog,
		metrics:       cfg.Metrics,
		logger:        logger.With(slog.String("component", "app.Dispatcher")),
		batchSize:     cfg.BatchSize,
		pacer:         rate.NewLimiter(rate.Every(cfg.BatchPause), 1),
		attempts:      cfg.SendAttempts,
		backoffBase:   cfg.BackoffBase,
		maxConcurrent: cfg.MaxConcurrent,
		sendTimeout:   defaultSendTimeout,
	}
}

// Dispatch sends quote to every subscriber in cohort and records each
// outcome in the delivery log. It returns a summary of successes and
// failures; the error is non-nil only when the run itself could not
// proceed (context canceled between batches), never for individual
// subscriber failures.
func (d *Dispatcher) Dispatch(
	ctx context.Context,
	cohort domain.Cohort,
	quote *domain.Quote,
) (*domain.DispatchResult, error) {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = d.logger
	}

	result := &domain.DispatchResult{}
	if len(cohort) == 0 {
		return result, nil
	}

	start := time.Now()

	logger.InfoContext(ctx, "dispatching quote to cohort",
		slog.String("quote_id", quote.ID),
		slog.Int("cohort_size", len(cohort)),
		slog.Int("batch_size", d.batchSize),
	)

	for offset := 0; offset < len(cohort); offset += d.batchSize {
		// The pacer admits the first batch immediately and spaces the
		// rest out by the configured pause.
		err := d.pacer.Wait(ctx)
		if err != nil {
			return result, fmt.Errorf("waiting for batch slot: %w", err)
		}

		end := min(offset+d.batchSize, len(cohort))
		d.dispatchBatch(ctx, cohort[offset:end], quote, result)
	}

	logger.InfoContext(ctx, "dispatch complete",
		slog.String("quote_id", quote.ID),
		slog.Int("successful", result.Successful),
		slog.Int("failed", result.Failed),
		slog.Duration("elapsed", time.Since(start)),
	)

	return result, nil
}

func (d *Dispatcher) dispatchBatch(
	ctx context.Context,
	batch domain.Cohort,
	quote *domain.Quote,
	result *domain.DispatchResult,
) {
	fns := make([]func(context.Context) (*domain.Subscriber, error), len(batch))
	for i := range batch {
		sub := &batch[i]
		fns[i] = func(ctx context.Context) (*domain.Subscriber, error) {
			return sub, d.sendWithRetry(ctx, sub, quote)
		}
	}

	for _, r := range ParallelPartialLimit(ctx, d.maxConcurrent, fns...) {
		if r.Value == nil {
			// Never got a slot; the run was canceled before this send.
			result.Failed++
			continue
		}

		status := domain.DeliverySent
		if r.Err != nil {
			status = domain.DeliveryFailed

			result.Failed++
		} else {
			result.Successful++
		}

		d.metrics.observeEmail("daily_quote", string(status))
		d.recordDelivery(ctx, r.Value, quote, status, r.Err)
	}
}

// sendWithRetry attempts one delivery up to d.attempts times. The wait
// before attempt n is backoffBase * 2^(n-2), so with the defaults a
// subscriber sees retries after 1s and then 2s.
func (d *Dispatcher) sendWithRetry(ctx context.Context, sub *domain.Subscriber, quote *domain.Quote) error {
	var lastErr error

	for attempt := 1; attempt <= d.attempts; attempt++ {
		if attempt > 1 {
			d.metrics.observeRetry()

			backoff := d.backoffBase << (attempt - 2)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
		lastErr = d.mailer.SendDailyQuote(sendCtx, sub, quote)

		cancel()

		if lastErr == nil {
			return nil
		}

		d.logger.WarnContext(ctx, "send attempt failed",
			slog.String("subscriber_id", sub.ID),
			slog.Int("attempt", attempt),
			slog.Any("error", lastErr),
		)
	}

	return fmt.Errorf("sending after %d attempts: %w", d.attempts, lastErr)
}

// recordDelivery appends the outcome to the delivery log. A log write
// failure is reported but does not change the dispatch outcome; the
// rotation window tolerates occasional gaps.
func (d *Dispatcher) recordDelivery(
	ctx context.Context,
	sub *domain.Subscriber,
	quote *domain.Quote,
	status domain.DeliveryStatus,
	sendErr error,
) {
	entry := &domain.DeliveryLogEntry{
		SubscriberID: sub.ID,
		QuoteID:      quote.ID,
		Status:       status,
		SentAt:       time.Now().UTC(),
	}

	err := d.deliveryLog.Append(ctx, entry)
	if err != nil {
		d.logger.ErrorContext(ctx, "failed to record delivery",
			slog.String("subscriber_id", sub.ID),
			slog.String("quote_id", quote.ID),
			slog.String("status", string(status)),
			slog.Any("error", err),
		)
	}

	if sendErr != nil {
		d.logger.ErrorContext(ctx, "delivery failed",
			slog.String("subscriber_id", sub.ID),
			slog.String("quote_id", quote.ID),
			slog.Any("error", sendErr),
		)
	}
}
