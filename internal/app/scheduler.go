package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dailyjobboost/api/internal/domain"
	"github.com/dailyjobboost/api/internal/platform/logging"
	"github.com/dailyjobboost/api/internal/ports"
)

// Scheduler delivery-time defaults: quotes go out at 09:00 local time.
const (
	DefaultDeliveryHour   = 9
	DefaultDeliveryMinute = 0
)

// QuotePicker selects the quote of the day for a cohort.
type QuotePicker interface {
	NextQuote(ctx context.Context, cohort domain.Cohort) (*domain.Quote, error)
}

// CohortDispatcher delivers one quote to a cohort of subscribers.
type CohortDispatcher interface {
	Dispatch(ctx context.Context, cohort domain.Cohort, quote *domain.Quote) (*domain.DispatchResult, error)
}

// Scheduler decides, on every tick, which timezone buckets are due for
// their daily delivery. A bucket is due when its local wall clock reads
// exactly the configured delivery hour and minute; each bucket fires at
// most once per local calendar day.
//
// Local time comes from the zone database, so daylight saving shifts are
// handled for free: "09:00 local" means 09:00 whatever the current UTC
// offset happens to be.
type Scheduler struct {
	subscribers ports.SubscriberRepository
	picker      QuotePicker
	dispatcher  CohortDispatcher
	metrics     *Metrics
	logger      *slog.Logger

	hour   int
	minute int
	now    func() time.Time

	locations map[string]*time.Location

	mu           sync.Mutex
	lastDispatch map[string]string // zone -> local date (2006-01-02)
}

// SchedulerConfig contains dependencies and tuning for the scheduler.
type SchedulerConfig struct {
	Subscribers ports.SubscriberRepository
	Picker      QuotePicker
	Dispatcher  CohortDispatcher
	Metrics     *Metrics
	Logger      *slog.Logger

	// DeliveryHour and DeliveryMinute set the local send time. An
	// explicit zero minute is fine; a zero hour falls back to the
	// default since midnight sends are never intended.
	DeliveryHour   int
	DeliveryMinute int

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// NewScheduler creates a scheduler with the provided dependencies.
// It fails if any supported timezone is missing from the host's zone
// database, since a silently skipped bucket would be much worse than a
// startup error.
func NewScheduler(cfg SchedulerConfig) (*Scheduler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.DeliveryHour <= 0 {
		cfg.DeliveryHour = DefaultDeliveryHour
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	locations := make(map[string]*time.Location, len(domain.SupportedTimezones))

	for _, zone := range domain.SupportedTimezones {
		loc, err := time.LoadLocation(zone)
		if err != nil {
			return nil, fmt.Errorf("loading timezone %s: %w", zone, err)
		}

		locations[zone] = loc
	}

	return &Scheduler{
		subscribers:  cfg.Subscribers,
		picker:       cfg.Picker,
		dispatcher:   cfg.Dispatcher,
		metrics:      cfg.Metrics,
		logger:       logger.With(slog.String("component", "app.Scheduler")),
		hour:         cfg.DeliveryHour,
		minute:       cfg.DeliveryMinute,
		now:          cfg.Now,
		locations:    locations,
		lastDispatch: make(map[string]string),
	}, nil
}

// OnTick checks every supported timezone against the current instant and
// dispatches the buckets whose local time matches the delivery minute.
// It is meant to be driven once per minute; a missed tick simply means
// that bucket waits for the next day.
//
// Due zones are processed sequentially. Two zones sharing a due minute is
// rare, and sequencing keeps the SMTP relay pacing honest.
func (s *Scheduler) OnTick(ctx context.Context) {
	now := s.now()

	for _, zone := range domain.SupportedTimezones {
		local := now.In(s.locations[zone])

		if local.Hour() != s.hour || local.Minute() != s.minute {
			continue
		}

		localDate := local.Format(time.DateOnly)
		if s.alreadyDispatched(zone, localDate) {
			continue
		}

		result, err := s.DispatchTimezone(ctx, zone)
		if err != nil {
			// Leave the bucket unmarked so the next matching tick can
			// retry within the same minute.
			s.logger.ErrorContext(ctx, "timezone dispatch failed",
				slog.String("timezone", zone),
				slog.Any("error", err),
			)

			s.metrics.observeRun(zone, "error", 0)

			continue
		}

		s.markDispatched(zone, localDate)

		s.logger.InfoContext(ctx, "timezone dispatch finished",
			slog.String("timezone", zone),
			slog.String("local_date", localDate),
			slog.Int("successful", result.Successful),
			slog.Int("failed", result.Failed),
		)
	}
}

// DispatchTimezone runs one full delivery for a single timezone bucket:
// load the cohort, pick its quote, fan out. It returns the delivery
// summary, or an error when the run could not start (unknown zone, empty
// catalog, storage failure). An empty cohort is a successful no-op.
func (s *Scheduler) DispatchTimezone(ctx context.Context, zone string) (*domain.DispatchResult, error) {
	if _, ok := s.locations[zone]; !ok {
		return nil, domain.NewUnsupportedTimezoneError(zone)
	}

	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = s.logger
	}

	start := time.Now()

	cohort, err := s.subscribers.ListActiveByTimezone(ctx, zone)
	if err != nil {
		// Storage being unreachable is an outage, not a bad request.
		// Callers map this to 503 so the trigger retries the bucket.
		return nil, domain.NewUnavailableError("subscriber storage",
			fmt.Sprintf("loading cohort for %s: %v", zone, err))
	}

	if len(cohort) == 0 {
		logger.InfoContext(ctx, "no active subscribers, skipping dispatch",
			slog.String("timezone", zone),
		)

		s.metrics.observeRun(zone, "empty", time.Since(start).Seconds())

		return &domain.DispatchResult{}, nil
	}

	quote, err := s.picker.NextQuote(ctx, cohort)
	if err != nil {
		return nil, fmt.Errorf("picking quote for %s: %w", zone, err)
	}

	result, err := s.dispatcher.Dispatch(ctx, cohort, quote)
	if err != nil {
		return nil, fmt.Errorf("dispatching to %s: %w", zone, err)
	}

	s.metrics.observeRun(zone, "ok", time.Since(start).Seconds())

	return result, nil
}

// DispatchAll runs a delivery for every supported timezone right now,
// regardless of local time. It backs the manual send-now endpoint; the
// per-day guard is not consulted, so a manual run never suppresses the
// scheduled one. Zone failures are logged and the remaining zones still
// run; the returned result aggregates all cohorts. An error comes back
// only when every zone failed.
func (s *Scheduler) DispatchAll(ctx context.Context) (*domain.DispatchResult, error) {
	zones := domain.SupportedTimezones

	fns := make([]func(context.Context) (*domain.DispatchResult, error), len(zones))
	for i, zone := range zones {
		zone := zone
		fns[i] = func(ctx context.Context) (*domain.DispatchResult, error) {
			return s.DispatchTimezone(ctx, zone)
		}
	}

	results := ParallelPartialLimit(ctx, 3, fns...)

	total := &domain.DispatchResult{}

	var firstErr error

	failedZones := 0

	for i, r := range results {
		if r.Err != nil {
			failedZones++

			if firstErr == nil {
				firstErr = r.Err
			}

			s.logger.ErrorContext(ctx, "manual dispatch failed",
				slog.String("timezone", zones[i]),
				slog.Any("error", r.Err),
			)

			continue
		}

		total.Successful += r.Value.Successful
		total.Failed += r.Value.Failed
	}

	if failedZones == len(zones) {
		return nil, firstErr
	}

	return total, nil
}

func (s *Scheduler) alreadyDispatched(zone, localDate string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastDispatch[zone] == localDate
}

func (s *Scheduler) markDispatched(zone, localDate string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastDispatch[zone] = localDate
}
