// Package trigger drives the scheduler from wall-clock time.
package trigger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Ticker is what the trigger drives once per minute.
type Ticker interface {
	OnTick(ctx context.Context)
}

// DefaultTickTimeout bounds one tick's dispatch work. A cohort run is
// paced in batches with per-send retries, so the budget matches the
// webhook path's, not the tick cadence. Overlapping ticks are safe: the
// scheduler's per-day guard makes the later tick a no-op for any bucket
// the earlier one is already handling.
const DefaultTickTimeout = 5 * time.Minute

// CronTrigger fires the scheduler every minute. The cron runner is
// pinned to UTC; all timezone arithmetic happens in the scheduler, the
// trigger only supplies a steady pulse.
type CronTrigger struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a minute-resolution trigger for ticker. tickTimeout caps a
// single tick's dispatch; zero or negative selects DefaultTickTimeout.
func New(ticker Ticker, tickTimeout time.Duration, logger *slog.Logger) (*CronTrigger, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if tickTimeout <= 0 {
		tickTimeout = DefaultTickTimeout
	}

	logger = logger.With(slog.String("component", "trigger.CronTrigger"))

	runner := cron.New(cron.WithLocation(time.UTC))

	_, err := runner.AddFunc("* * * * *", tick(ticker, tickTimeout))
	if err != nil {
		return nil, fmt.Errorf("registering tick: %w", err)
	}

	return &CronTrigger{cron: runner, logger: logger}, nil
}

// tick builds the per-minute job: one bounded context per invocation.
func tick(ticker Ticker, timeout time.Duration) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		ticker.OnTick(ctx)
	}
}

// Start begins ticking in a background goroutine.
func (t *CronTrigger) Start() {
	t.logger.Info("scheduler trigger started")
	t.cron.Start()
}

// Stop halts ticking and waits for an in-flight tick to finish.
func (t *CronTrigger) Stop(ctx context.Context) {
	done := t.cron.Stop().Done()

	select {
	case <-done:
	case <-ctx.Done():
		t.logger.Warn("gave up waiting for in-flight tick")
	}

	t.logger.Info("scheduler trigger stopped")
}
