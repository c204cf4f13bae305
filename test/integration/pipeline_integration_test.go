//go:build integration

package integration

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyjobboost/api/internal/adapters/storage"
	"github.com/dailyjobboost/api/internal/app"
	"github.com/dailyjobboost/api/internal/domain"
)

// captureMailer records deliveries instead of talking to an SMTP relay.
type captureMailer struct {
	mu   sync.Mutex
	sent []capturedSend
}

type capturedSend struct {
	email   string
	quoteID string
}

func (m *captureMailer) SendDailyQuote(_ context.Context, sub *domain.Subscriber, quote *domain.Quote) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, capturedSend{email: sub.Email, quoteID: quote.ID})

	return nil
}

func (m *captureMailer) SendWelcome(context.Context, *domain.Subscriber) error {
	return nil
}

func (m *captureMailer) drain() []capturedSend {
	m.mu.Lock()
	defer m.mu.Unlock()

	sent := m.sent
	m.sent = nil

	return sent
}

type pipeline struct {
	store     *storage.Store
	mailer    *captureMailer
	scheduler *app.Scheduler
}

// newPipeline wires a full delivery pipeline over a throwaway sqlite
// database: storage, rotation, dispatcher, scheduler.
func newPipeline(t *testing.T) *pipeline {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := storage.Open(context.Background(), storage.Config{
		Driver: storage.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "pipeline.db"),
	}, logger)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	mailer := &captureMailer{}

	rotation := app.NewRotationEngine(app.RotationEngineConfig{
		Quotes:      store.Quotes,
		DeliveryLog: store.DeliveryLog,
		Logger:      logger,
	})

	dispatcher := app.NewDispatcher(app.DispatcherConfig{
		Mailer:      mailer,
		DeliveryLog: store.DeliveryLog,
		Logger:      logger,
		BatchSize:   10,
		BatchPause:  time.Millisecond,
	})

	scheduler, err := app.NewScheduler(app.SchedulerConfig{
		Subscribers: store.Subscribers,
		Picker:      rotation,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	require.NoError(t, err)

	return &pipeline{
		store:     store,
		mailer:    mailer,
		scheduler: scheduler,
	}
}

func (p *pipeline) seedQuotes(t *testing.T, n int) {
	t.Helper()

	for i := 1; i <= n; i++ {
		require.NoError(t, p.store.Quotes.Create(context.Background(), &domain.Quote{
			ID:        fmt.Sprintf("quote-%d", i),
			Content:   fmt.Sprintf("Quote number %d", i),
			Author:    "Test Author",
			CreatedAt: time.Now().UTC(),
		}))
	}
}

func (p *pipeline) seedSubscribers(t *testing.T, zone string, n int) {
	t.Helper()

	for i := 1; i <= n; i++ {
		require.NoError(t, p.store.Subscribers.Upsert(context.Background(), &domain.Subscriber{
			ID:        fmt.Sprintf("%s-sub-%d", zone, i),
			Email:     fmt.Sprintf("sub-%d-%s@example.com", i, zone),
			Timezone:  zone,
			Active:    true,
			CreatedAt: time.Now().UTC(),
		}))
	}
}

// TestPipeline_DispatchTimezone covers one full delivery run end to end:
// cohort load, quote pick, fan-out, delivery log writes.
func TestPipeline_DispatchTimezone(t *testing.T) {
	p := newPipeline(t)
	p.seedQuotes(t, 5)
	p.seedSubscribers(t, "America/New_York", 25)
	p.seedSubscribers(t, "Asia/Tokyo", 3)

	result, err := p.scheduler.DispatchTimezone(context.Background(), "America/New_York")
	require.NoError(t, err)

	assert.Equal(t, 25, result.Successful)
	assert.Equal(t, 0, result.Failed)

	sent := p.mailer.drain()
	require.Len(t, sent, 25, "only the New York cohort should receive email")

	// Everyone in the cohort gets the same quote of the day.
	for _, s := range sent {
		assert.Equal(t, sent[0].quoteID, s.quoteID)
		assert.Contains(t, s.email, "America/New_York")
	}
}

// TestPipeline_RotationCycle verifies that consecutive dispatches cycle
// through the whole catalog before repeating a quote.
func TestPipeline_RotationCycle(t *testing.T) {
	p := newPipeline(t)

	const catalogSize = 4
	p.seedQuotes(t, catalogSize)
	p.seedSubscribers(t, "Europe/London", 2)

	seen := make(map[string]bool, catalogSize)

	for day := 0; day < catalogSize; day++ {
		_, err := p.scheduler.DispatchTimezone(context.Background(), "Europe/London")
		require.NoError(t, err)

		sent := p.mailer.drain()
		require.NotEmpty(t, sent)

		assert.False(t, seen[sent[0].quoteID],
			"quote %s repeated before the catalog was exhausted", sent[0].quoteID)
		seen[sent[0].quoteID] = true
	}

	assert.Len(t, seen, catalogSize)
}

// TestPipeline_EmptyCohort verifies a zone without subscribers is a
// successful no-op.
func TestPipeline_EmptyCohort(t *testing.T) {
	p := newPipeline(t)
	p.seedQuotes(t, 3)

	result, err := p.scheduler.DispatchTimezone(context.Background(), "Australia/Sydney")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Total())
	assert.Empty(t, p.mailer.drain())
}

// TestPipeline_EmptyCatalog verifies dispatch refuses to run without quotes.
func TestPipeline_EmptyCatalog(t *testing.T) {
	p := newPipeline(t)
	p.seedSubscribers(t, "America/Chicago", 1)

	_, err := p.scheduler.DispatchTimezone(context.Background(), "America/Chicago")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoQuotesAvailable)
}

// TestPipeline_UnsubscribedExcluded verifies a deactivated subscriber drops
// out of the cohort immediately.
func TestPipeline_UnsubscribedExcluded(t *testing.T) {
	p := newPipeline(t)
	p.seedQuotes(t, 3)
	p.seedSubscribers(t, "Asia/Kolkata", 3)

	require.NoError(t, p.store.Subscribers.SetActive(
		context.Background(), "sub-2-Asia/Kolkata@example.com", false))

	result, err := p.scheduler.DispatchTimezone(context.Background(), "Asia/Kolkata")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Successful)

	for _, s := range p.mailer.drain() {
		assert.NotEqual(t, "sub-2-Asia/Kolkata@example.com", s.email)
	}
}
