package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dailyjobboost/api/internal/domain"
	"github.com/dailyjobboost/api/internal/platform/logging"
	"github.com/dailyjobboost/api/internal/ports"
)

// RotationEngine picks the quote of the day for a cohort. It avoids
// repeats by excluding the quotes the cohort saw most recently, sized so
// every quote in the catalog is sent once before any repeats.
type RotationEngine struct {
	quotes      ports.QuoteRepository
	deliveryLog ports.DeliveryLogRepository
	logger      *slog.Logger
}

// RotationEngineConfig contains dependencies for the rotation engine.
type RotationEngineConfig struct {
	Quotes      ports.QuoteRepository
	DeliveryLog ports.DeliveryLogRepository
	Logger      *slog.Logger
}

// NewRotationEngine creates a rotation engine with the provided dependencies.
func NewRotationEngine(cfg RotationEngineConfig) *RotationEngine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &RotationEngine{
		quotes:      cfg.Quotes,
		deliveryLog: cfg.DeliveryLog,
		logger:      logger.With(slog.String("component", "app.RotationEngine")),
	}
}

// NextQuote returns the quote to send to cohort today.
//
// With a catalog of n quotes it excludes the last n-1 distinct quote ids
// the cohort received, then picks uniformly at random from the
// remainder. The window leaves at least one candidate by construction,
// so a cohort cycles through the whole catalog before seeing a repeat.
// If the catalog shrank underneath the window and no candidate remains,
// the exclusion is dropped and rotation starts over.
//
// Returns domain.ErrNoQuotesAvailable when the catalog is empty.
func (e *RotationEngine) NextQuote(ctx context.Context, cohort domain.Cohort) (*domain.Quote, error) {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = e.logger
	}

	total, err := e.quotes.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting quotes: %w", err)
	}

	if total == 0 {
		return nil, domain.ErrNoQuotesAvailable
	}

	var exclude []string

	if window := total - 1; window > 0 {
		recent, err := e.deliveryLog.RecentQuoteIDs(ctx, cohort.IDs(), window)
		if err != nil {
			return nil, fmt.Errorf("loading recent deliveries: %w", err)
		}

		exclude = dedupe(recent)
	}

	quote, err := e.quotes.RandomExcluding(ctx, exclude)
	if domain.IsNotFound(err) && len(exclude) > 0 {
		// Catalog shrank below the exclusion window. Reset the cycle.
		logger.WarnContext(ctx, "rotation window exhausted, resetting cycle",
			slog.Int("catalog_size", total),
			slog.Int("excluded", len(exclude)),
		)

		quote, err = e.quotes.RandomExcluding(ctx, nil)
	}

	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ErrNoQuotesAvailable
		}

		return nil, fmt.Errorf("picking quote: %w", err)
	}

	logger.DebugContext(ctx, "picked quote",
		slog.String("quote_id", quote.ID),
		slog.Int("catalog_size", total),
		slog.Int("excluded", len(exclude)),
	)

	return quote, nil
}

// dedupe removes duplicate ids, preserving first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
