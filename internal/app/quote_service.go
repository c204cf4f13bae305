// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dailyjobboost/api/internal/domain"
	"github.com/dailyjobboost/api/internal/platform/logging"
	"github.com/dailyjobboost/api/internal/ports"
	"github.com/google/uuid"
)

// QuoteService owns the quote catalog: the CRUD surface operators use to
// curate what the rotation engine draws from.
type QuoteService struct {
	quotes ports.QuoteRepository
	logger *slog.Logger
}

// QuoteServiceConfig contains dependencies for the quote service.
type QuoteServiceConfig struct {
	Quotes ports.QuoteRepository
	Logger *slog.Logger
}

// NewQuoteService creates a quote service with the provided dependencies.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteService{
		quotes: cfg.Quotes,
		logger: logger.With(slog.String("component", "app.QuoteService")),
	}
}

// CreateQuote validates and stores a new quote.
func (s *QuoteService) CreateQuote(ctx context.Context, content, author, category string) (*domain.Quote, error) {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = s.logger
	}

	quote := &domain.Quote{
		ID:        uuid.NewString(),
		Content:   content,
		Author:    author,
		Category:  category,
		CreatedAt: time.Now().UTC(),
	}

	err := quote.Validate()
	if err != nil {
		return nil, err
	}

	err = s.quotes.Create(ctx, quote)
	if err != nil {
		return nil, fmt.Errorf("creating quote: %w", err)
	}

	logger.InfoContext(ctx, "quote created",
		slog.String("quote_id", quote.ID),
		slog.String("author", quote.Author),
	)

	return quote, nil
}

// GetQuote retrieves a quote by its identifier.
func (s *QuoteService) GetQuote(ctx context.Context, id string) (*domain.Quote, error) {
	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting quote: %w", err)
	}

	return quote, nil
}

// ListQuotes returns the full catalog, newest first.
func (s *QuoteService) ListQuotes(ctx context.Context) ([]domain.Quote, error) {
	quotes, err := s.quotes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}

	return quotes, nil
}

// RandomQuote returns a uniformly random quote from the catalog.
// Returns domain.ErrNotFound when the catalog is empty.
func (s *QuoteService) RandomQuote(ctx context.Context) (*domain.Quote, error) {
	quote, err := s.quotes.RandomExcluding(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("picking random quote: %w", err)
	}

	return quote, nil
}

// UpdateQuote replaces the content, author, and category of an existing
// quote.
func (s *QuoteService) UpdateQuote(ctx context.Context, id, content, author, category string) (*domain.Quote, error) {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = s.logger
	}

	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting quote: %w", err)
	}

	quote.Content = content
	quote.Author = author
	quote.Category = category

	err = quote.Validate()
	if err != nil {
		return nil, err
	}

	err = s.quotes.Update(ctx, quote)
	if err != nil {
		return nil, fmt.Errorf("updating quote: %w", err)
	}

	logger.InfoContext(ctx, "quote updated", slog.String("quote_id", quote.ID))

	return quote, nil
}

// DeleteQuote removes a quote from the catalog. Delivery log entries
// referencing it are kept; rotation simply stops considering the id.
func (s *QuoteService) DeleteQuote(ctx context.Context, id string) error {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = s.logger
	}

	err := s.quotes.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting quote: %w", err)
	}

	logger.InfoContext(ctx, "quote deleted", slog.String("quote_id", id))

	return nil
}
