package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dailyjobboost/api/internal/domain"
	"github.com/jackc/pgx/v5"
)

// QuoteRepository implements ports.QuoteRepository on postgres.
type QuoteRepository struct {
	db *DB
}

// NewQuoteRepository creates a quote repository backed by db.
func NewQuoteRepository(db *DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// Create persists a new quote.
func (r *QuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	_, err := r.db.pool.Exec(ctx,
		`INSERT INTO quotes (id, content, author, category, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		quote.ID, quote.Content, quote.Author, quote.Category, quote.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting quote: %w", err)
	}

	return nil
}

// GetByID retrieves a quote by its identifier.
func (r *QuoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	var quote domain.Quote

	err := r.db.pool.QueryRow(ctx,
		`SELECT id, content, author, category, created_at
		 FROM quotes WHERE id = $1`,
		id,
	).Scan(&quote.ID, &quote.Content, &quote.Author, &quote.Category, &quote.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("quote", id)
		}

		return nil, fmt.Errorf("selecting quote: %w", err)
	}

	return &quote, nil
}

// List returns all quotes, newest first.
func (r *QuoteRepository) List(ctx context.Context) ([]domain.Quote, error) {
	rows, err := r.db.pool.Query(ctx,
		`SELECT id, content, author, category, created_at
		 FROM quotes ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("selecting quotes: %w", err)
	}

	defer rows.Close()

	var quotes []domain.Quote

	for rows.Next() {
		var quote domain.Quote

		err = rows.Scan(&quote.ID, &quote.Content, &quote.Author, &quote.Category, &quote.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning quote: %w", err)
		}

		quotes = append(quotes, quote)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating quotes: %w", rows.Err())
	}

	return quotes, nil
}

// Update replaces the mutable fields of an existing quote.
func (r *QuoteRepository) Update(ctx context.Context, quote *domain.Quote) error {
	tag, err := r.db.pool.Exec(ctx,
		`UPDATE quotes SET content = $2, author = $3, category = $4 WHERE id = $1`,
		quote.ID, quote.Content, quote.Author, quote.Category,
	)
	if err != nil {
		return fmt.Errorf("updating quote: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("quote", quote.ID)
	}

	return nil
}

// Delete removes a quote by its identifier.
func (r *QuoteRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.pool.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting quote: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("quote", id)
	}

	return nil
}

// Count returns the size of the catalog.
func (r *QuoteRepository) Count(ctx context.Context) (int, error) {
	var count int

	err := r.db.pool.QueryRow(ctx, `SELECT count(*) FROM quotes`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting quotes: %w", err)
	}

	return count, nil
}

// RandomExcluding returns a uniformly random quote whose id is not in
// excludeIDs. ORDER BY random() is fine here: the catalog is a few
// hundred rows at most.
func (r *QuoteRepository) RandomExcluding(ctx context.Context, excludeIDs []string) (*domain.Quote, error) {
	if excludeIDs == nil {
		excludeIDs = []string{}
	}

	var quote domain.Quote

	err := r.db.pool.QueryRow(ctx,
		`SELECT id, content, author, category, created_at
		 FROM quotes
		 WHERE NOT (id = ANY($1))
		 ORDER BY random()
		 LIMIT 1`,
		excludeIDs,
	).Scan(&quote.ID, &quote.Content, &quote.Author, &quote.Category, &quote.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("quote", "none eligible")
		}

		return nil, fmt.Errorf("selecting random quote: %w", err)
	}

	return &quote, nil
}
