package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dailyjobboost/api/internal/domain"
)

// QuoteRepository implements ports.QuoteRepository on sqlite.
type QuoteRepository struct {
	db *sql.DB
}

// NewQuoteRepository creates a quote repository backed by db.
func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// Create persists a new quote.
func (r *QuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO quotes (id, content, author, category, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		quote.ID, quote.Content, quote.Author, quote.Category, formatTime(quote.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting quote: %w", err)
	}

	return nil
}

func scanQuote(row interface{ Scan(...any) error }) (*domain.Quote, error) {
	var (
		quote     domain.Quote
		createdAt string
	)

	err := row.Scan(&quote.ID, &quote.Content, &quote.Author, &quote.Category, &createdAt)
	if err != nil {
		return nil, err
	}

	quote.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &quote, nil
}

// GetByID retrieves a quote by its identifier.
func (r *QuoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, content, author, category, created_at FROM quotes WHERE id = ?`,
		id,
	)

	quote, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("quote", id)
		}

		return nil, fmt.Errorf("selecting quote: %w", err)
	}

	return quote, nil
}

// List returns all quotes, newest first.
func (r *QuoteRepository) List(ctx context.Context) ([]domain.Quote, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, content, author, category, created_at
		 FROM quotes ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("selecting quotes: %w", err)
	}

	defer rows.Close()

	var quotes []domain.Quote

	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning quote: %w", err)
		}

		quotes = append(quotes, *quote)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating quotes: %w", rows.Err())
	}

	return quotes, nil
}

// Update replaces the mutable fields of an existing quote.
func (r *QuoteRepository) Update(ctx context.Context, quote *domain.Quote) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE quotes SET content = ?, author = ?, category = ? WHERE id = ?`,
		quote.Content, quote.Author, quote.Category, quote.ID,
	)
	if err != nil {
		return fmt.Errorf("updating quote: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating quote: %w", err)
	}

	if affected == 0 {
		return domain.NewNotFoundError("quote", quote.ID)
	}

	return nil
}

// Delete removes a quote by its identifier.
func (r *QuoteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting quote: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting quote: %w", err)
	}

	if affected == 0 {
		return domain.NewNotFoundError("quote", id)
	}

	return nil
}

// Count returns the size of the catalog.
func (r *QuoteRepository) Count(ctx context.Context) (int, error) {
	var count int

	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM quotes`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting quotes: %w", err)
	}

	return count, nil
}

// RandomExcluding returns a uniformly random quote whose id is not in
// excludeIDs.
func (r *QuoteRepository) RandomExcluding(ctx context.Context, excludeIDs []string) (*domain.Quote, error) {
	query := `SELECT id, content, author, category, created_at FROM quotes`
	args := toAnySlice(excludeIDs)

	if len(excludeIDs) > 0 {
		query += ` WHERE id NOT IN (` + placeholders(len(excludeIDs)) + `)`
	}

	query += ` ORDER BY RANDOM() LIMIT 1`

	row := r.db.QueryRowContext(ctx, query, args...)

	quote, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("quote", "none eligible")
		}

		return nil, fmt.Errorf("selecting random quote: %w", err)
	}

	return quote, nil
}
