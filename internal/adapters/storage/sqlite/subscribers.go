package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dailyjobboost/api/internal/domain"
)

// SubscriberRepository implements ports.SubscriberRepository on sqlite.
type SubscriberRepository struct {
	db *sql.DB
}

// NewSubscriberRepository creates a subscriber repository backed by db.
func NewSubscriberRepository(db *sql.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// Upsert creates the subscriber or, when the email already exists,
// updates its timezone and active flag in place.
func (r *SubscriberRepository) Upsert(ctx context.Context, sub *domain.Subscriber) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subscribers (id, email, timezone, active, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (email) DO UPDATE
		 SET timezone = excluded.timezone, active = excluded.active`,
		sub.ID, sub.Email, sub.Timezone, sub.Active, formatTime(sub.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting subscriber: %w", err)
	}

	return nil
}

func scanSubscriber(row interface{ Scan(...any) error }) (*domain.Subscriber, error) {
	var (
		sub       domain.Subscriber
		createdAt string
	)

	err := row.Scan(&sub.ID, &sub.Email, &sub.Timezone, &sub.Active, &createdAt)
	if err != nil {
		return nil, err
	}

	sub.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &sub, nil
}

// GetByEmail retrieves a subscriber by email.
func (r *SubscriberRepository) GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, timezone, active, created_at FROM subscribers WHERE email = ?`,
		email,
	)

	sub, err := scanSubscriber(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("subscriber", email)
		}

		return nil, fmt.Errorf("selecting subscriber: %w", err)
	}

	return sub, nil
}

// GetByID retrieves a subscriber by id.
func (r *SubscriberRepository) GetByID(ctx context.Context, id string) (*domain.Subscriber, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, timezone, active, created_at FROM subscribers WHERE id = ?`,
		id,
	)

	sub, err := scanSubscriber(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("subscriber", id)
		}

		return nil, fmt.Errorf("selecting subscriber: %w", err)
	}

	return sub, nil
}

// ListActiveByTimezone returns the active subscribers in one timezone.
func (r *SubscriberRepository) ListActiveByTimezone(ctx context.Context, tz string) (domain.Cohort, error) {
	return r.list(ctx,
		`SELECT id, email, timezone, active, created_at
		 FROM subscribers WHERE active = 1 AND timezone = ? ORDER BY created_at, id`,
		tz,
	)
}

func (r *SubscriberRepository) list(ctx context.Context, query string, args ...any) (domain.Cohort, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting subscribers: %w", err)
	}

	defer rows.Close()

	var cohort domain.Cohort

	for rows.Next() {
		sub, err := scanSubscriber(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning subscriber: %w", err)
		}

		cohort = append(cohort, *sub)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating subscribers: %w", rows.Err())
	}

	return cohort, nil
}

// SetActive flips the active flag for the subscriber with the given email.
func (r *SubscriberRepository) SetActive(ctx context.Context, email string, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE subscribers SET active = ? WHERE email = ?`,
		active, email,
	)
	if err != nil {
		return fmt.Errorf("updating subscriber: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating subscriber: %w", err)
	}

	if affected == 0 {
		return domain.NewNotFoundError("subscriber", email)
	}

	return nil
}
