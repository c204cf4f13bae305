package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dailyjobboost/api/internal/domain"
	"github.com/jackc/pgx/v5"
)

// SubscriberRepository implements ports.SubscriberRepository on postgres.
type SubscriberRepository struct {
	db *DB
}

// NewSubscriberRepository creates a subscriber repository backed by db.
func NewSubscriberRepository(db *DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// Upsert creates the subscriber or, when the email already exists,
// updates its timezone and active flag in place.
func (r *SubscriberRepository) Upsert(ctx context.Context, sub *domain.Subscriber) error {
	_, err := r.db.pool.Exec(ctx,
		`INSERT INTO subscribers (id, email, timezone, active, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (email) DO UPDATE
		 SET timezone = EXCLUDED.timezone, active = EXCLUDED.active`,
		sub.ID, sub.Email, sub.Timezone, sub.Active, sub.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting subscriber: %w", err)
	}

	return nil
}

// GetByEmail retrieves a subscriber by email.
func (r *SubscriberRepository) GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	return r.getWhere(ctx, "email", email)
}

// GetByID retrieves a subscriber by id.
func (r *SubscriberRepository) GetByID(ctx context.Context, id string) (*domain.Subscriber, error) {
	return r.getWhere(ctx, "id", id)
}

func (r *SubscriberRepository) getWhere(ctx context.Context, column, value string) (*domain.Subscriber, error) {
	var sub domain.Subscriber

	query := fmt.Sprintf(
		`SELECT id, email, timezone, active, created_at FROM subscribers WHERE %s = $1`,
		column,
	)

	err := r.db.pool.QueryRow(ctx, query, value).
		Scan(&sub.ID, &sub.Email, &sub.Timezone, &sub.Active, &sub.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("subscriber", value)
		}

		return nil, fmt.Errorf("selecting subscriber: %w", err)
	}

	return &sub, nil
}

// ListActiveByTimezone returns the active subscribers in one timezone.
func (r *SubscriberRepository) ListActiveByTimezone(ctx context.Context, tz string) (domain.Cohort, error) {
	return r.list(ctx,
		`SELECT id, email, timezone, active, created_at
		 FROM subscribers WHERE active AND timezone = $1 ORDER BY created_at, id`,
		tz,
	)
}

func (r *SubscriberRepository) list(ctx context.Context, query string, args ...any) (domain.Cohort, error) {
	rows, err := r.db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting subscribers: %w", err)
	}

	defer rows.Close()

	var cohort domain.Cohort

	for rows.Next() {
		var sub domain.Subscriber

		err = rows.Scan(&sub.ID, &sub.Email, &sub.Timezone, &sub.Active, &sub.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning subscriber: %w", err)
		}

		cohort = append(cohort, sub)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating subscribers: %w", rows.Err())
	}

	return cohort, nil
}

// SetActive flips the active flag for the subscriber with the given email.
func (r *SubscriberRepository) SetActive(ctx context.Context, email string, active bool) error {
	tag, err := r.db.pool.Exec(ctx,
		`UPDATE subscribers SET active = $2 WHERE email = $1`,
		email, active,
	)
	if err != nil {
		return fmt.Errorf("updating subscriber: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("subscriber", email)
	}

	return nil
}
