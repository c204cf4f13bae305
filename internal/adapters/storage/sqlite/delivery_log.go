package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dailyjobboost/api/internal/domain"
	"github.com/google/uuid"
)

// DeliveryLogRepository implements ports.DeliveryLogRepository on sqlite.
type DeliveryLogRepository struct {
	db *sql.DB
}

// NewDeliveryLogRepository creates a delivery log repository backed by db.
func NewDeliveryLogRepository(db *sql.DB) *DeliveryLogRepository {
	return &DeliveryLogRepository{db: db}
}

// Append writes one log entry, assigning its id when unset.
func (r *DeliveryLogRepository) Append(ctx context.Context, entry *domain.DeliveryLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	quoteID := sql.NullString{String: entry.QuoteID, Valid: entry.QuoteID != ""}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO delivery_log (id, subscriber_id, quote_id, status, sent_at)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.SubscriberID, quoteID, string(entry.Status), formatTime(entry.SentAt),
	)
	if err != nil {
		return fmt.Errorf("inserting delivery log entry: %w", err)
	}

	return nil
}

// RecentQuoteIDs returns the cohort's most recently delivered distinct
// quote ids, newest first. Grouping by quote keeps the rotation window
// meaningful for multi-subscriber cohorts, where one day of deliveries
// produces many entries for the same quote.
func (r *DeliveryLogRepository) RecentQuoteIDs(ctx context.Context, subscriberIDs []string, limit int) ([]string, error) {
	if len(subscriberIDs) == 0 || limit <= 0 {
		return nil, nil
	}

	query := `SELECT quote_id FROM delivery_log
		 WHERE subscriber_id IN (` + placeholders(len(subscriberIDs)) + `)
		 AND quote_id IS NOT NULL
		 GROUP BY quote_id
		 ORDER BY MAX(sent_at) DESC
		 LIMIT ?`

	args := append(toAnySlice(subscriberIDs), limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting recent deliveries: %w", err)
	}

	defer rows.Close()

	var ids []string

	for rows.Next() {
		var id string

		err = rows.Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("scanning delivery log entry: %w", err)
		}

		ids = append(ids, id)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating delivery log: %w", rows.Err())
	}

	return ids, nil
}
