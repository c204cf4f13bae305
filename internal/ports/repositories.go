// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application
// layer to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrConflict, etc.)
//   - Keep interfaces small and focused
package ports

import (
	"context"

	"github.com/dailyjobboost/api/internal/domain"
)

// QuoteRepository is the persistence contract for the quote catalog.
// The catalog is read-mostly: the rotation engine only needs a count and
// a filtered random selection, the admin surface needs CRUD.
type QuoteRepository interface {
	// Create persists a new quote.
	// Returns domain.ErrValidation if the quote has empty content.
	Create(ctx context.Context, quote *domain.Quote) error

	// GetByID retrieves a quote by its identifier.
	// Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, id string) (*domain.Quote, error)

	// List returns all quotes, newest first.
	List(ctx context.Context) ([]domain.Quote, error)

	// Update replaces the mutable fields of an existing quote.
	// Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, quote *domain.Quote) error

	// Delete removes a quote by its identifier.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// Count returns the size of the catalog.
	Count(ctx context.Context) (int, error)

	// RandomExcluding returns a uniformly random quote whose id is not in
	// excludeIDs. With an empty exclusion set it picks from the full
	// catalog. Returns domain.ErrNotFound when no candidate remains.
	RandomExcluding(ctx context.Context, excludeIDs []string) (*domain.Quote, error)
}

// SubscriberRepository is the persistence contract for subscribers.
type SubscriberRepository interface {
	// Upsert creates the subscriber, or updates timezone and active flag
	// when a subscriber with the same email already exists (re-subscribe).
	Upsert(ctx context.Context, sub *domain.Subscriber) error

	// GetByEmail retrieves a subscriber by email.
	// Returns domain.ErrNotFound if it does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error)

	// GetByID retrieves a subscriber by id.
	// Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, id string) (*domain.Subscriber, error)

	// ListActiveByTimezone returns the cohort for one timezone: every
	// subscriber with that timezone and active=true.
	ListActiveByTimezone(ctx context.Context, tz string) (domain.Cohort, error)

	// SetActive flips the active flag for the subscriber with the given
	// email. Returns domain.ErrNotFound if it does not exist.
	SetActive(ctx context.Context, email string, active bool) error
}

// DeliveryLogRepository is the persistence contract for the append-only
// delivery log. Append tolerates concurrent writers; rotation reads are
// best-effort consistent (approximate recency is acceptable).
type DeliveryLogRepository interface {
	// Append writes one log entry. Entries are never updated or deleted.
	Append(ctx context.Context, entry *domain.DeliveryLogEntry) error

	// RecentQuoteIDs returns the distinct quote ids most recently
	// delivered to the subscribers in subscriberIDs, newest first, at
	// most limit ids. A quote sent several times counts once, at its
	// most recent send. Entries without a quote reference (welcome
	// emails) are excluded.
	RecentQuoteIDs(ctx context.Context, subscriberIDs []string, limit int) ([]string, error)
}

// AdminRepository is the persistence contract for operator accounts.
type AdminRepository interface {
	// GetByEmail retrieves an admin account by email.
	// Returns domain.ErrNotFound if it does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}
