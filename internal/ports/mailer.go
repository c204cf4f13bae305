package ports

import (
	"context"

	"github.com/dailyjobboost/api/internal/domain"
)

// QuoteMailer is the outbound email contract. Implementations own the
// rendering and transport details; callers pass domain objects only.
type QuoteMailer interface {
	// SendDailyQuote delivers the given quote to one subscriber.
	SendDailyQuote(ctx context.Context, sub *domain.Subscriber, quote *domain.Quote) error

	// SendWelcome delivers the welcome email to a new subscriber.
	SendWelcome(ctx context.Context, sub *domain.Subscriber) error
}
