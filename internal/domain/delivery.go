package domain

import "time"

// DeliveryStatus records the outcome of one email delivery.
type DeliveryStatus string

const (
	// DeliverySent means a daily-quote email reached the transport.
	DeliverySent DeliveryStatus = "sent"

	// DeliveryWelcomeSent means a welcome email reached the transport.
	// Welcome entries carry no quote reference.
	DeliveryWelcomeSent DeliveryStatus = "welcome_sent"

	// DeliveryFailed means all retry attempts for a send were exhausted.
	DeliveryFailed DeliveryStatus = "failed"
)

// DeliveryLogEntry is one record in the append-only delivery log.
// The log is the sole source of truth for "recently sent": rotation state
// is reconstructed from log history, no separate cursor is persisted.
// Entries are written only by the dispatcher and the welcome-email path.
type DeliveryLogEntry struct {
	// ID is the unique identifier for this entry.
	ID string

	// SubscriberID references the recipient.
	SubscriberID string

	// QuoteID references the delivered quote.
	// Empty for welcome emails, which have no quote.
	QuoteID string

	// Status is the delivery outcome.
	Status DeliveryStatus

	// SentAt is when the delivery attempt concluded.
	SentAt time.Time
}

// DispatchResult aggregates the outcome of dispatching one cohort.
// Individual subscriber failures never abort a dispatch; they only
// show up here as counts.
type DispatchResult struct {
	// Successful is the number of subscribers whose email was sent.
	Successful int

	// Failed is the number of subscribers for whom every retry failed.
	Failed int
}

// Total returns the number of subscribers attempted.
func (r DispatchResult) Total() int {
	return r.Successful + r.Failed
}
