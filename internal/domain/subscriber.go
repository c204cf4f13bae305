package domain

import "time"

// Subscriber is a user who receives the daily quote email.
type Subscriber struct {
	// ID is the unique identifier for this subscriber.
	ID string

	// Email is the subscriber's address. Unique across subscribers.
	Email string

	// Timezone is the subscriber's IANA timezone name
	// (e.g. "America/New_York"). Deliveries happen at 9 AM local time.
	Timezone string

	// Active reports whether the subscriber currently receives emails.
	// Unsubscribing flips this to false; re-subscribing flips it back.
	Active bool

	// CreatedAt is when the subscriber first signed up.
	CreatedAt time.Time
}

// Eligible reports whether the subscriber should receive deliveries.
func (s *Subscriber) Eligible() bool {
	return s.Active
}

// A Cohort is the set of active subscribers sharing one timezone at the
// moment of dispatch. It is derived, never persisted, and recomputed on
// every trigger.
type Cohort []Subscriber

// IDs returns the subscriber ids of the cohort, in order.
func (c Cohort) IDs() []string {
	ids := make([]string, len(c))
	for i, s := range c {
		ids[i] = s.ID
	}

	return ids
}
