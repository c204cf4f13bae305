// Package domain contains core business entities and rules.
package domain

import (
	"strings"
	"time"
)

// Quote is a motivational quote from the catalog.
// It is a domain entity and has no knowledge of external systems.
type Quote struct {
	// ID is the unique identifier for this quote.
	ID string

	// Content is the text of the quote. Never empty.
	Content string

	// Author is who said or wrote the quote. Optional.
	Author string

	// Category groups quotes by theme (e.g. "perseverance"). Optional.
	Category string

	// CreatedAt is when the quote was added to the catalog.
	CreatedAt time.Time
}

// Validate checks the quote's business invariants.
// A quote must never exist with empty content.
func (q *Quote) Validate() error {
	if strings.TrimSpace(q.Content) == "" {
		return NewValidationError("content", "cannot be empty")
	}

	return nil
}
