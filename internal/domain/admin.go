package domain

import "time"

// Admin is an operator account that manages the quote catalog.
// The password is stored as a bcrypt hash, never in the clear.
type Admin struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
