package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dailyjobboost/api/internal/domain"
	"github.com/jackc/pgx/v5"
)

// AdminRepository implements ports.AdminRepository on postgres.
type AdminRepository struct {
	db *DB
}

// NewAdminRepository creates an admin repository backed by db.
func NewAdminRepository(db *DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// GetByEmail retrieves an admin account by email.
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var admin domain.Admin

	err := r.db.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM admins WHERE email = $1`,
		email,
	).Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("admin", email)
		}

		return nil, fmt.Errorf("selecting admin: %w", err)
	}

	return &admin, nil
}
