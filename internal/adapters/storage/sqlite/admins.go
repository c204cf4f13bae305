package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dailyjobboost/api/internal/domain"
)

// AdminRepository implements ports.AdminRepository on sqlite.
type AdminRepository struct {
	db *sql.DB
}

// NewAdminRepository creates an admin repository backed by db.
func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// GetByEmail retrieves an admin account by email.
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var (
		admin     domain.Admin
		createdAt string
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM admins WHERE email = ?`,
		email,
	).Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("admin", email)
		}

		return nil, fmt.Errorf("selecting admin: %w", err)
	}

	admin.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &admin, nil
}
