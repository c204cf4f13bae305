// Package storage selects and wires the persistence backend.
//
// Two backends are supported: postgres for real deployments and sqlite
// for local development and tests. Both expose the same repository
// ports, so nothing above this package knows which one is active.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dailyjobboost/api/internal/adapters/storage/postgres"
	"github.com/dailyjobboost/api/internal/adapters/storage/sqlite"
	"github.com/dailyjobboost/api/internal/ports"
)

// Driver names accepted in configuration.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config selects and parameterizes the backend.
type Config struct {
	// Driver is "postgres" or "sqlite".
	Driver string

	// DSN is the postgres connection string. Ignored by sqlite.
	DSN string

	// Path is the sqlite database file. Ignored by postgres.
	Path string
}

// Store bundles the repository ports backed by one database.
type Store struct {
	Quotes      ports.QuoteRepository
	Subscribers ports.SubscriberRepository
	DeliveryLog ports.DeliveryLogRepository
	Admins      ports.AdminRepository

	name  string
	ping  func(context.Context) error
	close func()
}

// Open connects to the configured backend, runs its schema migration,
// and returns the repository bundle.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	switch cfg.Driver {
	case DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("opening postgres: %w", err)
		}

		logger.InfoContext(ctx, "storage ready", slog.String("driver", cfg.Driver))

		return &Store{
			Quotes:      postgres.NewQuoteRepository(db),
			Subscribers: postgres.NewSubscriberRepository(db),
			DeliveryLog: postgres.NewDeliveryLogRepository(db),
			Admins:      postgres.NewAdminRepository(db),
			name:        cfg.Driver,
			ping:        db.Ping,
			close:       db.Close,
		}, nil

	case DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite: %w", err)
		}

		logger.InfoContext(ctx, "storage ready",
			slog.String("driver", cfg.Driver),
			slog.String("path", cfg.Path),
		)

		return &Store{
			Quotes:      sqlite.NewQuoteRepository(db),
			Subscribers: sqlite.NewSubscriberRepository(db),
			DeliveryLog: sqlite.NewDeliveryLogRepository(db),
			Admins:      sqlite.NewAdminRepository(db),
			name:        cfg.Driver,
			ping:        db.PingContext,
			close:       func() { _ = db.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "storage-" + s.name }

// Check implements ports.HealthChecker by pinging the database.
func (s *Store) Check(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases the underlying connections.
func (s *Store) Close() {
	s.close()
}
