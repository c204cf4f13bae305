package ports_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyjobboost/api/internal/ports"
)

type stubChecker struct {
	name  string
	err   error
	delay time.Duration
}

func (s *stubChecker) Name() string { return s.name }

func (s *stubChecker) Check(ctx context.Context) error {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return s.err
}

func TestHealthRegistry_Register(t *testing.T) {
	t.Parallel()

	registry := ports.NewHealthRegistry()

	require.NoError(t, registry.Register(&stubChecker{name: "postgres"}))
	require.NoError(t, registry.Register(&stubChecker{name: "smtp"}))

	err := registry.Register(&stubChecker{name: "postgres"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrDuplicateChecker)
}

func TestHealthRegistry_CheckAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		checkers   []*stubChecker
		wantStatus ports.HealthStatus
	}{
		{
			name:       "no checkers is healthy",
			checkers:   nil,
			wantStatus: ports.HealthStatusHealthy,
		},
		{
			name: "all healthy",
			checkers: []*stubChecker{
				{name: "postgres"},
				{name: "smtp"},
			},
			wantStatus: ports.HealthStatusHealthy,
		},
		{
			name: "one unhealthy degrades overall status",
			checkers: []*stubChecker{
				{name: "postgres"},
				{name: "smtp", err: errors.New("dial tcp: connection refused")},
			},
			wantStatus: ports.HealthStatusUnhealthy,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			registry := ports.NewHealthRegistry()
			for _, c := range tt.checkers {
				require.NoError(t, registry.Register(c))
			}

			result := registry.CheckAll(context.Background())

			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Len(t, result.Checks, len(tt.checkers))
			assert.WithinDuration(t, time.Now(), result.Timestamp, time.Second)
		})
	}
}

func TestHealthRegistry_CheckAllReportsFailureMessage(t *testing.T) {
	t.Parallel()

	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(&stubChecker{
		name: "postgres",
		err:  errors.New("pool exhausted"),
	}))

	result := registry.CheckAll(context.Background())

	check, ok := result.Checks["postgres"]
	require.True(t, ok)
	assert.Equal(t, ports.HealthStatusUnhealthy, check.Status)
	assert.Equal(t, "pool exhausted", check.Message)
}
