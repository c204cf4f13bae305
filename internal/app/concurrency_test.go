package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelPartialLimit_AllSucceed(t *testing.T) {
	fns := make([]func(context.Context) (int, error), 5)
	for i := range fns {
		i := i
		fns[i] = func(context.Context) (int, error) {
			return i * 10, nil
		}
	}

	results := ParallelPartialLimit(context.Background(), 2, fns...)

	require.Len(t, results, 5)

	for i, r := range results {
		assert.NoError(t, r.Err)
		assert.Equal(t, i*10, r.Value)
	}
}

func TestParallelPartialLimit_PartialFailure(t *testing.T) {
	errBounce := errors.New("address bounced")

	results := ParallelPartialLimit(context.Background(), 3,
		func(context.Context) (string, error) { return "first", nil },
		func(context.Context) (string, error) { return "", errBounce },
		func(context.Context) (string, error) { return "third", nil },
	)

	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, "first", results[0].Value)
	assert.ErrorIs(t, results[1].Err, errBounce)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, "third", results[2].Value)
}

func TestParallelPartialLimit_BoundsConcurrency(t *testing.T) {
	const limit = 3

	var mu sync.Mutex

	var current, peak int

	fns := make([]func(context.Context) (struct{}, error), 12)
	for i := range fns {
		fns[i] = func(context.Context) (struct{}, error) {
			mu.Lock()
			current++
			if current > peak {
				peak = current
			}
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			current--
			mu.Unlock()

			return struct{}{}, nil
		}
	}

	results := ParallelPartialLimit(context.Background(), limit, fns...)

	require.Len(t, results, 12)

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, limit)
}

func TestParallelPartialLimit_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Bool

	results := ParallelPartialLimit(ctx, 1,
		func(context.Context) (int, error) {
			ran.Store(true)

			return 1, nil
		},
		func(context.Context) (int, error) {
			ran.Store(true)

			return 2, nil
		},
	)

	require.Len(t, results, 2)
	assert.False(t, ran.Load())

	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestParallelPartialLimit_NoFunctions(t *testing.T) {
	results := ParallelPartialLimit[int](context.Background(), 2)

	assert.Empty(t, results)
}
