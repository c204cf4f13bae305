package app

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// PartialResult holds a result or an error for partial success patterns.
type PartialResult[T any] struct {
	Value T
	Err   error
}

// ParallelPartialLimit executes functions concurrently, at most limit at
// a time, and collects all results even on partial failure. Nothing is
// canceled when one function errors; each entry in the returned slice
// corresponds to the function at the same index. A canceled context
// surfaces as the error of every function still waiting for a slot.
//
// The dispatcher relies on this within a delivery batch: one bounced
// address must not stop the rest of the batch.
func ParallelPartialLimit[T any](
	ctx context.Context,
	limit int,
	fns ...func(context.Context) (T, error),
) []PartialResult[T] {
	results := make([]PartialResult[T], len(fns))
	sem := semaphore.NewWeighted(int64(limit))

	var wg sync.WaitGroup

	for i, fn := range fns {
		i, fn := i, fn
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := sem.Acquire(ctx, 1)
			if err != nil {
				results[i] = PartialResult[T]{Err: err}
				return
			}

			defer sem.Release(1)

			value, err := fn(ctx)
			results[i] = PartialResult[T]{Value: value, Err: err}
		}()
	}

	wg.Wait()

	return results
}
