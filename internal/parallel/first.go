// Package parallel provides the concurrent execution primitive behind
// speculative rule evaluation. This package contains internal utilities
// for racing independent alternatives on a bounded number of goroutines
// while preserving the result the sequential strategy would have chosen.
package parallel

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// FirstSuccess runs attempt for the alternatives 0..n-1 on at most workers
// goroutines and returns the result of the successful alternative with the
// lowest index, together with that index. It returns the zero value, -1 and
// false when no alternative succeeds or n is not positive.
//
// The selection is deterministic even though completion order is not: an
// alternative's success cancels only the alternatives after it, so a
// lower-indexed alternative always gets to finish and, if it succeeds,
// displaces the later result. attempt receives a context that is cancelled
// when the alternative can no longer win; attempts should honor it promptly
// but a result returned after cancellation is simply discarded.
//
// Each attempt must be independent of the others. attempt is called at most
// once per index, from at most workers goroutines at a time.
func FirstSuccess[T any](ctx context.Context, n, workers int, attempt func(ctx context.Context, i int) (T, bool)) (T, int, bool) {
	var zero T
	if n <= 0 {
		return zero, -1, false
	}
	if workers <= 0 {
		workers = n
	}

	results := make([]T, n)
	cancels := make([]context.CancelFunc, n)
	contexts := make([]context.Context, n)
	for i := 0; i < n; i++ {
		contexts[i], cancels[i] = context.WithCancel(ctx)
	}
	defer func() {
		for _, cancel := range cancels {
			cancel()
		}
	}()

	var mu sync.Mutex
	best := -1

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		group.Go(func() error {
			// A later alternative than an already committed winner can be
			// skipped before it even starts.
			mu.Lock()
			skip := best >= 0 && best < i
			mu.Unlock()
			if skip {
				return nil
			}
			if groupCtx.Err() != nil && contexts[i].Err() != nil {
				return nil
			}

			result, ok := attempt(contexts[i], i)
			if !ok {
				return nil
			}

			mu.Lock()
			if best < 0 || i < best {
				best = i
				results[i] = result
				for j := i + 1; j < n; j++ {
					cancels[j]()
				}
			}
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()

	if best < 0 {
		return zero, -1, false
	}
	return results[best], best, true
}
