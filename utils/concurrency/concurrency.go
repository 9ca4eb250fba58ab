// Package concurrency implements a bounded fan-out of indexed tasks.
package concurrency

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Task is an abstract template for a function computing the result
// of the i-th independent unit of work.
type Task[T any] func(i int) (res T, err error)

// Map runs task for every index in [0, n) using at most workers goroutines
// and returns the results ordered by index. A non-positive workers uses
// runtime.NumCPU(). The first error returned by a task is returned and
// tasks that have not yet started are skipped.
func Map[T any](ctx context.Context, n, workers int, task Task[T]) ([]T, error) {

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	res := make([]T, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		i := i
		g.Go(func() (err error) {
			if err = ctx.Err(); err != nil {
				return
			}
			res[i], err = task(i)
			return
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return res, nil
}
