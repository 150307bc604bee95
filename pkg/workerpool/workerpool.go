// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"
	"sync"
)

// Map runs fn over items on workerCount goroutines and returns the results in
// item order. The first error cancels the context passed to the remaining
// calls and is returned once every worker has stopped.
func Map[T, R any](
	ctx context.Context,
	workerCount int,
	items []T,
	fn func(ctx context.Context, idx int, item T) (R, error),
) ([]R, error) {
	if workerCount < 1 {
		workerCount = 1
	}
	workerCount = min(workerCount, max(len(items), 1))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]R, len(items))
	tasks := make(chan int, workerCount)
	errs := make(chan error, 1)
	wg := sync.WaitGroup{}
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case idx, ok := <-tasks:
					if !ok {
						return
					}
					res, err := fn(ctx, idx, items[idx])
					if err != nil {
						select {
						case errs <- err:
						default:
						}
						cancel()
						return
					}
					results[idx] = res
				}
			}
		}()
	}

	go func() {
		defer close(tasks)
		for idx := range items {
			select {
			case <-ctx.Done():
				return
			case tasks <- idx:
			}
		}
	}()

	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		return nil, err
	}
	// The parent context may have been canceled before every item ran.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
