// Package parallel splits index ranges across goroutines.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Chunks divides [0, items) into one contiguous range per available CPU and calls fn
// for each range concurrently, returning the first error. When items does not exceed
// threshold, fn is called once on the calling goroutine.
func Chunks(items, threshold int, fn func(start, end int) error) error {
	if items <= 0 {
		return nil
	}
	if items <= threshold {
		return fn(0, items)
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > items {
		numWorkers = items
	}
	chunkSize := (items + numWorkers - 1) / numWorkers

	var g errgroup.Group
	for start := 0; start < items; start += chunkSize {
		end := start + chunkSize
		if end > items {
			end = items
		}
		g.Go(func() error {
			return fn(start, end)
		})
	}
	return g.Wait()
}

// ParallelizeWithThreshold is Chunks for work that cannot fail.
func ParallelizeWithThreshold(items, threshold int, fn func(start, end int)) {
	_ = Chunks(items, threshold, func(start, end int) error {
		fn(start, end)
		return nil
	})
}
