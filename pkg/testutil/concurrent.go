package testutil

import (
	"errors"
	"sync"
	"sync/atomic"

	dErrors "crsc/pkg/domain-errors"
)

// ConcurrentResult tracks outcomes of concurrent test operations.
type ConcurrentResult struct {
	Successes  int32
	Rejections int32
	Errors     int32
}

// Total returns the total number of operations executed.
func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.Rejections + r.Errors
}

// RunConcurrent executes fn in parallel goroutines and collects results.
// Domain errors count as rejections; any other error counts as an error.
func RunConcurrent(goroutines int, fn func(idx int) error) *ConcurrentResult {
	var wg sync.WaitGroup
	var successes, rejections, errs atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			err := fn(idx)
			var domainErr *dErrors.Error
			switch {
			case err == nil:
				successes.Add(1)
			case errors.As(err, &domainErr):
				rejections.Add(1)
			default:
				errs.Add(1)
			}
		}(i)
	}

	wg.Wait()

	return &ConcurrentResult{
		Successes:  successes.Load(),
		Rejections: rejections.Load(),
		Errors:     errs.Load(),
	}
}
