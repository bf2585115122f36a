// Package search runs bounded-retry searches on a pool of workers.
//
// Every potentially unbounded loop of parameter generation (the search for a
// modulus p with q | p-1 in particular) goes through Run so that it always
// terminates: either a candidate is accepted, the attempt budget is spent, the
// context is cancelled, or a trial reports a hard error.
package search

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrExhausted is returned when MaxAttempts trials ran without a match.
var ErrExhausted = errors.New("attempt budget exhausted")

// Config bounds a search.
type Config struct {
	// MaxAttempts is the total number of trials across all workers
	MaxAttempts int

	// NumWorkers controls parallelization (0 = auto-detect)
	NumWorkers int
}

// Trial is one search attempt. It returns the candidate and whether it was
// accepted. A non-nil error aborts the whole search.
type Trial[T any] func(attempt int) (T, bool, error)

// Stats describes a finished search.
type Stats struct {
	Attempts int64
	Workers  int
}

// Run executes trial until one is accepted or the budget is spent.
func Run[T any](ctx context.Context, cfg Config, trial Trial[T]) (T, Stats, error) {
	var zero T

	if cfg.MaxAttempts <= 0 {
		return zero, Stats{}, ErrExhausted
	}

	numWorkers := cfg.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > cfg.MaxAttempts {
		numWorkers = cfg.MaxAttempts
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workChan := make(chan int, numWorkers*10)
	resultChan := make(chan T, 1)
	errChan := make(chan error, 1)

	var tested int64

	// Generate work
	go func() {
		defer close(workChan)
		for i := 0; i < cfg.MaxAttempts; i++ {
			select {
			case <-ctx.Done():
				return
			case workChan <- i:
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case attempt, ok := <-workChan:
					if !ok {
						return
					}
					atomic.AddInt64(&tested, 1)

					candidate, accepted, err := trial(attempt)
					if err != nil {
						select {
						case errChan <- err:
						default:
						}
						cancel()
						return
					}
					if !accepted {
						continue
					}

					select {
					case resultChan <- candidate:
					default:
					}
					cancel()
					return
				}
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	<-done
	stats := Stats{Attempts: atomic.LoadInt64(&tested), Workers: numWorkers}

	select {
	case result := <-resultChan:
		return result, stats, nil
	default:
	}
	select {
	case err := <-errChan:
		return zero, stats, err
	default:
	}
	// cancel has not run yet on this path, so a done context means the
	// caller gave up.
	if err := ctx.Err(); err != nil {
		return zero, stats, err
	}
	return zero, stats, ErrExhausted
}
