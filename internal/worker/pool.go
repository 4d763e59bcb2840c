package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Task pairs an input with the outcome of processing it.
type Task[T any, R any] struct {
	Input  T
	Result R
	Err    error
	// Done is false when the task was never started because the context
	// was cancelled first.
	Done bool
}

// ProcessFunc is the function signature for processing a single task.
type ProcessFunc[T any, R any] func(ctx context.Context, input T) (R, error)

// Pool runs a ProcessFunc over a slice of inputs with bounded concurrency.
// Each input is handled by exactly one goroutine from start to finish.
type Pool[T any, R any] struct {
	workers int
	process ProcessFunc[T, R]
}

// NewPool creates a new worker pool.
func NewPool[T any, R any](workers int, fn ProcessFunc[T, R]) *Pool[T, R] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[T, R]{
		workers: workers,
		process: fn,
	}
}

// Execute processes all inputs and returns one Task per input, in input
// order. After ctx is cancelled no new input is started.
func (p *Pool[T, R]) Execute(ctx context.Context, inputs []T) []Task[T, R] {
	results := make([]Task[T, R], len(inputs))
	for i, in := range inputs {
		results[i].Input = in
	}

	indexCh := make(chan int)
	var wg sync.WaitGroup

	workers := min(p.workers, len(inputs))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range indexCh {
				result, err := p.process(ctx, inputs[idx])
				results[idx].Result = result
				results[idx].Err = err
				results[idx].Done = true
				if err != nil {
					log.Error().Err(err).Int("worker", workerID).Int("index", idx).Msg("Task failed")
				}
			}
		}(w)
	}

feed:
	for i := range inputs {
		select {
		case <-ctx.Done():
			break feed
		case indexCh <- i:
		}
	}
	close(indexCh)

	wg.Wait()
	return results
}
