package worker

import (
	"context"
	"fmt"
	"sync"
)

// Outcome is the result of one gathered operation
type Outcome[T any] struct {
	Value T
	Err   error
}

// Gather runs all operations concurrently and waits for every one of them.
// Outcomes are recorded at the operation's submission index; a failing or
// panicking branch never cancels its siblings and never short-circuits the
// join. Panics surface as errors.
func Gather[T any](ctx context.Context, ops []func(ctx context.Context) (T, error)) []Outcome[T] {
	outcomes := make([]Outcome[T], len(ops))

	var wg sync.WaitGroup
	for i, op := range ops {
		wg.Add(1)
		go func(i int, op func(ctx context.Context) (T, error)) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					outcomes[i].Err = fmt.Errorf("panic in gathered operation: %v", r)
				}
			}()
			outcomes[i].Value, outcomes[i].Err = op(ctx)
		}(i, op)
	}
	wg.Wait()

	return outcomes
}
