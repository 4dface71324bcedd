// Package async provides a small fan-out helper for running independent
// sub-computations concurrently and collecting their results by name.
package async

import (
	"context"
	"sync"
)

// Task is a named unit of work.
type Task struct {
	Name    string
	Execute func() (interface{}, error)
}

// Result holds the outcome of a single task.
type Result struct {
	Name string
	Data interface{}
	Err  error
}

// Run executes every task on its own goroutine and blocks until all finish or
// the context is cancelled. Tasks started before cancellation still get their
// result recorded; tasks not yet collected when ctx fires are dropped.
func Run(ctx context.Context, tasks []Task) map[string]Result {
	results := make(map[string]Result, len(tasks))
	out := make(chan Result, len(tasks))

	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		go func(t Task) {
			defer wg.Done()
			data, err := t.Execute()
			out <- Result{Name: t.Name, Data: data, Err: err}
		}(task)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	for {
		select {
		case result, ok := <-out:
			if !ok {
				return results
			}
			results[result.Name] = result
		case <-ctx.Done():
			return results
		}
	}
}
