package scheduler

import (
	"context"
	"sync"
	"time"
)

type task func(ctx context.Context) error

// pool runs tasks on a fixed number of goroutines. A positive interval
// spaces task starts across all workers so the upstream quota is not
// burned in one burst.
type pool struct {
	workers  int
	interval time.Duration
}

func newPool(workers int, interval time.Duration) pool {
	if workers <= 0 {
		workers = 1
	}
	if interval < 0 {
		interval = 0
	}
	return pool{workers: workers, interval: interval}
}

// run blocks until every task finished or ctx is done and returns the
// number of tasks that returned nil.
func (p pool) run(ctx context.Context, tasks []task) int {
	if len(tasks) == 0 {
		return 0
	}

	queue := make(chan task, len(tasks))
	for _, t := range tasks {
		if t != nil {
			queue <- t
		}
	}
	close(queue)

	var rate <-chan time.Time
	if p.interval > 0 {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		rate = ticker.C
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer wg.Done()
			for t := range queue {
				if ctx.Err() != nil {
					return
				}
				if rate != nil {
					select {
					case <-ctx.Done():
						return
					case <-rate:
					}
				}
				if err := t(ctx); err == nil {
					mu.Lock()
					ok++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()
	return ok
}
