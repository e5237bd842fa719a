package meshing

import (
	"fmt"

	"github.com/alitto/pond/v2"
)

// rangesPerWorker controls how finely ParallelFor splits its input so a
// slow worker does not hold up the join.
const rangesPerWorker = 4

// WorkerPool is the persistent set of goroutines that runs data-parallel
// range work for the compiler. Callers block until their work completes;
// there is no fire-and-forget path.
type WorkerPool struct {
	pool    pond.Pool
	workers int
}

// NewWorkerPool creates a pool running at most workers goroutines.
func NewWorkerPool(workers int) *WorkerPool {
	workers = max(workers, 1)
	return &WorkerPool{
		pool:    pond.NewPool(workers),
		workers: workers,
	}
}

// Workers returns the maximum concurrency of the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// ParallelFor splits [0, n) into contiguous sub-ranges of at least grain
// items, runs fn over each one on the pool and returns once all of them
// have finished. Sub-ranges run in no particular order. A panic inside fn
// is returned as an error.
func (p *WorkerPool) ParallelFor(n, grain int, fn func(start, end int)) error {
	if n <= 0 {
		return nil
	}
	grain = max(grain, 1)
	parts := p.workers * rangesPerWorker
	size := max((n+parts-1)/parts, grain)
	if p.workers == 1 || size >= n {
		return runInline(n, fn)
	}

	group := p.pool.NewGroup()
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		group.Submit(func() {
			fn(start, end)
		})
	}
	if err := group.Wait(); err != nil {
		return fmt.Errorf("parallel range: %w", err)
	}
	return nil
}

func runInline(n int, fn func(start, end int)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parallel range: panic: %v", r)
		}
	}()
	fn(0, n)
	return nil
}

// Shutdown waits for queued work and stops the pool.
func (p *WorkerPool) Shutdown() {
	p.pool.StopAndWait()
}
