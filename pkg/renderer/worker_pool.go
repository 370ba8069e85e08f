package renderer

import (
	"runtime"
	"sync"

	"github.com/alitto/pond/v2"
)

// workerPool wraps a pond.Pool with the parallel-for helpers the photon
// and eye passes both need: a chunked dynamic-schedule loop over a
// fixed item count, blocking until every chunk completes.
// Grounded on the teacher's WorkerPool (pkg/renderer/worker_pool.go),
// rebuilt on pond/v2 the way nicolasmd87-gopher3D's
// GenerateVoxelsParallel uses it (pool.Submit + an external
// sync.WaitGroup) rather than the teacher's hand-rolled channel pair.
type workerPool struct {
	pool       pond.Pool
	numWorkers int
}

func newWorkerPool(numWorkers int) *workerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &workerPool{pool: pond.NewPool(numWorkers), numWorkers: numWorkers}
}

func (wp *workerPool) stop() {
	wp.pool.StopAndWait()
}

// parallelChunks splits [0,n) into chunks of the given size and runs fn
// once per chunk across the pool, blocking until all chunks finish.
// Both photon emission's dynamic schedule and the eye pass's two-level
// collapsed loop over pixels reduce to the same chunked range scan.
func (wp *workerPool) parallelChunks(n, chunkSize int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		start, end := start, end
		wp.pool.Submit(func() {
			defer wg.Done()
			fn(start, end)
		})
	}
	wg.Wait()
}
