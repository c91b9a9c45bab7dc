// Package parallel splits row ranges of an image across worker
// goroutines. Rows of a band are contiguous and bands never overlap,
// so kernels that only touch their own rows need no locking.
package parallel

import (
	"runtime"
	"sync"
)

// minRowsForParallel is the row count below which goroutine overhead
// outweighs the work and the band runs inline.
const minRowsForParallel = 64

// Bands invokes fn over [0, rows) split into contiguous bands, one
// per worker goroutine. Band boundaries are rounded down to a
// multiple of align so formats whose row pairs share state (4:2:0
// chroma) never straddle two workers. Bands blocks until every band
// has finished.
func Bands(rows, align int, fn func(start, end int)) {
	if rows <= 0 {
		return
	}
	numWorkers := runtime.GOMAXPROCS(0)
	if rows < minRowsForParallel || numWorkers <= 1 {
		fn(0, rows)
		return
	}
	if numWorkers > rows/align {
		numWorkers = rows / align
	}
	rowsPerWorker := rows / numWorkers
	// Keep shared-state row groups within a single band.
	rowsPerWorker -= rowsPerWorker % align

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		start := w * rowsPerWorker
		end := start + rowsPerWorker
		if w == numWorkers-1 {
			end = rows
		}
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
