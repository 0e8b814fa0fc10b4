package raster

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

var maxWorkers atomic.Int64

// SetMaxWorkers sets how many goroutines row-parallel operations may use.
// n <= 0 selects GOMAXPROCS. n == 1 runs every operation on the calling goroutine.
func SetMaxWorkers(n int) {
	maxWorkers.Store(int64(max(n, 0)))
}

// MaxWorkers returns the effective worker count.
func MaxWorkers() int {
	if n := int(maxWorkers.Load()); n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// ParallelRows calls fn over contiguous, disjoint row bands [y0,y1) that together
// cover [0,height), and blocks until all calls return. Bands run concurrently so fn
// must only write to the rows it is given.
func ParallelRows(height int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}
	workers := min(MaxWorkers(), height)
	if workers == 1 {
		fn(0, height)
		return
	}
	band := (height + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for y0 := 0; y0 < height; y0 += band {
		y0 := y0 // per-iteration copy; go directive is below 1.22 loopvar semantics
		y1 := min(y0+band, height)
		g.Go(func() error {
			fn(y0, y1)
			return nil
		})
	}
	g.Wait()
}
