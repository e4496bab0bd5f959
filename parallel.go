package palettize

import (
	"runtime"
	"sync"
)

// parallelRows partitions [0, height) into contiguous row ranges across
// runtime.GOMAXPROCS(0) workers and runs work(y) for every row, waiting
// for all of them to finish before returning.
//
// Only the ordered dithers use this: Jimenez, Blue-Noise, Knoll, and
// Knoll-Roberts each compute a pixel as a pure function of the source
// frame and its (x, y) coordinate, so row order never affects their
// output. The diffusion dithers and Chaotic-Noise carry state between
// pixels in raster order and must stay on the single-threaded loop.
func parallelRows(height int, work func(y int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > height {
		workers = height
	}
	if workers <= 1 {
		for y := 0; y < height; y++ {
			work(y)
		}
		return
	}

	partSize := height / workers
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		lo := i * partSize
		hi := lo + partSize
		if i == workers-1 {
			hi = height
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for y := lo; y < hi; y++ {
				work(y)
			}
		}(lo, hi)
	}
	wg.Wait()
}
