package palette

import (
	"math"
	"sync"
)

var (
	haltonicOnce   sync.Once
	haltonicColors [256]uint32
)

// Haltonic returns the built-in 256-color fallback palette, used whenever
// Exact or Analyze is given malformed or degenerate input. It's built once,
// offline relative to any caller, by farthest-point selection (in Oklab
// distance) over a Halton(2,3,5) low-discrepancy candidate stream — the
// threshold-free sibling of the same greedy dispersion Analyze performs,
// guaranteeing exactly 256 well-separated colors every time.
func Haltonic() [256]uint32 {
	haltonicOnce.Do(buildHaltonic)
	return haltonicColors
}

func haltonicStore() *Store {
	s := &Store{Colors: Haltonic(), Count: 256}
	s.computeBias()
	s.SetDitherStrength(1.0)
	s.BuildIndex()
	return s
}

func buildHaltonic() {
	const candidates = 2048

	pts := make([]uint32, candidates)
	for i := 0; i < candidates; i++ {
		r := halton(i+1, 2)
		g := halton(i+1, 3)
		b := halton(i+1, 5)
		pts[i] = packChannel(r)<<24 | packChannel(g)<<16 | packChannel(b)<<8 | 0xFF
	}

	dist := make([]float64, candidates)
	for i := range dist {
		dist[i] = math.Inf(1)
	}

	chosen := make([]int, 0, 256)
	selectPoint := func(idx int) {
		chosen = append(chosen, idx)
		dist[idx] = -1
		for i := range dist {
			if dist[i] < 0 {
				continue
			}
			if d := Distance(pts[idx], pts[i]); d < dist[i] {
				dist[i] = d
			}
		}
	}

	selectPoint(0)
	for len(chosen) < 256 {
		best, bestDist := -1, -1.0
		for i, d := range dist {
			if d < 0 {
				continue
			}
			if d > bestDist {
				bestDist, best = d, i
			}
		}
		selectPoint(best)
	}

	for i, idx := range chosen {
		haltonicColors[i] = pts[idx]
	}
}

// halton returns the base-b radical inverse of index.
func halton(index, base int) float64 {
	f, r := 1.0, 0.0
	for i := index; i > 0; i /= base {
		f /= float64(base)
		r += f * float64(i%base)
	}
	return r
}

func packChannel(v float64) uint32 {
	scaled := v*255.0 + 0.5
	switch {
	case scaled < 0:
		return 0
	case scaled > 255:
		return 255
	default:
		return uint32(scaled)
	}
}
