// Package oklab precomputes the perceptually-uniform Oklab coordinates for
// every point on the 15-bit RGB555 grid. The tables are read-only after
// init and safe to share across any number of concurrent callers.
package oklab

import (
	"math"
	"sync"
)

const gridSize = 32768

// L, A, B hold the Oklab coordinates for every RGB555 key. L is in [0,1];
// A and B are roughly in [-0.5, 0.5].
var (
	L [gridSize]float32
	A [gridSize]float32
	B [gridSize]float32
)

var once sync.Once

func init() {
	once.Do(buildTables)
}

// ramp reproduces the squared 5-bit ramp sampling from the construction
// recipe: channel = (i*i)/31^2 for i in [0,31], normalized to [0,1].
func ramp(i uint8) float64 {
	f := float64(i)
	return (f * f) / (31.0 * 31.0)
}

func buildTables() {
	for key := 0; key < gridSize; key++ {
		r5 := uint8(key>>10) & 0x1F
		g5 := uint8(key>>5) & 0x1F
		b5 := uint8(key) & 0x1F

		rr := ramp(r5)
		gg := ramp(g5)
		bb := ramp(b5)

		linL := cbrt(0.4121656*rr + 0.5362752*gg + 0.0514576*bb)
		linM := cbrt(0.2118591*rr + 0.6807190*gg + 0.1074066*bb)
		linS := cbrt(0.0883098*rr + 0.2818474*gg + 0.6302614*bb)

		L[key] = float32(0.2104543*linL + 0.7936178*linM - 0.0040720*linS)
		A[key] = float32(1.9779985*linL - 2.4285922*linM + 0.4505937*linS)
		B[key] = float32(0.0259040*linL + 0.7827718*linM - 0.8086758*linS)
	}
}

func cbrt(v float64) float64 {
	if v < 0 {
		return -math.Cbrt(-v)
	}
	return math.Cbrt(v)
}

// DeltaSquared returns ΔL²+Δa²+Δb² between two RGB555 keys, before the
// perceptual distance scaling constant is applied.
func DeltaSquared(k1, k2 uint16) float64 {
	dl := float64(L[k1]) - float64(L[k2])
	da := float64(A[k1]) - float64(A[k2])
	db := float64(B[k1]) - float64(B[k2])
	return dl*dl + da*da + db*db
}
