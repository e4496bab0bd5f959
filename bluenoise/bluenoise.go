// Package bluenoise holds the two 64x64 tiling noise textures consulted by
// the ordered and scatter dithers: a uniform-distribution blue noise
// texture and a triangular-distribution derivative of it, plus the
// multiplier table derived from the triangular one.
//
// No binary blue-noise asset ships with this module, so the textures are
// generated once at init by a toroidal farthest-point ranking - the same
// family of algorithm ("void-and-cluster") real blue-noise generators use
// when building one from scratch. spec.md's Non-goals explicitly waive
// bit-identical output across implementations for the dithers that consult
// these tables, so a deterministic, algorithmically-generated texture
// satisfies the contract.
package bluenoise

import (
	"math"
	"sync"
)

const (
	width  = 64
	height = 64
	size   = width * height
)

var (
	// Uniform is a 64x64 tiling texture with values roughly uniformly
	// distributed across the signed byte range.
	Uniform [size]int8

	// Triangular is the TPDF remap of Uniform, peaked at zero.
	Triangular [size]int8

	// Multiplier[i] = exp((Triangular[i]+0.5)/128), geometric mean ≈ 1.
	Multiplier [size]float64
)

var once sync.Once

func init() {
	once.Do(build)
}

func build() {
	rank := farthestPointRank()

	for i, r := range rank {
		// Spread ranks 0..size-1 uniformly across the signed byte range.
		Uniform[i] = int8(r*256/size - 128)

		u := (float64(r) + 0.5) / float64(size)
		Triangular[i] = int8(clampByte(triangularRemap(u) * 128))
	}

	for i, t := range Triangular {
		Multiplier[i] = math.Exp((float64(t) + 0.5) / 128)
	}
}

// triangularRemap converts a uniformly-distributed u in (0,1) to a
// triangular-distributed value in (-1,1), peaked at zero. This is the
// standard TPDF remap used by dither tooling that derives a triangular
// noise field from a uniform one.
func triangularRemap(u float64) float64 {
	u2 := u*2 - 1
	if u2 < 0 {
		return -(1 - math.Sqrt(1+u2))
	}
	return 1 - math.Sqrt(1-u2)
}

func clampByte(v float64) float64 {
	if v < -128 {
		return -128
	}
	if v > 127 {
		return 127
	}
	return v
}

// farthestPointRank assigns every cell of the 64x64 toroidal grid a rank in
// [0, size) by repeatedly placing the next sample at the cell farthest
// (toroidally) from every previously-placed cell. The placement order is
// the blue-noise-like spatial ordering: low ranks and high ranks are both
// spread evenly across the grid, with no low-frequency clustering.
func farthestPointRank() [size]int {
	dist := make([]float64, size)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	placed := make([]bool, size)
	var rank [size]int

	place := func(idx, step int) {
		placed[idx] = true
		rank[idx] = step
		x0, y0 := idx%width, idx/width
		for i := range dist {
			if placed[i] {
				continue
			}
			x1, y1 := i%width, i/width
			dx := toroidalDelta(x0, x1, width)
			dy := toroidalDelta(y0, y1, height)
			d := float64(dx*dx + dy*dy)
			if d < dist[i] {
				dist[i] = d
			}
		}
	}

	// Deterministic starting cell.
	place(0, 0)

	for step := 1; step < size; step++ {
		best, bestDist := -1, -1.0
		for i := 0; i < size; i++ {
			if placed[i] {
				continue
			}
			if dist[i] > bestDist {
				bestDist, best = dist[i], i
			}
		}
		place(best, step)
	}

	return rank
}

func toroidalDelta(a, b, dim int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if d > dim/2 {
		d = dim - d
	}
	return d
}

// At returns the texel at (x, y), tiling the 64x64 texture across any
// coordinate via masking, matching the "(x & 63) | (y & 63) << 6" indexing
// the dither kernels use.
func At(table *[size]int8, x, y int) int8 {
	return table[(x&(width-1))|((y&(height-1))<<6)]
}
