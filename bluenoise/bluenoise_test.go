package bluenoise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTablesCoverTheFullGrid(t *testing.T) {
	seen := make(map[int8]int)
	for _, v := range Uniform {
		seen[v]++
	}
	// A rank-based assignment over 4096 cells spread across [-128,127]
	// should touch a wide spread of the byte range, not cluster on a few
	// values the way a low-frequency matrix would.
	assert.Greater(t, len(seen), 200)
}

func TestAtTilesWithMasking(t *testing.T) {
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			assert.Equal(t, Uniform[x+y*width], At(&Uniform, x, y))
			assert.Equal(t, At(&Uniform, x, y), At(&Uniform, x+width, y+height))
		}
	}
}

func TestMultiplierIsPositiveAndCentered(t *testing.T) {
	sum := 0.0
	for _, m := range Multiplier {
		assert.Greater(t, m, 0.0)
		sum += m
	}
	mean := sum / float64(size)
	// exp((t+0.5)/128) for t spread across [-128,127] has a geometric mean
	// near 1; the arithmetic mean runs a bit above that, but should stay in
	// a tight band around it rather than drift towards 0 or blow up.
	assert.InDelta(t, 1.0, mean, 0.1)
}

func TestTriangularPeaksNearZero(t *testing.T) {
	var nearZero, total int
	for _, v := range Triangular {
		total++
		if v > -32 && v < 32 {
			nearZero++
		}
	}
	// TPDF concentrates more mass near zero than a uniform distribution
	// would (a uniform spread across 256 values would put ~25% in any
	// quarter of the range).
	assert.Greater(t, float64(nearZero)/float64(total), 0.25)
}
