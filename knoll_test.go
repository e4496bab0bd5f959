package palettize

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func isSortNetwork(t *testing.T, network [][2]int, n int) {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 200; trial++ {
		keys := rng.Perm(n)
		for _, p := range network {
			i, j := p[0], p[1]
			if keys[i] > keys[j] {
				keys[i], keys[j] = keys[j], keys[i]
			}
		}
		for i := 1; i < n; i++ {
			assert.LessOrEqual(t, keys[i-1], keys[i])
		}
	}
}

func TestSortNetwork8SortsAnyPermutation(t *testing.T) {
	isSortNetwork(t, sortNetwork8, 8)
}

func TestSortNetwork16SortsAnyPermutation(t *testing.T) {
	isSortNetwork(t, sortNetwork16, 16)
}

func TestThresholdMatrix16IsAPermutationOf0To15(t *testing.T) {
	seen := make(map[int]bool)
	for _, v := range thresholdMatrix16 {
		assert.False(t, seen[v], "duplicate value %d", v)
		seen[v] = true
	}
	assert.Len(t, seen, 16)
}

func TestKnollRobertsIndexStaysInRange(t *testing.T) {
	for x := 0; x < 20; x++ {
		for y := 0; y < 20; y++ {
			idx := knollRobertsIndex(x, y)
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, 8)
		}
	}
}
