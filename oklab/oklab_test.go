package oklab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeltaSquaredZeroForSameKey(t *testing.T) {
	for _, key := range []uint16{0, 1, 12345, 32767} {
		assert.Equal(t, 0.0, DeltaSquared(key, key))
	}
}

func TestDeltaSquaredSymmetric(t *testing.T) {
	assert.Equal(t, DeltaSquared(10, 20000), DeltaSquared(20000, 10))
}

func TestBlackAndWhiteAreFarApart(t *testing.T) {
	black := uint16(0)
	white := uint16(0x7FFF)
	// Any two mid-tone grays should be perceptually closer to each other
	// than black is to white.
	gray1 := Key555(15, 15, 15)
	gray2 := Key555(17, 17, 17)
	assert.Greater(t, DeltaSquared(black, white), DeltaSquared(gray1, gray2))
}

// Key555 packs a raw 5-bit-per-channel triple into the grid index these
// tables are addressed by, without going through the rgb555 package (which
// would make this test depend on a second package's packing order).
func Key555(r5, g5, b5 uint8) uint16 {
	return uint16(r5)<<10 | uint16(g5)<<5 | uint16(b5)
}
