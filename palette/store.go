// Package palette owns the palette store, the nearest-color index over the
// RGB555 grid, and the two ways to build a store: adopting a caller-supplied
// palette verbatim, or analyzing one or more frames for their most
// distinctive colors.
package palette

import (
	"math"

	"github.com/pixelloom/palettize/rgb555"
)

// Store holds a palette of up to 256 RGBA colors, the nearest-color index
// over the full RGB555 grid, and the dither-tuning scalars derived from the
// palette's size.
//
// A Store is safe to read from any number of goroutines once built. It must
// not be mutated (via SetDitherStrength or a rebuild) while a Ditherer is
// using it concurrently.
type Store struct {
	// Colors holds up to 256 palette entries. Colors[0] == 0 iff the
	// palette reserves a fully-transparent slot.
	Colors [256]uint32

	// Count is the number of populated slots; the tail of Colors is zero.
	Count int

	// Bias is exp(-1.375/Count), attenuating dither strength for small
	// palettes.
	Bias float64

	// GammaColors mirrors Colors with R, G, B raised to the power
	// 1.8*(1-DitherStrength). Only the pattern dithers consult it.
	GammaColors [256]uint32

	// Mapping maps every RGB555 key to the index of its nearest palette
	// entry under the perceptual metric in Distance.
	Mapping [32768]byte

	// DitherStrength is the halved, clamped-to-non-negative strength set
	// by the most recent call to SetDitherStrength. The default is 0.5.
	DitherStrength float64
}

// SetDitherStrength clamps raw to [0, +Inf), halves it, stores the result as
// DitherStrength, and recomputes GammaColors to match.
func (s *Store) SetDitherStrength(raw float64) {
	if raw < 0 {
		raw = 0
	}
	s.DitherStrength = raw / 2
	s.rebuildGamma()
}

func (s *Store) rebuildGamma() {
	gamma := 1.8 * (1 - s.DitherStrength)
	for i, c := range s.Colors {
		r, g, b, a := rgb555.Channels(c)
		s.GammaColors[i] = rgb555.Pack(gammaChannel(r, gamma), gammaChannel(g, gamma), gammaChannel(b, gamma), a)
	}
}

func gammaChannel(v uint8, gamma float64) uint8 {
	norm := float64(v) / 255.0
	out := math.Pow(norm, gamma) * 255.0
	switch {
	case out < 0:
		return 0
	case out > 255:
		return 255
	default:
		return uint8(out + 0.5)
	}
}

func (s *Store) computeBias() {
	if s.Count < 1 {
		s.Count = 1
	}
	s.Bias = math.Exp(-1.375 / float64(s.Count))
}
