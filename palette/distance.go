package palette

import (
	"math"

	"github.com/pixelloom/palettize/oklab"
	"github.com/pixelloom/palettize/rgb555"
)

// scale is the 2^14.2 convention that turns the raw Oklab delta-squared sum
// into the units every caller-facing threshold is expressed in.
var scale = math.Pow(2, 14.2)

// Distance returns the perceptual distance between two packed RGBA colors.
// If the two disagree on their alpha bit the distance is +Inf.
func Distance(c1, c2 uint32) float64 {
	if rgb555.Opaque(c1) != rgb555.Opaque(c2) {
		return math.Inf(1)
	}
	return oklab.DeltaSquared(rgb555.KeyRGBA(c1), rgb555.KeyRGBA(c2)) * scale
}
