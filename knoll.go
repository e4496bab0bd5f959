package palettize

import (
	"math"

	"github.com/pixelloom/palettize/frame"
	"github.com/pixelloom/palettize/oklab"
	"github.com/pixelloom/palettize/rgb555"
)

// thresholdMatrix16 is the 4x4 Bayer-like matrix the Knoll pattern dither
// indexes into, flattened row-major: {0,12,3,15; 8,4,11,7; 2,14,1,13;
// 10,6,9,5}.
var thresholdMatrix16 = [16]int{
	0, 12, 3, 15,
	8, 4, 11, 7,
	2, 14, 1, 13,
	10, 6, 9, 5,
}

// sortNetwork8 and sortNetwork16 are Batcher odd-even mergesort networks:
// fixed, data-independent sequences of compare-and-swap index pairs that
// sort an array of 8 or 16 elements. Any correct sorting network produces
// the same final order for distinct keys; these two are used verbatim for
// both sizes so that tie-breaking among candidates with equal Oklab L is
// also a fixed function of candidate-generation order, not of whichever
// general-purpose sort happens to be linked in.
var sortNetwork8 = [][2]int{
	{0, 1}, {2, 3}, {0, 2}, {1, 3}, {1, 2},
	{4, 5}, {6, 7}, {4, 6}, {5, 7}, {5, 6},
	{0, 4}, {2, 6}, {2, 4}, {1, 5}, {3, 7}, {3, 5},
	{1, 2}, {3, 4}, {5, 6},
}

var sortNetwork16 = [][2]int{
	{0, 1}, {2, 3}, {0, 2}, {1, 3}, {1, 2},
	{4, 5}, {6, 7}, {4, 6}, {5, 7}, {5, 6},
	{0, 4}, {2, 6}, {2, 4}, {1, 5}, {3, 7}, {3, 5},
	{1, 2}, {3, 4}, {5, 6},
	{8, 9}, {10, 11}, {8, 10}, {9, 11}, {9, 10},
	{12, 13}, {14, 15}, {12, 14}, {13, 15}, {13, 14},
	{8, 12}, {10, 14}, {10, 12}, {9, 13}, {11, 15}, {11, 13},
	{9, 10}, {11, 12}, {13, 14},
	{0, 8}, {4, 12}, {4, 8}, {2, 10}, {6, 14}, {6, 10}, {2, 4}, {6, 8}, {10, 12},
	{1, 9}, {5, 13}, {5, 9}, {3, 11}, {7, 15}, {7, 11}, {3, 5}, {7, 9}, {11, 13},
	{1, 2}, {3, 4}, {5, 6}, {7, 8}, {9, 10}, {11, 12}, {13, 14},
}

// sortCandidatesByL sorts colors ascending by Oklab L using network,
// applying each comparator to both the color and its derived key in
// lockstep.
func sortCandidatesByL(colors []uint32, network [][2]int) {
	keys := make([]float32, len(colors))
	for i, c := range colors {
		keys[i] = oklab.L[rgb555.KeyRGBA(c)]
	}
	for _, p := range network {
		i, j := p[0], p[1]
		if keys[i] > keys[j] {
			keys[i], keys[j] = keys[j], keys[i]
			colors[i], colors[j] = colors[j], colors[i]
		}
	}
}

// knollPixel runs the shared Knoll/Knoll-Roberts inner loop for one pixel:
// n rounds of candidate generation via a running error triple skewed by
// the gamma-adjusted palette, a sort by Oklab L, and a threshold-matrix
// pick.
func (d *Ditherer) knollPixel(f frame.Frame, x, y, n int, multiplier float64, matrixIndex func(x, y int) int, network [][2]int) uint32 {
	c, shortcut := d.transparent(f, x, y)
	if shortcut {
		return 0
	}
	r, g, b, _ := rgb555.Channels(c)
	orig := [3]float64{float64(r), float64(g), float64(b)}
	var errAcc [3]float64

	candidates := make([]uint32, n)
	for i := 0; i < n; i++ {
		cr := clampChannel(orig[0] + errAcc[0]*multiplier)
		cg := clampChannel(orig[1] + errAcc[1]*multiplier)
		cb := clampChannel(orig[2] + errAcc[2]*multiplier)

		idx := d.Store.Mapping[rgb555.Key(cr, cg, cb)]
		candidates[i] = d.Store.Colors[idx]

		gr, gg, gb, _ := rgb555.Channels(d.Store.GammaColors[idx])
		errAcc[0] += orig[0] - float64(gr)
		errAcc[1] += orig[1] - float64(gg)
		errAcc[2] += orig[2] - float64(gb)
	}

	sortCandidatesByL(candidates, network)
	return candidates[matrixIndex(x, y)]
}

// knollRobertsIndex computes the Roberts-sequence-skewed threshold index
// for Knoll-Roberts, in [0, 8).
func knollRobertsIndex(x, y int) int {
	const c1 = 0x1.C13FA9A902A6328Fp3
	const c2 = 0x1.9E3779B97F4A7C15p-2
	part1 := int(math.Floor(float64(x)*c1+float64(y)*c2)) & 3
	part2 := (x & 3) | ((y & 1) << 2)
	return part1 ^ part2
}

// ReduceKnoll dithers f with the 16-candidate pattern dither: each pixel
// generates 16 candidates by repeatedly perturbing toward the palette
// along a running, gamma-skewed error, sorts them by Oklab L, and emits
// the one selected by the 4x4 threshold matrix.
func (d *Ditherer) ReduceKnoll(f frame.Frame) {
	defer frame.WithReplaceMode(f)()

	multiplier := d.Store.DitherStrength * d.Store.Bias
	matrixIndex := func(x, y int) int { return thresholdMatrix16[(x&3)|((y&3)<<2)] }

	w, h := f.Width(), f.Height()
	parallelRows(h, func(y int) {
		for x := 0; x < w; x++ {
			f.Set(x, y, d.knollPixel(f, x, y, 16, multiplier, matrixIndex, sortNetwork16))
		}
	})
}

// ReduceKnollRoberts dithers f with the 8-candidate variant of Knoll: a
// lighter error multiplier and a Roberts-sequence-skewed threshold index
// in place of the plain 4x4 matrix lookup.
func (d *Ditherer) ReduceKnollRoberts(f frame.Frame) {
	defer frame.WithReplaceMode(f)()

	multiplier := 0.6 * d.Store.DitherStrength * d.Store.Bias

	w, h := f.Width(), f.Height()
	parallelRows(h, func(y int) {
		for x := 0; x < w; x++ {
			f.Set(x, y, d.knollPixel(f, x, y, 8, multiplier, knollRobertsIndex, sortNetwork8))
		}
	})
}
