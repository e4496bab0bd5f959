package palettize

import (
	"math"

	"github.com/pixelloom/palettize/frame"
	"github.com/pixelloom/palettize/rgb555"
)

// chaoticMultiplier and chaoticIncrement are the fixed constants the
// chaotic-noise accumulator mixes in at every pixel: s = (s^color)*M + K.
const (
	chaoticMultiplier = 0xD1342543DE82EF95
	chaoticIncrement  = 0x91E10DA5C79E7B1D
)

// shiftedFraction reads a 32-bit window of s starting at shift and maps it
// onto roughly [-0.5, 0.5]. The three windows ReduceChaoticNoise combines
// are a convenient, deterministic way to pull several decorrelated values
// out of one 64-bit state word; spec.md waives bit-identical output across
// implementations for this dither, so the exact windowing isn't load-bearing,
// only that it's a stable function of the accumulator.
func shiftedFraction(s uint64, shift uint) float64 {
	return float64(uint32(s>>shift))/4294967296.0 - 0.5
}

// ReduceChaoticNoise dithers f with a stateful ordered dither: a 64-bit
// accumulator carried across pixels in raster order is mixed with each
// pixel's first-pass quantized color, and three values derived from it are
// summed into a tiny perturbation added to the cube of the Blue-Noise
// adjustment (§4.7.6). Because the accumulator threads through every
// pixel in sequence, this dither cannot be parallelized across pixels the
// way the other ordered dithers can.
func (d *Ditherer) ReduceChaoticNoise(f frame.Frame) {
	defer frame.WithReplaceMode(f)()

	w, h := f.Width(), f.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, shortcut := d.transparent(f, x, y)
			if shortcut {
				f.Set(x, y, 0)
				continue
			}
			r, g, b, _ := rgb555.Channels(c)
			used := d.Store.Colors[d.Store.Mapping[rgb555.Key(r, g, b)]]

			d.chaoticState = (d.chaoticState ^ uint64(used)) * chaoticMultiplier + chaoticIncrement
			s := d.chaoticState
			sum := shiftedFraction(s, 0) + shiftedFraction(s, 11) + shiftedFraction(s, 22)

			tiny := 1.5 * math.Pow(2, -49) * d.Store.DitherStrength * d.Store.Bias * checkerSign(x, y)
			blue := d.blueNoiseAdj(x, y)
			adj := sum*tiny + blue*blue*blue

			ur, ug, ub, _ := rgb555.Channels(used)
			nr := clampChannel(float64(r) + adj*(float64(r)-float64(ur)))
			ng := clampChannel(float64(g) + adj*(float64(g)-float64(ug)))
			nb := clampChannel(float64(b) + adj*(float64(b)-float64(ub)))

			idx2 := d.Store.Mapping[rgb555.Key(nr, ng, nb)]
			f.Set(x, y, d.Store.Colors[idx2])
		}
	}
}
