package palettize

import (
	"math"

	"github.com/pixelloom/palettize/bluenoise"
	"github.com/pixelloom/palettize/frame"
	"github.com/pixelloom/palettize/rgb555"
)

// blueNoiseK is -0x1.6p-10: the tiny checkerboard-mixing constant in the
// Blue-Noise ordered dither's adjustment formula.
const blueNoiseK = -1.375 / 1024

// runOrdered is the two-pass lookup shared by Jimenez and Blue-Noise: a
// first-pass nearest color establishes "used", adjAt supplies a per-pixel
// scalar that perturbs the target toward or away from it, and a second
// lookup on the perturbed, clamped target produces the output color. Both
// passes are pure functions of (x, y) and the source pixel, so unlike the
// diffusion kernels this loop carries no state between pixels and is safe
// to parallelize.
func (d *Ditherer) runOrdered(f frame.Frame, adjAt func(x, y int) float64) {
	defer frame.WithReplaceMode(f)()

	w, h := f.Width(), f.Height()
	parallelRows(h, func(y int) {
		for x := 0; x < w; x++ {
			f.Set(x, y, d.orderedPixel(f, x, y, adjAt))
		}
	})
}

// orderedPixel computes the Blue-Noise/Jimenez-style two-pass output for a
// single pixel. ReduceChaoticNoise does not call it; it runs its own copy
// of the two passes with its stateful adjustment in between.
func (d *Ditherer) orderedPixel(f frame.Frame, x, y int, adjAt func(x, y int) float64) uint32 {
	c, shortcut := d.transparent(f, x, y)
	if shortcut {
		return 0
	}
	r, g, b, _ := rgb555.Channels(c)
	used := d.Store.Colors[d.Store.Mapping[rgb555.Key(r, g, b)]]
	ur, ug, ub, _ := rgb555.Channels(used)

	adj := adjAt(x, y)
	nr := clampChannel(float64(r) + adj*(float64(r)-float64(ur)))
	ng := clampChannel(float64(g) + adj*(float64(g)-float64(ug)))
	nb := clampChannel(float64(b) + adj*(float64(b)-float64(ub)))

	idx2 := d.Store.Mapping[rgb555.Key(nr, ng, nb)]
	return d.Store.Colors[idx2]
}

func frac(v float64) float64 { return v - math.Floor(v) }

// jimenezAdj returns the gradient-interleaved-noise adjustment at (x, y).
func (d *Ditherer) jimenezAdj(x, y int) float64 {
	inner := 0.06711056*float64(x) + 0.00583715*float64(y)
	pos := frac(52.9829189 * frac(inner))
	return math.Sin(2*pos-1) * (3.333 * d.Store.DitherStrength * d.Store.Bias)
}

// blueNoiseAdj returns the ordered blue-noise adjustment at (x, y).
func (d *Ditherer) blueNoiseAdj(x, y int) float64 {
	n1 := float64(bluenoise.At(&bluenoise.Uniform, x, y))
	adj := (n1 + 0.5) / 127.5

	n2 := float64(bluenoise.At(&bluenoise.Uniform, 19*x, 23*y))
	adj += checkerSign(x, y) * (0.5 + n2) * blueNoiseK

	return adj * 1.5 * d.Store.DitherStrength * d.Store.Bias
}

// ReduceJimenez dithers f with the Jimenez gradient-interleaved-noise
// ordered dither: no error accumulation, embarrassingly parallel per pixel.
func (d *Ditherer) ReduceJimenez(f frame.Frame) {
	d.runOrdered(f, d.jimenezAdj)
}

// ReduceBlueNoise dithers f by perturbing each pixel toward or away from
// its nearest palette color using the uniform blue-noise texture.
func (d *Ditherer) ReduceBlueNoise(f frame.Frame) {
	d.runOrdered(f, d.blueNoiseAdj)
}
