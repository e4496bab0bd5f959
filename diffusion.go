package palettize

import (
	"github.com/pixelloom/palettize/bluenoise"
	"github.com/pixelloom/palettize/frame"
	"github.com/pixelloom/palettize/rgb555"
)

// diffusionRatios scales a base weight w into the four neighbor
// contributions an error-diffusion kernel spreads a pixel's residual
// across: right (same row), and down-left/down/down-right (next row).
type diffusionRatios struct {
	right, downLeft, down, downRight float64
}

// runDiffusion is the raster-order loop shared by Floyd-Steinberg, Sierra
// Lite, and Scatter. w is the base weight (already folding in
// ditherStrength and populationBias); ratios scale w into the four
// neighbor contributions; perturb maps a stored error-row byte into the
// float64 actually added to the source channel before the palette lookup
// (identity for Floyd-Steinberg/Sierra Lite, blue-noise-modulated for
// Scatter).
func (d *Ditherer) runDiffusion(f frame.Frame, w float64, ratios diffusionRatios, perturb func(x, y int, raw int8) float64) {
	defer frame.WithReplaceMode(f)()

	width, height := f.Width(), f.Height()
	if width == 0 || height == 0 {
		return
	}
	d.rows.reset(width)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c, shortcut := d.transparent(f, x, y)
			if shortcut {
				f.Set(x, y, 0)
				continue
			}
			r, g, b, _ := rgb555.Channels(c)
			orig := [3]float64{float64(r), float64(g), float64(b)}

			var target [3]uint8
			for ch := 0; ch < 3; ch++ {
				target[ch] = clampChannel(orig[ch] + perturb(x, y, d.rows.cur[ch][x]))
			}

			key := rgb555.Key(target[0], target[1], target[2])
			idx := d.Store.Mapping[key]
			used := d.Store.Colors[idx]
			ur, ug, ub, _ := rgb555.Channels(used)
			usedCh := [3]float64{float64(ur), float64(ug), float64(ub)}

			for ch := 0; ch < 3; ch++ {
				residual := orig[ch] - usedCh[ch]
				if x+1 < width {
					d.rows.cur[ch][x+1] = wrapByte(float64(d.rows.cur[ch][x+1]) + ratios.right*w*residual)
				}
				if y+1 < height {
					if x > 0 {
						d.rows.next[ch][x-1] = wrapByte(float64(d.rows.next[ch][x-1]) + ratios.downLeft*w*residual)
					}
					d.rows.next[ch][x] = wrapByte(float64(d.rows.next[ch][x]) + ratios.down*w*residual)
					if x+1 < width {
						d.rows.next[ch][x+1] = wrapByte(float64(d.rows.next[ch][x+1]) + ratios.downRight*w*residual)
					}
				}
			}

			f.Set(x, y, used)
		}
		d.rows.swap()
		for ch := 0; ch < 3; ch++ {
			for x := 0; x < width; x++ {
				d.rows.next[ch][x] = 0
			}
		}
	}
}

func identityPerturb(_, _ int, raw int8) float64 { return float64(raw) }

// ReduceFloydSteinberg dithers f with classic Floyd-Steinberg error
// diffusion: weight w = ditherStrength*populationBias*0.125, spread
// 7/3/5/1 across the right, down-left, down, and down-right neighbors.
func (d *Ditherer) ReduceFloydSteinberg(f frame.Frame) {
	w := d.Store.DitherStrength * d.Store.Bias * 0.125
	d.runDiffusion(f, w, diffusionRatios{right: 7, downLeft: 3, down: 5, downRight: 1}, identityPerturb)
}

// ReduceSierraLite dithers f with the same structure as Floyd-Steinberg
// but a base weight without the 0.125 factor, spread in full to the right
// and at half magnitude down and down-left, with no down-right
// contribution.
func (d *Ditherer) ReduceSierraLite(f frame.Frame) {
	w := d.Store.DitherStrength * d.Store.Bias
	d.runDiffusion(f, w, diffusionRatios{right: 1, downLeft: 0.5, down: 0.5, downRight: 0}, identityPerturb)
}

// ReduceScatter dithers f with Floyd-Steinberg-shaped diffusion whose
// weight is scaled by 0.140625*populationBias*ditherStrength, and whose
// incoming error is modulated by the triangular blue-noise multiplier at
// each pixel before it perturbs the target - breaking up Floyd-Steinberg's
// regular artifacts while keeping its shape-preserving diffusion.
func (d *Ditherer) ReduceScatter(f frame.Frame) {
	w := 0.140625 * d.Store.Bias * d.Store.DitherStrength
	perturb := func(x, y int, raw int8) float64 {
		return float64(raw) * bluenoise.Multiplier[(x&63)|((y&63)<<6)]
	}
	d.runDiffusion(f, w, diffusionRatios{right: 7, downLeft: 3, down: 5, downRight: 1}, perturb)
}
