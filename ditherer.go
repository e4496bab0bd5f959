// Package palettize reduces RGBA frames onto a bounded palette, with nine
// interchangeable dither kernels ranging from a direct nearest-color snap
// to stateful error diffusion.
package palettize

import (
	"github.com/pixelloom/palettize/frame"
	"github.com/pixelloom/palettize/palette"
	"github.com/pixelloom/palettize/rgb555"
)

// Ditherer applies one Algorithm against one palette.Store, reusing a set
// of per-instance scratch buffers across every frame it reduces.
//
// A Ditherer is not safe for concurrent use by multiple goroutines calling
// Reduce (or a Reduce* method) at the same time: the diffusion error rows
// and the chaotic-noise accumulator are mutated in place. Building several
// Ditherers over the same *palette.Store is fine - the Store itself is
// read-only once built.
type Ditherer struct {
	Store     *palette.Store
	Algorithm Algorithm

	rows         errorRows
	chaoticState uint64
}

// New returns a Ditherer that reduces frames onto store using algorithm.
func New(store *palette.Store, algorithm Algorithm) *Ditherer {
	return &Ditherer{
		Store:        store,
		Algorithm:    algorithm,
		chaoticState: 0x9E3779B97F4A7C15,
	}
}

// errorRows holds the two signed-byte error rows (current, next) per
// channel that every diffusion-style dither reads and writes. The buffers
// grow to the widest frame seen and are never shrunk; they're zeroed for
// the portion in use at the start of every diffusion Reduce call.
type errorRows struct {
	width int
	cur   [3][]int8
	next  [3][]int8
}

func (r *errorRows) ensure(width int) {
	if r.width >= width {
		return
	}
	for ch := 0; ch < 3; ch++ {
		r.cur[ch] = make([]int8, width)
		r.next[ch] = make([]int8, width)
	}
	r.width = width
}

func (r *errorRows) reset(width int) {
	r.ensure(width)
	for ch := 0; ch < 3; ch++ {
		for x := 0; x < width; x++ {
			r.cur[ch][x] = 0
			r.next[ch][x] = 0
		}
	}
}

func (r *errorRows) swap() {
	r.cur, r.next = r.next, r.cur
}

// wrapByte truncates v to the low byte of its rounded integer value and
// reinterprets that byte as signed, matching the error-row contract:
// accumulators are signed bytes, and overflow wraps intentionally rather
// than saturating.
func wrapByte(v float64) int8 {
	var i int64
	if v >= 0 {
		i = int64(v + 0.5)
	} else {
		i = int64(v - 0.5)
	}
	return int8(uint8(i))
}

// clampChannel clamps v to the representable byte range, the perturbation
// clamp every dither applies before a palette lookup.
func clampChannel(v float64) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}

// checkerSign returns -0.5 or 0.5 depending on the parity of x+y, the
// checkerboard term several ordered kernels mix into their perturbation.
func checkerSign(x, y int) float64 {
	if (x+y)&1 == 0 {
		return -0.5
	}
	return 0.5
}

// Reduce runs the Ditherer's configured Algorithm against f in place.
func (d *Ditherer) Reduce(f frame.Frame) {
	switch d.Algorithm.resolve() {
	case None:
		d.ReduceSolid(f)
	case GradientNoise:
		d.ReduceJimenez(f)
	case Pattern:
		d.ReduceKnoll(f)
	case ChaoticNoise:
		d.ReduceChaoticNoise(f)
	case Diffusion:
		d.ReduceFloydSteinberg(f)
	case BlueNoise:
		d.ReduceBlueNoise(f)
	case Scatter:
		d.ReduceScatter(f)
	}
}

// ReduceAll runs Reduce across every frame in sequence, in order. It
// exists for animated sources whose frames should share one Ditherer's
// scratch buffers and (for ChaoticNoise) its carried-over accumulator
// state, rather than allocating a fresh Ditherer per frame.
func (d *Ditherer) ReduceAll(frames []frame.Frame) {
	for _, f := range frames {
		if f == nil {
			continue
		}
		d.Reduce(f)
	}
}

// transparent reports whether (x,y) in f should shortcut straight to RGBA
// 0 without a palette lookup: its alpha bit is clear and the palette
// reserves slot 0 for transparency. It also returns the pixel's packed
// color for the caller to use when it isn't a shortcut.
func (d *Ditherer) transparent(f frame.Frame, x, y int) (uint32, bool) {
	c := f.At(x, y)
	if d.Store.Colors[0] == 0 && !rgb555.Opaque(c) {
		return c, true
	}
	return c, false
}
