package palettize

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pixelloom/palettize/frame"
)

func TestWrapByteRoundsAndWraps(t *testing.T) {
	assert.Equal(t, int8(5), wrapByte(5.0))
	assert.Equal(t, int8(-5), wrapByte(-5.0))
	assert.Equal(t, int8(127), wrapByte(127.4))
	// 200 doesn't fit in a signed byte: it wraps rather than saturates.
	assert.Equal(t, int8(uint8(200)), wrapByte(200.0))
}

func TestDiffusionZeroSizeFrameIsNoOp(t *testing.T) {
	store := twoColorStore()
	d := New(store, Diffusion)

	img := image.NewRGBA(image.Rect(0, 0, 0, 0))
	f := frame.NewRGBA(img)

	assert.NotPanics(t, func() { d.ReduceFloydSteinberg(f) })
}

func checkerboardFrame(w, h int) (*image.RGBA, frame.Frame) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if (x+y)%2 == 0 {
				v = 255
			}
			img.Set(x, y, grayColor(v))
		}
	}
	return img, frame.NewRGBA(img)
}

func TestFloydSteinbergRunsAndStaysOnPalette(t *testing.T) {
	store := twoColorStore()
	d := New(store, Diffusion)

	_, f := checkerboardFrame(8, 8)
	assert.NotPanics(t, func() { d.ReduceFloydSteinberg(f) })

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := f.At(x, y)
			found := false
			for i := 0; i < store.Count; i++ {
				if store.Colors[i] == c {
					found = true
					break
				}
			}
			assert.True(t, found)
		}
	}
}

func TestSierraLiteAndScatterRunWithoutPanicking(t *testing.T) {
	store := twoColorStore()
	_, f1 := checkerboardFrame(8, 8)
	_, f2 := checkerboardFrame(8, 8)

	d := New(store, Diffusion)
	assert.NotPanics(t, func() { d.ReduceSierraLite(f1) })
	assert.NotPanics(t, func() { d.ReduceScatter(f2) })
}

func TestScatterWeightLargerThanFloydSteinbergWeight(t *testing.T) {
	store := twoColorStore()
	fsWeight := store.DitherStrength * store.Bias * 0.125
	scatterWeight := 0.140625 * store.Bias * store.DitherStrength
	assert.Greater(t, scatterWeight, fsWeight)
}

func TestIdentityPerturbReturnsRawUnchanged(t *testing.T) {
	assert.Equal(t, float64(-12), identityPerturb(0, 0, -12))
	assert.Equal(t, float64(47), identityPerturb(3, 9, 47))
}
