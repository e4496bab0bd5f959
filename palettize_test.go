package palettize

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelloom/palettize/frame"
	"github.com/pixelloom/palettize/palette"
	"github.com/pixelloom/palettize/rgb555"
)

func twoColorStore() *palette.Store {
	return palette.Exact([]uint32{
		rgb555.Pack(0, 0, 0, 0xFF),
		rgb555.Pack(255, 255, 255, 0xFF),
	}, 0)
}

func grayColor(v uint8) color.Color {
	return color.RGBA{R: v, G: v, B: v, A: 0xFF}
}

func TestAlgorithmResolveDefaultsToScatter(t *testing.T) {
	assert.Equal(t, Scatter, Algorithm(99).resolve())
	assert.Equal(t, None, None.resolve())
}

func TestAlgorithmString(t *testing.T) {
	assert.Equal(t, "gradient-noise", GradientNoise.String())
	assert.Equal(t, "scatter", Algorithm(-1).String())
}

func TestReduceDispatchesToSolid(t *testing.T) {
	store := twoColorStore()
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	img.Set(1, 1, grayColor(128))
	f := frame.NewRGBA(img)

	d := New(store, None)
	d.Reduce(f)

	got := f.At(1, 1)
	r, g, b, _ := rgb555.Channels(got)
	assert.True(t, (r == 0 && g == 0 && b == 0) || (r == 255 && g == 255 && b == 255))
}

func TestReduceSolidIsIdempotent(t *testing.T) {
	store := twoColorStore()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, grayColor(uint8(x*32)))
		}
	}
	f := frame.NewRGBA(img)
	d := New(store, None)

	d.ReduceSolid(f)
	first := append([]uint8(nil), img.Pix...)
	d.ReduceSolid(f)
	assert.Equal(t, first, img.Pix)
}

func TestTransparentShortcutRequiresTransparentPixel(t *testing.T) {
	colors := []uint32{0, rgb555.Pack(255, 255, 255, 0xFF)}
	store := palette.Exact(colors, 0)
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, grayColor(10))
	f := frame.NewRGBA(img)

	d := New(store, None)
	_, shortcut := d.transparent(f, 0, 0)
	assert.False(t, shortcut) // pixel is opaque, so no shortcut even though slot 0 is reserved
}

func runsWithoutPanicking(t *testing.T, algo Algorithm) {
	t.Helper()
	store := twoColorStore()
	img := image.NewRGBA(image.Rect(0, 0, 6, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			img.Set(x, y, grayColor(uint8((x+y)*20)))
		}
	}
	f := frame.NewRGBA(img)
	d := New(store, algo)
	assert.NotPanics(t, func() { d.Reduce(f) })
}

func TestEveryDispatchedKernelRuns(t *testing.T) {
	for _, algo := range []Algorithm{None, GradientNoise, Pattern, ChaoticNoise, Diffusion, BlueNoise, Scatter} {
		runsWithoutPanicking(t, algo)
	}
}

func TestSierraLiteAndKnollRobertsRunDirectly(t *testing.T) {
	store := twoColorStore()
	img := image.NewRGBA(image.Rect(0, 0, 5, 5))
	f := frame.NewRGBA(img)
	d := New(store, None)

	assert.NotPanics(t, func() { d.ReduceSierraLite(f) })
	assert.NotPanics(t, func() { d.ReduceKnollRoberts(f) })
}

func TestDrawAndQuantizeInterop(t *testing.T) {
	store := twoColorStore()
	d := New(store, Diffusion)

	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, grayColor(uint8((x+y)*30)))
		}
	}

	dst := image.NewPaletted(src.Bounds(), store.Palette())
	d.Draw(dst, dst.Bounds(), src, image.Point{})

	q := d.Quantize(make(color.Palette, 0, 256), src)
	require.Len(t, q, store.Count)
}

func TestDrawPanicsOnMismatchedPalette(t *testing.T) {
	store := twoColorStore()
	d := New(store, Diffusion)

	other := palette.Exact([]uint32{rgb555.Pack(1, 2, 3, 0xFF), rgb555.Pack(4, 5, 6, 0xFF)}, 0)
	dst := image.NewPaletted(image.Rect(0, 0, 2, 2), other.Palette())
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))

	assert.Panics(t, func() { d.Draw(dst, dst.Bounds(), src, image.Point{}) })
}

var _ draw.Drawer = (*Ditherer)(nil)
var _ draw.Quantizer = (*Ditherer)(nil)
