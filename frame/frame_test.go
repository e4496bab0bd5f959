package frame

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelloom/palettize/rgb555"
)

func TestRGBAGetSetRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	f := NewRGBA(img)

	c := rgb555.Pack(10, 200, 30, 0xFF)
	f.Set(2, 1, c)
	assert.Equal(t, c, f.At(2, 1))
	assert.Equal(t, 4, f.Width())
	assert.Equal(t, 3, f.Height())
}

func TestRGBAHonorsNonZeroOrigin(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 9, 9))
	f := NewRGBA(img)

	c := rgb555.Pack(1, 2, 3, 0xFF)
	f.Set(0, 0, c)
	assert.Equal(t, c, f.At(0, 0))
	assert.Equal(t, c, rgb555.Pack(img.RGBAAt(5, 5).R, img.RGBAAt(5, 5).G, img.RGBAAt(5, 5).B, img.RGBAAt(5, 5).A))
}

func TestGenericReadOnlyPanicsOnSet(t *testing.T) {
	img := image.NewUniform(color.White) // has no Set method
	f := NewGeneric(img)

	assert.Panics(t, func() { f.Set(0, 0, rgb555.Pack(0, 0, 0, 0xFF)) })
}

func TestGenericWritesThroughToDraw(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	f := NewGeneric(img)

	c := rgb555.Pack(50, 60, 70, 0xFF)
	f.Set(1, 1, c)
	assert.Equal(t, c, f.At(1, 1))
}

type fakeModeSetter struct {
	*RGBA
	mode BlendMode
}

func (f *fakeModeSetter) SetBlendMode(mode BlendMode) BlendMode {
	prev := f.mode
	f.mode = mode
	return prev
}

func TestWithReplaceModeRestoresPriorMode(t *testing.T) {
	f := &fakeModeSetter{RGBA: NewRGBA(image.NewRGBA(image.Rect(0, 0, 1, 1))), mode: Over}

	restore := WithReplaceMode(f)
	require.Equal(t, Replace, f.mode)
	restore()
	assert.Equal(t, Over, f.mode)
}

func TestWithReplaceModeNoOpWithoutModeSetter(t *testing.T) {
	f := NewRGBA(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	restore := WithReplaceMode(f)
	restore() // should not panic
}
