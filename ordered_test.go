package palettize

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pixelloom/palettize/frame"
	"github.com/pixelloom/palettize/palette"
	"github.com/pixelloom/palettize/rgb555"
)

func TestJimenezAdjIsBounded(t *testing.T) {
	store := twoColorStore()
	d := New(store, GradientNoise)

	for x := 0; x < 40; x++ {
		for y := 0; y < 40; y++ {
			adj := d.jimenezAdj(x, y)
			assert.GreaterOrEqual(t, adj, -3.334)
			assert.LessOrEqual(t, adj, 3.334)
		}
	}
}

func TestBlueNoiseAdjIsDeterministic(t *testing.T) {
	store := twoColorStore()
	d := New(store, BlueNoise)

	a := d.blueNoiseAdj(5, 9)
	b := d.blueNoiseAdj(5, 9)
	assert.Equal(t, a, b)
}

func TestBlueNoiseAdjZeroWhenDitherStrengthZero(t *testing.T) {
	store := twoColorStore()
	store.SetDitherStrength(0)
	d := New(store, BlueNoise)

	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			assert.Equal(t, 0.0, d.blueNoiseAdj(x, y))
		}
	}
}

func TestOrderedPixelReturnsPaletteColor(t *testing.T) {
	store := palette.Exact([]uint32{
		rgb555.Pack(0, 0, 0, 0xFF),
		rgb555.Pack(255, 255, 255, 0xFF),
		rgb555.Pack(128, 128, 128, 0xFF),
	}, 0)
	d := New(store, GradientNoise)

	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, grayColor(100))
		}
	}
	f := frame.NewRGBA(img)

	d.ReduceJimenez(f)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
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
