// Package frame abstracts a read-write RGBA raster so the dither engine
// doesn't need to know whether it's looking at an *image.RGBA, an
// *image.Paletted being re-quantized, or some other caller-supplied buffer.
package frame

import (
	"image"
	"image/color"

	"github.com/pixelloom/palettize/rgb555"
)

// Frame is a read-write RGBA raster. At/Set pack and unpack the RGBA byte
// order described by the data model: R, G, B, A, most-significant byte
// first.
type Frame interface {
	Width() int
	Height() int
	At(x, y int) uint32
	Set(x, y int, c uint32)
}

// RGBA adapts a stdlib *image.RGBA to Frame.
type RGBA struct {
	Img *image.RGBA
}

// NewRGBA wraps img as a Frame.
func NewRGBA(img *image.RGBA) *RGBA { return &RGBA{Img: img} }

func (f *RGBA) Width() int  { return f.Img.Bounds().Dx() }
func (f *RGBA) Height() int { return f.Img.Bounds().Dy() }

func (f *RGBA) At(x, y int) uint32 {
	b := f.Img.Bounds()
	o := f.Img.PixOffset(x+b.Min.X, y+b.Min.Y)
	p := f.Img.Pix[o : o+4 : o+4]
	return rgb555.Pack(p[0], p[1], p[2], p[3])
}

func (f *RGBA) Set(x, y int, c uint32) {
	b := f.Img.Bounds()
	o := f.Img.PixOffset(x+b.Min.X, y+b.Min.Y)
	p := f.Img.Pix[o : o+4 : o+4]
	r, g, bl, a := rgb555.Channels(c)
	p[0], p[1], p[2], p[3] = r, g, bl, a
}

// Generic adapts any draw.Image (or plain image.Image for reads) to Frame,
// going through color.Color conversion. It's slower than RGBA but works
// with any stdlib image type, including *image.Paletted.
type Generic struct {
	Src image.Image
	Dst interface {
		Set(x, y int, c color.Color)
	}
}

// NewGeneric wraps img as a Frame. If img also implements the Dst setter
// interface (as every draw.Image does), Set will write through to it;
// otherwise Set panics, matching the teacher's "invalid Ditherer" style of
// failing loudly on programmer error rather than silently no-oping.
func NewGeneric(img image.Image) *Generic {
	g := &Generic{Src: img}
	if dst, ok := img.(interface {
		Set(x, y int, c color.Color)
	}); ok {
		g.Dst = dst
	}
	return g
}

func (f *Generic) Width() int  { return f.Src.Bounds().Dx() }
func (f *Generic) Height() int { return f.Src.Bounds().Dy() }

func (f *Generic) At(x, y int) uint32 {
	b := f.Src.Bounds()
	r, g, bl, a := f.Src.At(x+b.Min.X, y+b.Min.Y).RGBA()
	return rgb555.Pack(uint8(r>>8), uint8(g>>8), uint8(bl>>8), uint8(a>>8))
}

func (f *Generic) Set(x, y int, c uint32) {
	if f.Dst == nil {
		panic("frame: Generic.Set called on a read-only image")
	}
	b := f.Src.Bounds()
	r, g, bl, a := rgb555.Channels(c)
	f.Dst.Set(x+b.Min.X, y+b.Min.Y, color.RGBA{R: r, G: g, B: bl, A: a})
}
