package palettize

// This file implements the image/draw interfaces draw.Drawer and
// draw.Quantizer, so a Ditherer can sit anywhere stdlib image encoding
// expects one - most usefully, as the palette source and per-frame drawer
// for image/gif.

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/pixelloom/palettize/frame"
)

// subImager is a draw.Image that also implements SubImage, as every
// stdlib draw.Image does.
type subImager interface {
	draw.Image
	SubImage(r image.Rectangle) image.Image
}

func sameColor(c1, c2 color.Color) bool {
	r1, g1, b1, a1 := c1.RGBA()
	r2, g2, b2, a2 := c2.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

func paletteEqual(p1, p2 color.Palette) bool {
	if len(p1) != len(p2) {
		return false
	}
	for _, c1 := range p1 {
		found := false
		for _, c2 := range p2 {
			if sameColor(c1, c2) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func paletteSubset(p1, p2 color.Palette) bool {
	for _, c1 := range p1 {
		found := false
		for _, c2 := range p2 {
			if sameColor(c1, c2) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Draw implements draw.Drawer. It copies src onto dst within r (clipped
// exactly as the stdlib draw.Draw would), then runs the Ditherer's
// configured Algorithm over only the newly-copied region.
//
// If dst is an *image.Paletted, its palette must already equal the
// Ditherer's store (Draw panics otherwise): the copy is dithered via a
// scratch RGBA buffer and copied back in, since a paletted image can't
// receive arbitrary RGBA writes during dithering.
func (d *Ditherer) Draw(dst draw.Image, r image.Rectangle, src image.Image, sp image.Point) {
	dst2 := dst
	paletted := false
	if p, ok := dst.(*image.Paletted); ok {
		if !paletteEqual(p.Palette, d.Store.Palette()) {
			panic("palettize: Draw: dst is an *image.Paletted whose palette doesn't match the Ditherer's")
		}
		scratch := image.NewRGBA(dst.Bounds())
		draw.Draw(scratch, dst.Bounds(), dst, dst.Bounds().Min, draw.Src)
		dst2 = scratch
		paletted = true
	}

	dst3, ok := dst2.(subImager)
	if !ok {
		panic("palettize: Draw: dst does not implement SubImage")
	}

	clipRect(dst3, &r, src, &sp)
	if r.Empty() {
		return
	}

	draw.Draw(dst3, r, src, sp, draw.Src)
	d.Reduce(frame.NewGeneric(dst3.SubImage(r).(draw.Image)))

	if paletted {
		draw.Draw(dst, dst.Bounds(), dst2, dst.Bounds().Min, draw.Src)
	}
}

// clipRect clips r against dst's and src's bounds and shifts sp by the
// same amount r.Min moves, matching the stdlib draw.Draw clipping
// behavior so a Drawer composes the same way draw.Draw itself does.
func clipRect(dst draw.Image, r *image.Rectangle, src image.Image, sp *image.Point) {
	orig := r.Min
	*r = r.Intersect(dst.Bounds())
	*r = r.Intersect(src.Bounds().Add(orig.Sub(*sp)))
	dx := r.Min.X - orig.X
	dy := r.Min.Y - orig.Y
	if dx == 0 && dy == 0 {
		return
	}
	sp.X += dx
	sp.Y += dy
}

// Quantize implements draw.Quantizer. It ignores m and returns the
// Ditherer's own palette every time, which is how image/gif's frame
// encoder is meant to be steered toward a caller-chosen palette rather
// than its own median-cut quantizer.
//
// It panics if cap(p) is smaller than the Ditherer's color count, or if p
// already holds colors outside the Ditherer's palette - both signal a
// caller expecting a palette this Ditherer wasn't built to produce.
func (d *Ditherer) Quantize(p color.Palette, m image.Image) color.Palette {
	store := d.Store.Palette()
	if cap(p) < len(store) {
		panic("palettize: Quantize: Ditherer palette has too many colors for this call")
	}
	if len(p) > 0 && !paletteSubset(p, store) {
		panic("palettize: Quantize: provided palette has colors the Ditherer's doesn't")
	}
	return store
}
