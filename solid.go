package palettize

import (
	"github.com/pixelloom/palettize/frame"
	"github.com/pixelloom/palettize/rgb555"
)

// ReduceSolid maps every pixel of f to its nearest palette entry with no
// perturbation at all: a direct Mapping lookup on the snapped RGB555 key.
func (d *Ditherer) ReduceSolid(f frame.Frame) {
	defer frame.WithReplaceMode(f)()

	w, h := f.Width(), f.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, shortcut := d.transparent(f, x, y)
			if shortcut {
				f.Set(x, y, 0)
				continue
			}
			idx := d.Store.Mapping[rgb555.KeyRGBA(c)]
			f.Set(x, y, d.Store.Colors[idx])
		}
	}
}
