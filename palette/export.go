package palette

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pixelloom/palettize/rgb555"
)

// Palette returns the populated entries as a color.Palette, for interop
// with image/draw and image/gif, both of which key encoding decisions off
// this stdlib type rather than Store's own packed representation.
func (s *Store) Palette() color.Palette {
	out := make(color.Palette, s.Count)
	for i := 0; i < s.Count; i++ {
		r, g, b, a := rgb555.Channels(s.Colors[i])
		out[i] = color.RGBA{R: r, G: g, B: b, A: a}
	}
	return out
}

// HexStrings formats the populated palette entries as "#rrggbb" strings,
// for diagnostics and CLI output. It's purely a formatting convenience —
// the perceptual metric that governs the palette and its index stays on
// the Oklab tables in package oklab, not on go-colorful's own color math
// (see DESIGN.md for why).
func (s *Store) HexStrings() []string {
	out := make([]string, s.Count)
	for i := 0; i < s.Count; i++ {
		r, g, b, _ := rgb555.Channels(s.Colors[i])
		c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
		out[i] = c.Hex()
	}
	return out
}
