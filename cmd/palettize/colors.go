package main

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/mccutchen/palettor"
	colornames "golang.org/x/image/colornames"

	"github.com/pixelloom/palettize/rgb555"
)

// hexToColor parses a "#rrggbb" or "rrggbb" string.
func hexToColor(hex string) (color.NRGBA, error) {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b uint8
	n, err := fmt.Sscanf(strings.ToLower(hex), "%02x%02x%02x", &r, &g, &b)
	if err != nil {
		return color.NRGBA{}, err
	}
	if n != 3 {
		return color.NRGBA{}, fmt.Errorf("%s is not a hex color", hex)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// rgbToColor parses an "r,g,b" tuple.
func rgbToColor(s string) (color.NRGBA, error) {
	var r, g, b uint8
	n, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b)
	if err != nil {
		return color.NRGBA{}, err
	}
	if n != 3 {
		return color.NRGBA{}, fmt.Errorf("%s is not an RGB tuple", s)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// parseColor tries, in order: "r,g,b" tuple, hex code, bare grayscale
// number 0-255, SVG color name.
func parseColor(arg string) (color.NRGBA, error) {
	if strings.Count(arg, ",") == 2 {
		if c, err := rgbToColor(arg); err == nil {
			return c, nil
		}
	}
	if c, err := hexToColor(arg); err == nil {
		return c, nil
	}
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 0 || n > 255 {
			return color.NRGBA{}, fmt.Errorf("%s: grayscale numbers must be in 0-255", arg)
		}
		return color.NRGBA{R: uint8(n), G: uint8(n), B: uint8(n), A: 255}, nil
	}
	if named, ok := colornames.Map[strings.ToLower(arg)]; ok {
		return color.NRGBAModel.Convert(named).(color.NRGBA), nil
	}
	return color.NRGBA{}, fmt.Errorf("%s not recognized as an RGB tuple, hex code, grayscale number, or SVG color name", arg)
}

// parseColorList splits each arg on whitespace (commas stay inside a token,
// so "r,g,b" tuples survive) and parses each token as a color, packing the result into the uint32 RGBA form
// palette.Exact expects.
func parseColorList(args []string) ([]uint32, error) {
	out := make([]uint32, 0, len(args))
	for _, raw := range args {
		for _, tok := range strings.Fields(raw) {
			c, err := parseColor(tok)
			if err != nil {
				return nil, err
			}
			out = append(out, rgb555.Pack(c.R, c.G, c.B, c.A))
		}
	}
	return out, nil
}

// sampleColors extracts a representative palette from img using palettor,
// the same sample-from-the-input-image flow makew0rld-didder offers under
// its "sample" color-list keyword.
func sampleColors(img image.Image, n int) ([]uint32, error) {
	thumbnail := imaging.Resize(img, 200, 200, imaging.NearestNeighbor)
	pal, err := palettor.Extract(n, 500, thumbnail)
	if err != nil {
		return nil, fmt.Errorf("extracting image palette: %w", err)
	}
	out := make([]uint32, 0, n)
	for _, c := range pal.Colors() {
		nc := color.NRGBAModel.Convert(c).(color.NRGBA)
		out = append(out, rgb555.Pack(nc.R, nc.G, nc.B, 255))
	}
	return out, nil
}
