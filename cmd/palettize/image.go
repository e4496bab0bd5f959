package main

import (
	"image"
	"os"

	"github.com/disintegration/imaging"
)

// imageAdjust bundles the pre-dither adjustments applied to every loaded
// input image.
type imageAdjust struct {
	width, height        int
	grayscale            bool
	saturation, contrast float64
	brightness           float64
}

// loadImage decodes path (or stdin, for "-"), auto-orients it, and applies
// the requested resize and color adjustments before it ever reaches a
// Ditherer.
func loadImage(path string, adj imageAdjust) (image.Image, error) {
	var img image.Image
	var err error

	if path == "-" {
		img, err = imaging.Decode(os.Stdin, imaging.AutoOrientation(true))
	} else {
		img, err = imaging.Open(path, imaging.AutoOrientation(true))
	}
	if err != nil {
		return nil, err
	}

	if adj.width != 0 || adj.height != 0 {
		img = imaging.Resize(img, adj.width, adj.height, imaging.Box)
	}
	if adj.grayscale {
		img = imaging.Grayscale(img)
	}
	if adj.saturation != 0 {
		img = imaging.AdjustSaturation(img, adj.saturation)
	}
	if adj.contrast != 0 {
		img = imaging.AdjustContrast(img, adj.contrast)
	}
	if adj.brightness != 0 {
		img = imaging.AdjustBrightness(img, adj.brightness)
	}

	return img, nil
}
