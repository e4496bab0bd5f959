package main

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"github.com/willibrandon/mtlog/core"

	"github.com/pixelloom/palettize"
	"github.com/pixelloom/palettize/frame"
	"github.com/pixelloom/palettize/palette"
)

// runOptions gathers the global flags every subcommand shares, after the
// store itself has been built by the command-specific logic.
type runOptions struct {
	out            string
	algorithm      palettize.Algorithm
	ditherStrength float64
	adjust         imageAdjust
	fps            float64
	loop           int
	saveMappingDir string
}

func readRunOptions(c *cli.Context) (runOptions, error) {
	algo, err := parseAlgorithm(c.String("algorithm"))
	if err != nil {
		return runOptions{}, err
	}
	return runOptions{
		out:            c.String("out"),
		algorithm:      algo,
		ditherStrength: c.Float64("dither-strength"),
		adjust: imageAdjust{
			width:      c.Int("width"),
			height:     c.Int("height"),
			grayscale:  c.Bool("grayscale"),
			saturation: c.Float64("saturation"),
			contrast:   c.Float64("contrast"),
			brightness: c.Float64("brightness"),
		},
		fps:            c.Float64("fps"),
		loop:           c.Int("loop"),
		saveMappingDir: c.String("save-mapping"),
	}, nil
}

// runPipeline dithers every input against store and writes it to opts.out,
// choosing a static PNG, static GIF, or animated GIF encoder based on the
// output extension and input count.
func runPipeline(logger core.Logger, store *palette.Store, inputs []string, opts runOptions) error {
	if len(inputs) == 0 {
		return errors.New("no input images given")
	}

	store.SetDitherStrength(opts.ditherStrength)
	d := palettize.New(store, opts.algorithm)

	if opts.saveMappingDir != "" {
		path, err := store.SaveMapping(opts.saveMappingDir)
		if err != nil {
			return fmt.Errorf("saving mapping: %w", err)
		}
		logger.Information("Saved palette mapping to {Path}", path)
	}

	outFormat := strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.out)), ".")
	if outFormat == "" {
		outFormat = "png"
	}

	isAnimGIF := len(inputs) > 1 && outFormat == "gif"
	if len(inputs) > 1 && !isAnimGIF {
		return fmt.Errorf("multiple input images only make sense with a .gif output, got %q", opts.out)
	}

	if isAnimGIF {
		return writeAnimatedGIF(logger, d, store, inputs, opts)
	}

	img, err := loadImage(inputs[0], opts.adjust)
	if err != nil {
		return fmt.Errorf("loading %s: %w", inputs[0], err)
	}

	file, err := os.Create(opts.out)
	if err != nil {
		return err
	}
	defer file.Close()

	switch outFormat {
	case "png":
		rgba := image.NewRGBA(img.Bounds())
		d.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min)
		if err := (&png.Encoder{}).Encode(file, rgba); err != nil {
			return fmt.Errorf("writing PNG: %w", err)
		}
	case "gif":
		if err := gif.Encode(file, img, &gif.Options{NumColors: store.Count, Quantizer: d, Drawer: d}); err != nil {
			return fmt.Errorf("writing GIF: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format %q", outFormat)
	}

	logger.Information("Wrote {Path}", opts.out)
	return nil
}

func writeAnimatedGIF(logger core.Logger, d *palettize.Ditherer, store *palette.Store, inputs []string, opts runOptions) error {
	if opts.fps <= 0 {
		return errors.New("animated GIF output needs --fps")
	}

	pal := store.Palette()
	frames := make([]*image.Paletted, len(inputs))
	delay := int(math.Max(math.Round(100.0/opts.fps), 1))
	delays := make([]int, len(inputs))

	loopCount := opts.loop
	if loopCount == 1 {
		loopCount = -1
	} else if loopCount != 0 {
		loopCount--
	}

	for i, path := range inputs {
		img, err := loadImage(path, opts.adjust)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		if i > 0 && !img.Bounds().Size().Eq(frames[0].Bounds().Size()) {
			return fmt.Errorf("%s isn't the same size as %s, all frames must match", path, inputs[0])
		}
		paletted := image.NewPaletted(img.Bounds(), pal)
		d.Draw(paletted, img.Bounds(), img, image.Point{})
		frames[i] = paletted
		delays[i] = delay
	}

	g := &gif.GIF{Image: frames, Delay: delays, LoopCount: loopCount}

	file, err := os.Create(opts.out)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := gif.EncodeAll(file, g); err != nil {
		return fmt.Errorf("writing animated GIF: %w", err)
	}
	logger.Information("Wrote {Path} ({Frames} frames)", opts.out, len(frames))
	return nil
}

// loadFramesFor analyze loads every input once, up front, so Analyze can
// count colors across all of them before any dithering happens.
func loadFramesFor(inputs []string, adj imageAdjust) ([]frame.Frame, error) {
	out := make([]frame.Frame, len(inputs))
	for i, path := range inputs {
		img, err := loadImage(path, adj)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		rgba := image.NewRGBA(img.Bounds())
		out[i] = frame.NewGeneric(copyToRGBA(rgba, img))
	}
	return out, nil
}

func copyToRGBA(dst *image.RGBA, src image.Image) *image.RGBA {
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x, y, src.At(x, y))
		}
	}
	return dst
}
