// Command palettize reduces one or more RGBA images onto a bounded
// palette, built either from an explicit color list, by analyzing the
// input images themselves, or by reloading a previously saved
// nearest-color mapping, then dithers the result with one of the seven
// kernels selectable through palettize.Algorithm.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/willibrandon/mtlog/core"

	"github.com/pixelloom/palettize/internal/config"
	"github.com/pixelloom/palettize/palette"
)

func globalFlags(cfg *config.Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true, Usage: "output image path (.png or .gif)"},
		&cli.StringFlag{Name: "algorithm", Aliases: []string{"a"}, Value: cfg.Algorithm, Usage: "none, gradient-noise, pattern, chaotic-noise, diffusion, blue-noise, scatter"},
		&cli.Float64Flag{Name: "dither-strength", Value: cfg.DitherStrength, Usage: "raw strength passed to SetDitherStrength"},
		&cli.IntFlag{Name: "width", Usage: "resize width before dithering, 0 keeps the source size"},
		&cli.IntFlag{Name: "height", Usage: "resize height before dithering, 0 keeps the source size"},
		&cli.BoolFlag{Name: "grayscale"},
		&cli.Float64Flag{Name: "saturation"},
		&cli.Float64Flag{Name: "contrast"},
		&cli.Float64Flag{Name: "brightness"},
		&cli.Float64Flag{Name: "fps", Usage: "frame rate for multi-input animated GIF output"},
		&cli.IntFlag{Name: "loop", Usage: "GIF loop count, 0 means loop forever"},
		&cli.StringFlag{Name: "save-mapping", Usage: "directory to save the derived palette mapping into, for later use with preload"},
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "palettize:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)

	app := &cli.App{
		Name:  "palettize",
		Usage: "reduce images onto a bounded RGBA palette with perceptual dithering",
		Commands: []*cli.Command{
			{
				Name:  "exact",
				Usage: "dither against an explicit color list (or a sampled one)",
				Flags: append(globalFlags(cfg),
					&cli.StringSliceFlag{
						Name:  "colors",
						Usage: `palette colors: hex ("#ff00ff"), "r,g,b" tuples, grayscale numbers, SVG names, or the single word "sample"`,
					},
					&cli.IntFlag{Name: "limit", Value: cfg.Limit, Usage: "max palette entries"},
				),
				Action: func(c *cli.Context) error { return runExact(logger, c) },
			},
			{
				Name:  "analyze",
				Usage: "derive a palette from the input images' own color frequencies",
				Flags: append(globalFlags(cfg),
					&cli.IntFlag{Name: "threshold", Value: cfg.Threshold, Usage: "perceptual distance threshold for accepting a new color"},
					&cli.IntFlag{Name: "limit", Value: cfg.Limit, Usage: "max palette entries"},
				),
				Action: func(c *cli.Context) error { return runAnalyze(logger, c) },
			},
			{
				Name:  "preload",
				Usage: "reuse a palette and nearest-color mapping saved by a previous run",
				Flags: append(globalFlags(cfg), &cli.StringFlag{
					Name: "mapping", Required: true, Usage: "path to a .palettemap file written by --save-mapping",
				}),
				Action: func(c *cli.Context) error { return runPreload(logger, c) },
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error("{Error}", err)
		os.Exit(1)
	}
}

func runExact(logger core.Logger, c *cli.Context) error {
	opts, err := readRunOptions(c)
	if err != nil {
		return err
	}

	colorArgs := c.StringSlice("colors")
	var colors []uint32
	if len(colorArgs) == 1 && colorArgs[0] == "sample" {
		if c.Args().Len() == 0 {
			return fmt.Errorf("--colors sample needs at least one input image")
		}
		img, err := loadImage(c.Args().First(), opts.adjust)
		if err != nil {
			return fmt.Errorf("loading image for palette sampling: %w", err)
		}
		colors, err = sampleColors(img, 5)
		if err != nil {
			return err
		}
	} else {
		colors, err = parseColorList(colorArgs)
		if err != nil {
			return err
		}
	}

	logger.Information("Building exact palette from {Count} colors", len(colors))
	store := palette.Exact(colors, c.Int("limit"))
	return runPipeline(logger, store, c.Args().Slice(), opts)
}

func runAnalyze(logger core.Logger, c *cli.Context) error {
	opts, err := readRunOptions(c)
	if err != nil {
		return err
	}
	inputs := c.Args().Slice()
	if len(inputs) == 0 {
		return fmt.Errorf("analyze needs at least one input image")
	}

	frames, err := loadFramesFor(inputs, opts.adjust)
	if err != nil {
		return err
	}

	logger.Information("Analyzing {Count} frame(s) for palette colors", len(frames))
	store := palette.Analyze(frames, c.Int("threshold"), c.Int("limit"))
	logger.Information("Derived a {Count}-color palette", store.Count)
	return runPipeline(logger, store, inputs, opts)
}

func runPreload(logger core.Logger, c *cli.Context) error {
	opts, err := readRunOptions(c)
	if err != nil {
		return err
	}

	store, err := palette.LoadMapping(c.String("mapping"))
	if err != nil {
		return err
	}
	logger.Information("Loaded a {Count}-color palette from {Path}", store.Count, c.String("mapping"))
	return runPipeline(logger, store, c.Args().Slice(), opts)
}
