package main

import (
	"fmt"

	"github.com/pixelloom/palettize"
)

var algorithmNames = map[string]palettize.Algorithm{
	"none":           palettize.None,
	"gradient-noise": palettize.GradientNoise,
	"pattern":        palettize.Pattern,
	"chaotic-noise":  palettize.ChaoticNoise,
	"diffusion":      palettize.Diffusion,
	"blue-noise":     palettize.BlueNoise,
	"scatter":        palettize.Scatter,
}

func parseAlgorithm(name string) (palettize.Algorithm, error) {
	a, ok := algorithmNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown algorithm %q (want one of: none, gradient-noise, pattern, chaotic-noise, diffusion, blue-noise, scatter)", name)
	}
	return a, nil
}
