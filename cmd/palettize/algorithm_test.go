package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelloom/palettize"
)

func TestParseAlgorithmKnownNames(t *testing.T) {
	a, err := parseAlgorithm("pattern")
	require.NoError(t, err)
	assert.Equal(t, palettize.Pattern, a)

	a, err = parseAlgorithm("scatter")
	require.NoError(t, err)
	assert.Equal(t, palettize.Scatter, a)
}

func TestParseAlgorithmUnknownNameErrors(t *testing.T) {
	_, err := parseAlgorithm("not-a-real-one")
	assert.Error(t, err)
}
