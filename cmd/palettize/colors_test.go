package main

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToColor(t *testing.T) {
	c, err := hexToColor("#ff00aa")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x00, B: 0xaa, A: 0xff}, c)

	c, err = hexToColor("00ff00")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0, G: 0xff, B: 0, A: 0xff}, c)

	_, err = hexToColor("not-a-color")
	assert.Error(t, err)
}

func TestRgbToColor(t *testing.T) {
	c, err := rgbToColor("10,20,30")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 0xff}, c)

	_, err = rgbToColor("not a tuple")
	assert.Error(t, err)
}

func TestParseColorFallbackChain(t *testing.T) {
	c, err := parseColor("10,20,30")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 0xff}, c)

	c, err = parseColor("#112233")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff}, c)

	c, err = parseColor("128")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 128, G: 128, B: 128, A: 0xff}, c)

	c, err = parseColor("red")
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), c.R)

	_, err = parseColor("definitely-not-a-color")
	assert.Error(t, err)

	_, err = parseColor("300")
	assert.Error(t, err)
}

func TestParseColorListPacksRGBA(t *testing.T) {
	out, err := parseColorList([]string{"#000000 #ffffff", "10,20,30"})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, uint32(0x000000ff), out[0])
	assert.Equal(t, uint32(0xffffffff), out[1])
	assert.Equal(t, uint32(0x0a141eff), out[2])
}
