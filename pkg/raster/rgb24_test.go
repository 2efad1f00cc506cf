package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRGB24(t *testing.T) {
	pix := []uint8{
		10, 20, 30, 40, 50, 60,
		70, 80, 90, 100, 110, 120,
	}
	img, err := NewRGB24(pix, 2, 2)
	require.NoError(t, err)

	assert.True(t, img.Opaque())
	assert.Equal(t, color.RGBA{70, 80, 90, 0xff}, img.At(0, 1))
	assert.Equal(t, color.RGBA{}, img.At(2, 0))

	samples, channels := ColorSamples(img)
	assert.Equal(t, pix, samples)
	assert.Equal(t, 3, channels)

	samples, channels = ColorSamples(img.NRGBA())
	assert.Equal(t, pix, samples)
	assert.Equal(t, 3, channels)

	_, err = NewRGB24(pix[:5], 2, 2)
	assert.Error(t, err)
}

func TestColorSamplesGray(t *testing.T) {
	img, err := NewRGB24([]uint8{0, 0, 0, 255, 255, 255}, 2, 1)
	require.NoError(t, err)

	gray := img.Gray()
	assert.Equal(t, []uint8{0, 255}, gray.Pix)

	samples, channels := ColorSamples(gray)
	assert.Equal(t, 1, channels)
	assert.Equal(t, []uint8{0, 0, 0, 255, 255, 255}, samples)
}

func TestColorSamplesGeneric(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{1, 2, 3, 0xff})

	samples, channels := ColorSamples(img)
	assert.Equal(t, 3, channels)
	assert.Equal(t, []uint8{1, 2, 3}, samples)
}
