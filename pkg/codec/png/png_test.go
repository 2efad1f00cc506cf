package png

import (
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pion/depthframe/pkg/codec"
	"github.com/pion/depthframe/pkg/codec/internal/codectest"
	"github.com/pion/depthframe/pkg/raster"
)

func TestCompressionLevel(t *testing.T) {
	for level, want := range map[int]png.CompressionLevel{
		0: png.NoCompression,
		1: png.BestSpeed,
		3: png.BestSpeed,
		6: png.DefaultCompression,
		9: png.BestCompression,
	} {
		assert.Equal(t, want, CompressionLevel(level), "level %d", level)
	}
}

func TestRegistered(t *testing.T) {
	enc, err := codec.Lookup(Name)
	require.NoError(t, err)
	assert.NotNil(t, enc)
}

func TestDepthRoundTrip(t *testing.T) {
	codectest.DepthRoundTripTest(t, codec.EncoderFunc(Encode), Name)
}

func TestColorRoundTrip(t *testing.T) {
	codectest.ColorRoundTripTest(t, codec.EncoderFunc(Encode), Name)
}

func TestMonoChannels(t *testing.T) {
	img, err := raster.NewRGB24([]uint8{0, 0, 0, 255, 255, 255}, 2, 1)
	require.NoError(t, err)

	b, err := codec.EncodeToBytes(codec.EncoderFunc(Encode), img.Gray(), codec.LevelFastest)
	require.NoError(t, err)

	decoded, _, err := codec.Decode(b)
	require.NoError(t, err)
	samples, channels := raster.ColorSamples(decoded)
	assert.Equal(t, 1, channels)
	assert.Equal(t, []uint8{0, 0, 0, 255, 255, 255}, samples)
}
