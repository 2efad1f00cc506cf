package tiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/tiff"

	"github.com/pion/depthframe/pkg/codec"
	"github.com/pion/depthframe/pkg/codec/internal/codectest"
)

func TestOptions(t *testing.T) {
	assert.Equal(t, tiff.Uncompressed, Options(codec.LevelNone).Compression)
	assert.Equal(t, tiff.Deflate, Options(codec.LevelDefault).Compression)
	assert.True(t, Options(codec.LevelBest).Predictor)
}

func TestDepthRoundTrip(t *testing.T) {
	codectest.DepthRoundTripTest(t, codec.EncoderFunc(Encode), Name)
}

func TestColorRoundTrip(t *testing.T) {
	codectest.ColorRoundTripTest(t, codec.EncoderFunc(Encode), Name)
}
