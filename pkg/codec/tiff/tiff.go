// Package tiff registers the "tiff" codec, backed by golang.org/x/image/tiff.
// Levels above zero select Deflate with horizontal differencing, which suits
// smooth depth planes.
package tiff

import (
	"image"
	"io"

	"golang.org/x/image/tiff"

	"github.com/pion/depthframe/pkg/codec"
)

// Name is the registry name of this codec.
const Name = "tiff"

func init() {
	codec.Register(Name, codec.EncoderFunc(Encode))
}

// Options returns the tiff options used for level.
func Options(level int) *tiff.Options {
	if level <= codec.LevelNone {
		return &tiff.Options{Compression: tiff.Uncompressed}
	}
	return &tiff.Options{Compression: tiff.Deflate, Predictor: true}
}

// Encode writes img as TIFF.
func Encode(w io.Writer, img image.Image, level int) error {
	return tiff.Encode(w, codec.Standard(img), Options(level))
}
