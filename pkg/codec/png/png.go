// Package png registers the "png" codec. It stores 16-bit depth planes as
// 16-bit grayscale and color planes as 8-bit truecolor or grayscale.
package png

import (
	"image"
	"image/png"
	"io"

	"github.com/pion/depthframe/pkg/codec"
)

// Name is the registry name of this codec.
const Name = "png"

func init() {
	codec.Register(Name, codec.EncoderFunc(Encode))
}

// CompressionLevel maps a zlib style level to the closest png level.
func CompressionLevel(level int) png.CompressionLevel {
	switch {
	case level <= codec.LevelNone:
		return png.NoCompression
	case level <= 3:
		return png.BestSpeed
	case level <= codec.LevelDefault:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image, level int) error {
	enc := png.Encoder{CompressionLevel: CompressionLevel(level)}
	return enc.Encode(w, codec.Standard(img))
}
