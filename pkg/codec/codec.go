// Package codec is the registry of image codecs used to compress the depth
// and color planes of a frame.
//
// Codecs register themselves by name from their package init, so they are
// enabled with a blank import:
//
//	import _ "github.com/pion/depthframe/pkg/codec/tiff"
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
)

// Compression levels follow zlib: 0 stores, 1 is fastest, 9 is smallest.
const (
	LevelNone    = 0
	LevelFastest = 1
	LevelDefault = 6
	LevelBest    = 9
)

// ErrUnsupportedImage is returned by an Encoder that cannot store the given
// image type, e.g. 16-bit samples in a format limited to 8 bits.
var ErrUnsupportedImage = errors.New("codec: unsupported image type")

// Encoder compresses a single image plane.
type Encoder interface {
	Encode(w io.Writer, img image.Image, level int) error
}

// EncoderFunc is a proxy type for Encoder
type EncoderFunc func(w io.Writer, img image.Image, level int) error

func (f EncoderFunc) Encode(w io.Writer, img image.Image, level int) error {
	return f(w, img, level)
}

// ValidLevel reports whether level is in [LevelNone, LevelBest].
func ValidLevel(level int) bool {
	return level >= LevelNone && level <= LevelBest
}

// EncodeToBytes runs enc and returns the compressed bytes.
func EncodeToBytes(enc Encoder, img image.Image, level int) ([]byte, error) {
	var buf bytes.Buffer
	if err := enc.Encode(&buf, img, level); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode decompresses data with whichever registered image format matches
// its magic bytes and returns the format name.
func Decode(data []byte) (image.Image, string, error) {
	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, name, fmt.Errorf("codec: decode: %w", err)
	}
	return img, name, nil
}

// DecodeConfig reads only the image header of data and returns its size and
// color model along with the format name. Nothing proportional to the image
// size is allocated.
func DecodeConfig(data []byte) (image.Config, string, error) {
	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, name, fmt.Errorf("codec: decode config: %w", err)
	}
	return cfg, name, nil
}

type nrgbaConverter interface {
	NRGBA() *image.NRGBA
}

// Standard returns img as one of the image types from the standard image
// package. Packed formats such as raster.RGB24Img are converted to NRGBA.
func Standard(img image.Image) image.Image {
	if c, ok := img.(nrgbaConverter); ok {
		return c.NRGBA()
	}
	return img
}
