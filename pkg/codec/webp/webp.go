// Package webp registers the "webp" codec: lossless WebP through
// github.com/HugoSmits86/nativewebp. WebP has no 16-bit samples, so this
// codec only serves color planes. Decoding uses golang.org/x/image/webp.
package webp

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // registers the webp decoder with package image

	"github.com/pion/depthframe/pkg/codec"
)

// Name is the registry name of this codec.
const Name = "webp"

func init() {
	codec.Register(Name, codec.EncoderFunc(Encode))
}

// Encode writes img as lossless WebP. The level is ignored.
func Encode(w io.Writer, img image.Image, level int) error {
	if img.ColorModel() == color.Gray16Model {
		return fmt.Errorf("%w: webp stores 8-bit samples only", codec.ErrUnsupportedImage)
	}

	src := codec.Standard(img)
	nrgba, ok := src.(*image.NRGBA)
	if !ok {
		b := src.Bounds()
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
	}
	return nativewebp.Encode(w, nrgba, nil)
}
