// Package raster converts between flat sample buffers and image.Image values
// understood by the image codecs.
package raster

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
)

// InvalidDepth is the reserved "no return" sample, besides 0.
const InvalidDepth = 0x7FF

// IsInvalidDepth reports whether v carries no valid range measurement.
func IsInvalidDepth(v uint16) bool {
	return v == 0 || v == InvalidDepth
}

// NewDepth wraps a row-major depth plane into an *image.Gray16.
func NewDepth(samples []uint16, width, height int) (*image.Gray16, error) {
	if width < 0 || height < 0 || len(samples) != width*height {
		return nil, fmt.Errorf("depth length (%d) not expected size (%dx%d)", len(samples), width, height)
	}
	img := image.NewGray16(image.Rect(0, 0, width, height))
	for i, z := range samples {
		img.Pix[2*i] = uint8(z >> 8)
		img.Pix[2*i+1] = uint8(z)
	}
	return img, nil
}

// DepthSamples flattens img into a row-major plane of 16-bit samples. Gray16
// images are read directly, anything else goes through color.Gray16Model.
func DepthSamples(img image.Image) []uint16 {
	b := img.Bounds()
	out := make([]uint16, 0, b.Dx()*b.Dy())

	if g, ok := img.(*image.Gray16); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := g.Pix[g.PixOffset(b.Min.X, y):]
			for x := 0; x < b.Dx(); x++ {
				out = append(out, uint16(row[2*x])<<8|uint16(row[2*x+1]))
			}
		}
		return out
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, color.Gray16Model.Convert(img.At(x, y)).(color.Gray16).Y)
		}
	}
	return out
}

// DecodeZ16 reads a V4L2 Z16 buffer (little-endian 16-bit depth, row after
// row) as produced by RealSense style sensors.
//
//	Width: 3, Height: 2
//	[Z_low(x_0,y_0), Z_high(x_0,y_0), Z_low(x_1,y_0), Z_high(x_1,y_0), Z_low(x_2,y_0), Z_high(x_2,y_0),
//	 Z_low(x_0,y_1), Z_high(x_0,y_1), Z_low(x_1,y_1), Z_high(x_1,y_1), Z_low(x_2,y_1), Z_high(x_2,y_1)]
func DecodeZ16(frame []byte, width, height int) ([]uint16, error) {
	expectedSize := 2 * (width * height)
	if expectedSize != len(frame) {
		return nil, fmt.Errorf("frame length (%d) not expected size (%d)", len(frame), expectedSize)
	}
	out := make([]uint16, width*height)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(frame[2*i:])
	}
	return out, nil
}
