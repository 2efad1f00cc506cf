package raster

import (
	"fmt"
	"image"
	"image/color"
)

// RGB24Img is a packed 8-bit RGB image without alpha.
type RGB24Img struct {
	// Pix holds the image's pixels, in R, G, B order. The pixel at
	// (x, y) starts at Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*3].
	Pix    []uint8
	Rect   image.Rectangle
	Stride int
}

// NewRGB24 wraps pix, which must hold 3*width*height bytes. pix is not copied.
func NewRGB24(pix []uint8, width, height int) (*RGB24Img, error) {
	if width < 0 || height < 0 || len(pix) != 3*width*height {
		return nil, fmt.Errorf("color length (%d) not expected size (%d)", len(pix), 3*width*height)
	}
	return &RGB24Img{
		Pix:    pix,
		Rect:   image.Rect(0, 0, width, height),
		Stride: width * 3,
	}, nil
}

func (p *RGB24Img) ColorModel() color.Model {
	return color.RGBAModel
}

func (p *RGB24Img) Bounds() image.Rectangle {
	return p.Rect
}

// Opaque lets encoders pick a format without an alpha channel.
func (p *RGB24Img) Opaque() bool {
	return true
}

func (p *RGB24Img) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

func (p *RGB24Img) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3] // Small capacity improves performance, see https://golang.org/issue/27857
	return color.RGBA{s[0], s[1], s[2], 0xff}
}

// NRGBA copies p into an *image.NRGBA, which every registered encoder accepts.
func (p *RGB24Img) NRGBA() *image.NRGBA {
	dx, dy := p.Rect.Dx(), p.Rect.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, dx, dy))
	for y := 0; y < dy; y++ {
		src := p.Pix[y*p.Stride:]
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < dx; x++ {
			row[4*x] = src[3*x]
			row[4*x+1] = src[3*x+1]
			row[4*x+2] = src[3*x+2]
			row[4*x+3] = 0xff
		}
	}
	return dst
}

// Gray converts p to 8-bit luma.
func (p *RGB24Img) Gray() *image.Gray {
	dx, dy := p.Rect.Dx(), p.Rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, dx, dy))
	for y := 0; y < dy; y++ {
		src := p.Pix[y*p.Stride:]
		for x := 0; x < dx; x++ {
			c := color.GrayModel.Convert(color.RGBA{src[3*x], src[3*x+1], src[3*x+2], 0xff}).(color.Gray)
			dst.Pix[y*dst.Stride+x] = c.Y
		}
	}
	return dst
}

// ColorSamples flattens img into packed RGB triplets and reports how many
// channels the source carried: 1 for gray images, which are replicated into
// all three components, 3 otherwise.
func ColorSamples(img image.Image) ([]uint8, int) {
	b := img.Bounds()
	out := make([]uint8, 0, 3*b.Dx()*b.Dy())

	switch m := img.(type) {
	case *RGB24Img:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := m.PixOffset(b.Min.X, y)
			out = append(out, m.Pix[i:i+3*b.Dx()]...)
		}
		return out, 3
	case *image.Gray:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := m.Pix[m.PixOffset(b.Min.X, y):]
			for x := 0; x < b.Dx(); x++ {
				out = append(out, row[x], row[x], row[x])
			}
		}
		return out, 1
	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := m.Pix[m.PixOffset(b.Min.X, y):]
			for x := 0; x < b.Dx(); x++ {
				out = append(out, row[4*x], row[4*x+1], row[4*x+2])
			}
		}
		return out, 3
	}

	channels := 3
	if img.ColorModel() == color.GrayModel || img.ColorModel() == color.Gray16Model {
		channels = 1
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out = append(out, c.R, c.G, c.B)
		}
	}
	return out, channels
}
