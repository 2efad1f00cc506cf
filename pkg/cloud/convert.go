package cloud

import (
	"fmt"
	"math"

	"github.com/pion/depthframe/pkg/raster"
)

// Projection carries the calibration shared by ToImages and FromImages.
// Depth samples are millimetres after applying Scale and Shift:
//
//	z = (sample*Scale + Shift) / 1000
//
// Pixel (col, row) projects through the grid center (Width/2, Height/2):
//
//	x = (col - Width/2) * z / FocalLength
//	y = (row - Height/2) * z / FocalLength
type Projection struct {
	FocalLength float32
	Shift       float32
	Scale       float32
}

func (p Projection) scale() float32 {
	if p.Scale == 0 {
		return 1
	}
	return p.Scale
}

// Quantize maps a depth in metres to a plane sample. Valid depths never map to
// an invalid sample: results are clamped to [1, 65535] and the 0x7FF sentinel
// is moved to the next millimetre.
func (p Projection) Quantize(z float32) uint16 {
	v := math.Round(float64((z*1000 - p.Shift) / p.scale()))
	switch {
	case math.IsNaN(v) || v < 1:
		v = 1
	case v > math.MaxUint16:
		v = math.MaxUint16
	}
	s := uint16(v)
	if s == raster.InvalidDepth {
		s++
	}
	return s
}

// Depth maps a plane sample back to metres.
func (p Projection) Depth(sample uint16) float32 {
	return (float32(sample)*p.scale() + p.Shift) / 1000
}

// ToImages splits c into a depth plane and, when c carries color and
// withColor is set, a packed RGB image. Non-finite points become depth 0 and
// black.
func ToImages(c *Cloud, proj Projection, withColor bool) ([]uint16, []uint8, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	depth := make([]uint16, len(c.Points))
	var rgb []uint8
	if withColor && c.HasColor {
		rgb = make([]uint8, 3*len(c.Points))
	}

	for i, pt := range c.Points {
		if !pt.IsFinite() {
			continue
		}
		depth[i] = proj.Quantize(pt.Z)
		if rgb != nil {
			rgb[3*i] = pt.R
			rgb[3*i+1] = pt.G
			rgb[3*i+2] = pt.B
		}
	}
	return depth, rgb, nil
}

// FromImages rebuilds an organized cloud from a depth plane and an optional
// packed RGB image. Invalid samples become NaN points without color.
func FromImages(depth []uint16, rgb []uint8, width, height int, proj Projection) (*Cloud, error) {
	if width < 0 || height < 0 || len(depth) != width*height {
		return nil, fmt.Errorf("%w: depth length %d for %dx%d", ErrNotOrganized, len(depth), width, height)
	}
	if len(rgb) != 0 && len(rgb) != 3*len(depth) {
		return nil, fmt.Errorf("%w: color length %d for %d points", ErrNotOrganized, len(rgb), len(depth))
	}
	if proj.FocalLength == 0 || !isFinite(proj.FocalLength) {
		return nil, fmt.Errorf("cloud: invalid focal length %v", proj.FocalLength)
	}

	c := &Cloud{
		Width:    width,
		Height:   height,
		HasColor: len(rgb) != 0,
		Points:   make([]Point, len(depth)),
	}
	centerX, centerY := width/2, height/2
	inv := 1 / proj.FocalLength

	i := 0
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			sample := depth[i]
			if raster.IsInvalidDepth(sample) {
				c.Points[i] = NaN()
				i++
				continue
			}

			z := proj.Depth(sample)
			pt := Point{
				X: float32(col-centerX) * z * inv,
				Y: float32(row-centerY) * z * inv,
				Z: z,
			}
			if c.HasColor {
				pt.R, pt.G, pt.B = rgb[3*i], rgb[3*i+1], rgb[3*i+2]
			}
			c.Points[i] = pt
			i++
		}
	}
	return c, nil
}
