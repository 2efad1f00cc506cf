// Package cloud holds the organized point cloud container and its
// projection to and from a depth plane plus color image.
package cloud

import (
	"errors"
	"fmt"
	"math"
)

// Uncompressed sizes of one point, used for compression statistics.
const (
	BytesPerPointXYZ    = 3 * 4
	BytesPerPointXYZRGB = 3*4 + 3
)

// ErrNotOrganized is returned for clouds whose point count does not match
// their grid size.
var ErrNotOrganized = errors.New("cloud: not an organized point cloud")

// Point is one grid cell. Cells without a range return have NaN coordinates.
type Point struct {
	X, Y, Z float32
	R, G, B uint8
}

// IsFinite reports whether all coordinates of p are finite.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y) && isFinite(p.Z)
}

func isFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// NaN returns a point with no range return and no color.
func NaN() Point {
	nan := float32(math.NaN())
	return Point{X: nan, Y: nan, Z: nan}
}

// Cloud is a row-major width x height grid of points.
type Cloud struct {
	Width    int
	Height   int
	HasColor bool
	Points   []Point
}

// New allocates a width x height cloud of NaN points.
func New(width, height int, hasColor bool) *Cloud {
	c := &Cloud{
		Width:    width,
		Height:   height,
		HasColor: hasColor,
		Points:   make([]Point, width*height),
	}
	for i := range c.Points {
		c.Points[i] = NaN()
	}
	return c
}

// At returns the point in column x, row y.
func (c *Cloud) At(x, y int) Point {
	return c.Points[y*c.Width+x]
}

// Set stores p in column x, row y.
func (c *Cloud) Set(x, y int, p Point) {
	c.Points[y*c.Width+x] = p
}

// Validate checks that the cloud is organized.
func (c *Cloud) Validate() error {
	if c.Width < 0 || c.Height < 0 || len(c.Points) != c.Width*c.Height {
		return fmt.Errorf("%w: %dx%d grid with %d points", ErrNotOrganized, c.Width, c.Height, len(c.Points))
	}
	return nil
}

// BytesPerPoint is the uncompressed size of one point of c.
func (c *Cloud) BytesPerPoint() int {
	if c.HasColor {
		return BytesPerPointXYZRGB
	}
	return BytesPerPointXYZ
}

// FiniteCount returns the number of points with a range return.
func (c *Cloud) FiniteCount() int {
	n := 0
	for _, p := range c.Points {
		if p.IsFinite() {
			n++
		}
	}
	return n
}
