package depthframe

import (
	"fmt"

	"github.com/pion/depthframe/pkg/cloud"
)

// AnalyzeOrganizedCloud scans c for its largest finite depth and estimates the
// focal length from the point at that depth:
//
//	focalLength = 2 / (X/(x*Z) + Y/(y*Z))
//
// where (x, y) is the pixel position relative to the grid center
// (Width/2, Height/2). Only the deepest point contributes, earlier
// candidates are discarded. A cloud without finite points yields (0, 0).
//
// Points on the center row or column give an infinite or NaN estimate;
// callers must check the result before projecting with it.
func AnalyzeOrganizedCloud(c *cloud.Cloud) (maxDepth, focalLength float32, err error) {
	if c.Width <= 1 || c.Height <= 1 {
		return 0, 0, fmt.Errorf("%w: %dx%d grid is too small", ErrNotOrganized, c.Width, c.Height)
	}
	if err := c.Validate(); err != nil {
		return 0, 0, err
	}

	centerX, centerY := c.Width/2, c.Height/2

	i := 0
	for row := 0; row < c.Height; row++ {
		y := float32(row - centerY)
		for col := 0; col < c.Width; col++ {
			p := c.Points[i]
			i++
			if !p.IsFinite() || p.Z <= maxDepth {
				continue
			}

			maxDepth = p.Z
			x := float32(col - centerX)
			focalLength = 2 / (p.X/(x*p.Z) + p.Y/(y*p.Z))
		}
	}
	return maxDepth, focalLength, nil
}
