package depthframe

import "github.com/pion/depthframe/pkg/raster"

// SanitizeColor zeroes the RGB triplet of every pixel whose depth sample is
// invalid (0 or 0x7FF), so the color codec does not spend bytes on pixels
// without a range return. An empty color buffer is left alone.
func SanitizeColor(depth []uint16, color []uint8) {
	if len(color) == 0 {
		return
	}
	for i, d := range depth {
		if !raster.IsInvalidDepth(d) {
			continue
		}
		if 3*i+2 >= len(color) {
			return
		}
		color[3*i], color[3*i+1], color[3*i+2] = 0, 0, 0
	}
}
