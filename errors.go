package depthframe

import (
	"errors"

	"github.com/pion/depthframe/pkg/cloud"
)

var (
	// ErrNotOrganized is returned for point grids that are not a full
	// width x height raster, or are smaller than 2x2.
	ErrNotOrganized = cloud.ErrNotOrganized
	// ErrBufferSize is returned when raw depth or color buffers do not match
	// the declared frame size.
	ErrBufferSize = errors.New("depthframe: buffer size does not match frame size")
	// ErrDimensionMismatch is returned when a decompressed plane disagrees
	// with the frame header about its size.
	ErrDimensionMismatch = errors.New("depthframe: decoded image size does not match header")
	// ErrInvalidParams is returned by BuildCompressor for unusable Params.
	ErrInvalidParams = errors.New("depthframe: invalid params")
)
