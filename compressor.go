// Package depthframe compresses organized point clouds, or raw depth maps
// with a color image, into a single self-describing binary frame and
// restores them.
//
// A frame is a marker followed by a little-endian header (grid size, max
// depth, focal length, disparity scale and shift) and two length-prefixed
// image payloads. See package frame for the exact layout.
package depthframe

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/pion/logging"

	"github.com/pion/depthframe/pkg/cloud"
	"github.com/pion/depthframe/pkg/codec"
	"github.com/pion/depthframe/pkg/frame"
	mio "github.com/pion/depthframe/pkg/io"
	"github.com/pion/depthframe/pkg/raster"
)

// Uncompressed sizes of one raw-frame pixel, used for statistics.
const (
	rawBytesPerPixel      = 2
	rawBytesPerColorPixel = 2 + 3
)

// RawFrame is a depth plane with an optional packed RGB image and the
// calibration needed to turn it into points.
type RawFrame struct {
	Width  uint32
	Height uint32
	// MaxDepth is informational. Encoded raw frames always carry -1.
	MaxDepth       float32
	FocalLength    float32
	DisparityShift float32
	DisparityScale float32

	Depth []uint16
	// Color holds 3*Width*Height bytes, or nothing.
	Color []uint8
	// Channels is the channel count of the decoded color image: 1 when the
	// color codec stored luma, 3 otherwise, zero without color. It depends on
	// the codec: webp has no gray format, so mono color decoded from webp
	// reports 3 with equal components.
	Channels int
}

// NewRawFrameZ16 builds a RawFrame from a little-endian Z16 sensor buffer.
func NewRawFrameZ16(z16 []byte, color []uint8, width, height int) (*RawFrame, error) {
	depth, err := raster.DecodeZ16(z16, width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBufferSize, err)
	}
	return &RawFrame{
		Width:          uint32(width),
		Height:         uint32(height),
		DisparityScale: 1,
		Depth:          depth,
		Color:          color,
	}, nil
}

// Compressor encodes and decodes frames. It is immutable and safe for
// concurrent use, provided calls do not share a stream.
type Compressor struct {
	params   Params
	depthEnc codec.Encoder
	colorEnc codec.Encoder
	log      logging.LeveledLogger
	observer Observer
}

// Params returns a copy of the parameters c was built with.
func (c *Compressor) Params() Params {
	return c.params
}

// EncodeCloud writes pc to w as one frame. The depth plane stores
// millimetres with disparity scale 1 and shift 0. The frame is written with
// a single Write, so nothing reaches w when encoding fails.
func (c *Compressor) EncodeCloud(w io.Writer, pc *cloud.Cloud) (Statistics, error) {
	maxDepth, focalLength, err := AnalyzeOrganizedCloud(pc)
	if err != nil {
		return Statistics{}, err
	}
	if !usableFocalLength(focalLength) {
		c.log.Warnf("focal length estimate %v unusable, falling back to %v", focalLength, c.params.FallbackFocalLength)
		focalLength = c.params.FallbackFocalLength
	}

	proj := cloud.Projection{FocalLength: focalLength, Scale: 1, Shift: 0}
	depth, rgb, err := cloud.ToImages(pc, proj, c.params.ColorEncoding)
	if err != nil {
		return Statistics{}, err
	}

	f := &frame.Frame{Header: frame.Header{
		Width:          uint32(pc.Width),
		Height:         uint32(pc.Height),
		MaxDepth:       maxDepth,
		FocalLength:    focalLength,
		DisparityScale: proj.Scale,
		DisparityShift: proj.Shift,
	}}
	if err := c.compress(f, depth, rgb); err != nil {
		return Statistics{}, err
	}
	if err := c.write(w, f); err != nil {
		return Statistics{}, err
	}

	stats := Statistics{
		Op:                   OpEncode,
		PointCount:           len(pc.Points),
		BytesPerPoint:        pc.BytesPerPoint(),
		CompressedDepthBytes: len(f.Depth),
		CompressedColorBytes: len(f.Color),
	}
	c.observer.Observe(stats)
	return stats, nil
}

// EncodeRaw writes rf to w as one frame. The color of pixels with invalid
// depth is zeroed before compression; rf itself is not modified.
func (c *Compressor) EncodeRaw(w io.Writer, rf *RawFrame) (Statistics, error) {
	points := uint64(rf.Width) * uint64(rf.Height)
	if uint64(len(rf.Depth)) != points {
		return Statistics{}, fmt.Errorf("%w: depth has %d samples for %dx%d", ErrBufferSize, len(rf.Depth), rf.Width, rf.Height)
	}
	if len(rf.Color) != 0 && uint64(len(rf.Color)) != 3*points {
		return Statistics{}, fmt.Errorf("%w: color has %d bytes for %dx%d", ErrBufferSize, len(rf.Color), rf.Width, rf.Height)
	}

	var rgb []uint8
	if c.params.ColorEncoding && len(rf.Color) != 0 {
		rgb = make([]uint8, len(rf.Color))
		copy(rgb, rf.Color)
		SanitizeColor(rf.Depth, rgb)
	}

	f := &frame.Frame{Header: frame.Header{
		Width:          rf.Width,
		Height:         rf.Height,
		MaxDepth:       -1,
		FocalLength:    rf.FocalLength,
		DisparityScale: rf.DisparityScale,
		DisparityShift: rf.DisparityShift,
	}}
	if err := c.compress(f, rf.Depth, rgb); err != nil {
		return Statistics{}, err
	}
	if err := c.write(w, f); err != nil {
		return Statistics{}, err
	}

	stats := Statistics{
		Op:                   OpEncode,
		PointCount:           len(rf.Depth),
		BytesPerPoint:        rawBytesPerPixel,
		CompressedDepthBytes: len(f.Depth),
		CompressedColorBytes: len(f.Color),
	}
	if len(rf.Color) != 0 {
		stats.BytesPerPoint = rawBytesPerColorPixel
	}
	c.observer.Observe(stats)
	return stats, nil
}

// Decode reads the next frame from r and rebuilds its point cloud. Bytes
// before the frame marker are skipped. It returns frame.ErrNoMarker if r ends
// before a marker, and an error wrapping frame.ErrTruncated if r ends inside
// the frame. No cloud is returned on error.
func (c *Compressor) Decode(r io.Reader) (*cloud.Cloud, Statistics, error) {
	rf, err := c.decode(r)
	if err != nil {
		return nil, Statistics{}, err
	}

	pc, err := cloud.FromImages(rf.Depth, rf.Color, int(rf.Width), int(rf.Height), cloud.Projection{
		FocalLength: rf.FocalLength,
		Shift:       rf.DisparityShift,
		Scale:       rf.DisparityScale,
	})
	if err != nil {
		return nil, Statistics{}, fmt.Errorf("depthframe: reconstruct cloud: %w", err)
	}

	stats := c.decodeStats(rf, pc.BytesPerPoint())
	c.observer.Observe(stats)
	return pc, stats, nil
}

// DecodeRaw reads the next frame from r and returns its planes without
// reprojecting them. Errors are as for Decode.
func (c *Compressor) DecodeRaw(r io.Reader) (*RawFrame, Statistics, error) {
	rf, err := c.decode(r)
	if err != nil {
		return nil, Statistics{}, err
	}

	bpp := rawBytesPerPixel
	if len(rf.Color) != 0 {
		bpp = rawBytesPerColorPixel
	}
	stats := c.decodeStats(rf, bpp)
	c.observer.Observe(stats)
	return &rf.RawFrame, stats, nil
}

type decodedFrame struct {
	RawFrame
	depthBytes, colorBytes int
}

func (c *Compressor) decodeStats(rf *decodedFrame, bytesPerPoint int) Statistics {
	return Statistics{
		Op:                   OpDecode,
		PointCount:           len(rf.Depth),
		BytesPerPoint:        bytesPerPoint,
		CompressedDepthBytes: rf.depthBytes,
		CompressedColorBytes: rf.colorBytes,
	}
}

func (c *Compressor) decode(r io.Reader) (*decodedFrame, error) {
	skipped, err := frame.Sync(mio.NewByteReader(r))
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		c.log.Debugf("skipped %d bytes before frame marker", skipped)
	}

	f, err := frame.ReadBody(r, c.params.Limits)
	if err != nil {
		return nil, err
	}

	rf := &decodedFrame{
		RawFrame: RawFrame{
			Width:          f.Width,
			Height:         f.Height,
			MaxDepth:       f.MaxDepth,
			FocalLength:    f.FocalLength,
			DisparityShift: f.DisparityShift,
			DisparityScale: f.DisparityScale,
		},
		depthBytes: len(f.Depth),
		colorBytes: len(f.Color),
	}

	img, err := c.decompress(f, f.Depth, "depth")
	if err != nil {
		return nil, err
	}
	rf.Depth = raster.DepthSamples(img)

	if len(f.Color) != 0 {
		img, err := c.decompress(f, f.Color, "color")
		if err != nil {
			return nil, err
		}
		rf.Color, rf.Channels = raster.ColorSamples(img)
	}
	return rf, nil
}

// decompress checks the payload's own image header against the frame header
// before decoding pixels, so the allocation is bounded by frame.Limits.
func (c *Compressor) decompress(f *frame.Frame, payload []byte, plane string) (image.Image, error) {
	cfg, format, err := codec.DecodeConfig(payload)
	if err != nil {
		return nil, fmt.Errorf("depthframe: decompress %s: %w", plane, err)
	}
	if err := checkSize(f, plane, format, cfg.Width, cfg.Height); err != nil {
		return nil, err
	}

	img, format, err := codec.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("depthframe: decompress %s: %w", plane, err)
	}
	b := img.Bounds()
	if err := checkSize(f, plane, format, b.Dx(), b.Dy()); err != nil {
		return nil, err
	}
	return img, nil
}

func checkSize(f *frame.Frame, plane, format string, width, height int) error {
	if width < 0 || height < 0 || uint64(width) != uint64(f.Width) || uint64(height) != uint64(f.Height) {
		return fmt.Errorf("%w: %s %s image is %dx%d, header says %dx%d",
			ErrDimensionMismatch, plane, format, width, height, f.Width, f.Height)
	}
	return nil
}

func (c *Compressor) compress(f *frame.Frame, depth []uint16, rgb []uint8) error {
	width, height := int(f.Width), int(f.Height)

	depthImg, err := raster.NewDepth(depth, width, height)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBufferSize, err)
	}
	if f.Depth, err = codec.EncodeToBytes(c.depthEnc, depthImg, c.params.DepthLevel); err != nil {
		return fmt.Errorf("depthframe: compress depth: %w", err)
	}

	if len(rgb) == 0 {
		return nil
	}
	colorImg, err := raster.NewRGB24(rgb, width, height)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBufferSize, err)
	}
	var src image.Image = colorImg
	if c.params.MonoColor {
		src = colorImg.Gray()
	}
	if f.Color, err = codec.EncodeToBytes(c.colorEnc, src, c.params.ColorLevel); err != nil {
		return fmt.Errorf("depthframe: compress color: %w", err)
	}
	return nil
}

type flusher interface {
	Flush() error
}

func (c *Compressor) write(w io.Writer, f *frame.Frame) error {
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("depthframe: write frame: %w", err)
	}
	if fl, ok := w.(flusher); ok {
		if err := fl.Flush(); err != nil {
			return fmt.Errorf("depthframe: flush: %w", err)
		}
	}
	return nil
}

func usableFocalLength(f float32) bool {
	v := float64(f)
	return v > 0 && !math.IsInf(v, 0)
}
