// Package frame implements the depthframe wire format: a fixed marker, a
// little-endian header and two length-prefixed image payloads.
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Marker starts every frame and is what Sync looks for.
const Marker = "<PCL-ORG-COMPRESSED>"

// HeaderSize is the encoded size of Header, excluding the marker.
const HeaderSize = 24

var (
	// ErrNoMarker is returned when the source ends before a marker is found.
	ErrNoMarker = errors.New("frame: marker not found")
	// ErrTruncated is returned when the source ends inside a frame.
	ErrTruncated = errors.New("frame: truncated frame")
	// ErrFrameTooLarge is returned when a header declares more data than the
	// configured Limits allow.
	ErrFrameTooLarge = errors.New("frame: declared size exceeds limit")
)

// Header holds the fixed scalar fields that follow the marker.
type Header struct {
	Width  uint32
	Height uint32
	// MaxDepth is -1 when the frame was not produced from a point cloud.
	MaxDepth       float32
	FocalLength    float32
	DisparityScale float32
	DisparityShift float32
}

// Points returns Width*Height without overflowing.
func (h Header) Points() uint64 {
	return uint64(h.Width) * uint64(h.Height)
}

// AppendBinary appends the encoded header to b.
func (h Header) AppendBinary(b []byte) []byte {
	b = binary.LittleEndian.AppendUint32(b, h.Width)
	b = binary.LittleEndian.AppendUint32(b, h.Height)
	b = binary.LittleEndian.AppendUint32(b, math.Float32bits(h.MaxDepth))
	b = binary.LittleEndian.AppendUint32(b, math.Float32bits(h.FocalLength))
	b = binary.LittleEndian.AppendUint32(b, math.Float32bits(h.DisparityScale))
	b = binary.LittleEndian.AppendUint32(b, math.Float32bits(h.DisparityShift))
	return b
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (h Header) MarshalBinary() ([]byte, error) {
	return h.AppendBinary(make([]byte, 0, HeaderSize)), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (h *Header) UnmarshalBinary(b []byte) error {
	if len(b) < HeaderSize {
		return fmt.Errorf("%w: header needs %d bytes, got %d", ErrTruncated, HeaderSize, len(b))
	}
	h.Width = binary.LittleEndian.Uint32(b[0:])
	h.Height = binary.LittleEndian.Uint32(b[4:])
	h.MaxDepth = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
	h.FocalLength = math.Float32frombits(binary.LittleEndian.Uint32(b[12:]))
	h.DisparityScale = math.Float32frombits(binary.LittleEndian.Uint32(b[16:]))
	h.DisparityShift = math.Float32frombits(binary.LittleEndian.Uint32(b[20:]))
	return nil
}

// Frame is one encoded capture: header plus the compressed depth and color
// payloads as produced by the image codecs. Color may be empty.
type Frame struct {
	Header
	Depth []byte
	Color []byte
}

// Size returns the number of bytes the encoded frame occupies.
func (f *Frame) Size() int {
	return len(Marker) + HeaderSize + 4 + len(f.Depth) + 4 + len(f.Color)
}

// AppendBinary appends the full encoded frame, marker included, to b.
func (f *Frame) AppendBinary(b []byte) ([]byte, error) {
	if uint64(len(f.Depth)) > math.MaxUint32 || uint64(len(f.Color)) > math.MaxUint32 {
		return b, ErrFrameTooLarge
	}
	b = append(b, Marker...)
	b = f.Header.AppendBinary(b)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(f.Depth)))
	b = append(b, f.Depth...)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(f.Color)))
	b = append(b, f.Color...)
	return b, nil
}

// WriteTo writes the encoded frame to w with a single Write call, so a failed
// encode never leaves a partial frame behind.
func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	b, err := f.AppendBinary(make([]byte, 0, f.Size()))
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}
