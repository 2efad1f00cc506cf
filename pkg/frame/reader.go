package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	mio "github.com/pion/depthframe/pkg/io"
)

// Limits bounds what a reader accepts from a header before allocating.
type Limits struct {
	// MaxPayloadSize caps each compressed payload, in bytes.
	MaxPayloadSize uint32
	// MaxPoints caps Width*Height.
	MaxPoints uint64
}

// DefaultLimits accepts 64 MiB payloads and grids up to 16M points.
var DefaultLimits = Limits{
	MaxPayloadSize: 64 << 20,
	MaxPoints:      1 << 24,
}

// Sync consumes r up to and including the next Marker. It returns the number
// of bytes skipped before the marker.
func Sync(r io.ByteReader) (int, error) {
	return SyncMarker(r, Marker)
}

// SyncMarker consumes r up to and including marker.
//
// The matcher only restarts on the first marker byte: after a mismatch the
// position becomes 1 if the byte equals marker[0] and 0 otherwise. This is
// exact for markers whose first byte does not recur, such as Marker, but can
// miss a marker with a repeated prefix (e.g. "aab" inside "aaab").
func SyncMarker(r io.ByteReader, marker string) (int, error) {
	if marker == "" {
		return 0, nil
	}

	p, n := 0, 0
	for p < len(marker) {
		c, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return n, ErrNoMarker
			}
			return n, fmt.Errorf("%w: %w", ErrNoMarker, err)
		}
		n++

		if c == marker[p] {
			p++
			continue
		}
		if c == marker[0] {
			p = 1
		} else {
			p = 0
		}
	}
	return n - len(marker), nil
}

// ReadBody reads the header and both payloads that follow a marker. Every
// short read is reported as ErrTruncated wrapping a *mio.ShortReadError.
func ReadBody(r io.Reader, limits Limits) (*Frame, error) {
	var hdr [HeaderSize]byte
	if err := readFull(r, hdr[:], "header"); err != nil {
		return nil, err
	}

	f := &Frame{}
	if err := f.Header.UnmarshalBinary(hdr[:]); err != nil {
		return nil, err
	}
	if limits.MaxPoints > 0 && f.Points() > limits.MaxPoints {
		return nil, fmt.Errorf("%w: %dx%d grid", ErrFrameTooLarge, f.Width, f.Height)
	}

	var err error
	if f.Depth, err = readPayload(r, limits, "depth payload"); err != nil {
		return nil, err
	}
	if f.Color, err = readPayload(r, limits, "color payload"); err != nil {
		return nil, err
	}
	return f, nil
}

// Read syncs to the next marker in r and reads the frame after it. Bytes are
// taken from r one at a time until the marker is found, and nothing past the
// end of the frame is consumed.
func Read(r io.Reader, limits Limits) (*Frame, error) {
	if _, err := Sync(mio.NewByteReader(r)); err != nil {
		return nil, err
	}
	return ReadBody(r, limits)
}

func readPayload(r io.Reader, limits Limits, field string) ([]byte, error) {
	var size [4]byte
	if err := readFull(r, size[:], field+" size"); err != nil {
		return nil, err
	}

	n := binary.LittleEndian.Uint32(size[:])
	if limits.MaxPayloadSize > 0 && n > limits.MaxPayloadSize {
		return nil, fmt.Errorf("%w: %s of %d bytes", ErrFrameTooLarge, field, n)
	}

	b, err := mio.ReadN(r, int64(n), field)
	if err != nil {
		return nil, wrapShort(err)
	}
	return b, nil
}

func readFull(r io.Reader, buf []byte, field string) error {
	return wrapShort(mio.ReadFull(r, buf, field))
}

func wrapShort(err error) error {
	var short *mio.ShortReadError
	if errors.As(err, &short) {
		return fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	return err
}
