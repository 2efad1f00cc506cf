// Package codectest provides shared test for codec implementations.
package codectest

import (
	"bytes"
	"image"
	"testing"

	"github.com/pion/depthframe/pkg/codec"
	"github.com/pion/depthframe/pkg/raster"
)

func assertNoPanic(t *testing.T, fn func() error, msg string) error {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("panic: %v: %s", r, msg)
		}
	}()
	return fn()
}

func roundTrip(t *testing.T, enc codec.Encoder, img image.Image, level int, format string) image.Image {
	t.Helper()

	var buf bytes.Buffer
	if err := assertNoPanic(t, func() error { return enc.Encode(&buf, img, level) }, "on Encode()"); err != nil {
		t.Fatalf("level %d: %v", level, err)
	}

	decoded, name, err := codec.Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("level %d: %v", level, err)
	}
	if name != format {
		t.Errorf("expected format %q, got %q", format, name)
	}
	if decoded.Bounds().Size() != img.Bounds().Size() {
		t.Errorf("expected size %v, got %v", img.Bounds().Size(), decoded.Bounds().Size())
	}
	return decoded
}

// DepthRoundTripTest checks that enc stores 16-bit depth planes losslessly at
// every level, including both invalid sentinels.
func DepthRoundTripTest(t *testing.T, enc codec.Encoder, format string) {
	samples := make([]uint16, 16*8)
	for i := range samples {
		samples[i] = uint16(1000 + 3*i)
	}
	samples[3] = 0
	samples[5] = raster.InvalidDepth
	samples[6] = 65535

	img, err := raster.NewDepth(samples, 16, 8)
	if err != nil {
		t.Fatal(err)
	}

	for level := codec.LevelNone; level <= codec.LevelBest; level++ {
		decoded := roundTrip(t, enc, img, level, format)
		got := raster.DepthSamples(decoded)
		for i := range samples {
			if got[i] != samples[i] {
				t.Fatalf("level %d: sample %d: expected %d, got %d", level, i, samples[i], got[i])
			}
		}
	}
}

// ColorRoundTripTest checks that enc stores packed RGB and luma images
// losslessly.
func ColorRoundTripTest(t *testing.T, enc codec.Encoder, format string) {
	pix := make([]uint8, 3*8*4)
	for i := range pix {
		pix[i] = uint8(i * 7)
	}
	img, err := raster.NewRGB24(pix, 8, 4)
	if err != nil {
		t.Fatal(err)
	}

	samples, channels := raster.ColorSamples(roundTrip(t, enc, img, codec.LevelFastest, format))
	if channels != 3 {
		t.Errorf("expected 3 channels, got %d", channels)
	}
	if !bytes.Equal(pix, samples) {
		t.Errorf("color mismatch:\nexpected %v\ngot      %v", pix, samples)
	}

	gray := img.Gray()
	samples, _ = raster.ColorSamples(roundTrip(t, enc, gray, codec.LevelDefault, format))
	for i, y := range gray.Pix {
		if samples[3*i] != y || samples[3*i+1] != y || samples[3*i+2] != y {
			t.Fatalf("pixel %d: expected gray %d, got %v", i, y, samples[3*i:3*i+3])
		}
	}
}
