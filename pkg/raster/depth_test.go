package raster

import (
	"image"
	"image/color"
	"reflect"
	"testing"
)

func TestDecodeZ16(t *testing.T) {
	const (
		width  = 2
		height = 3
	)
	if _, err := DecodeZ16([]byte{0x00}, width, height); err == nil {
		t.Errorf("expected to get a frame length mismatch")
	}

	input := []byte{
		0x0c, 0x00, 0x20, 0x03,
		0xa3, 0x01, 0x10, 0x00,
		0x56, 0x09, 0x5d, 0x00,
	}
	expected := []uint16{12, 800, 419, 16, 2390, 93}

	samples, err := DecodeZ16(input, width, height)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(expected, samples) {
		t.Errorf("Wrong decode result,\nexpected:\n%+v\ngot:\n%+v", expected, samples)
	}
}

func TestNewDepth(t *testing.T) {
	samples := []uint16{12, 800, 419, 16, 2390, 93}
	img, err := NewDepth(samples, 2, 3)
	if err != nil {
		t.Fatal(err)
	}

	expected := image.NewGray16(image.Rect(0, 0, 2, 3))
	expected.SetGray16(0, 0, color.Gray16{Y: 12})
	expected.SetGray16(1, 0, color.Gray16{Y: 800})
	expected.SetGray16(0, 1, color.Gray16{Y: 419})
	expected.SetGray16(1, 1, color.Gray16{Y: 16})
	expected.SetGray16(0, 2, color.Gray16{Y: 2390})
	expected.SetGray16(1, 2, color.Gray16{Y: 93})
	if !reflect.DeepEqual(expected, img) {
		t.Errorf("Wrong image,\nexpected:\n%+v\ngot:\n%+v", expected, img)
	}

	if got := DepthSamples(img); !reflect.DeepEqual(samples, got) {
		t.Errorf("expected %v, got %v", samples, got)
	}

	if _, err := NewDepth(samples, 3, 3); err == nil {
		t.Errorf("expected to get a length mismatch")
	}
}

func TestDepthSamplesSubImage(t *testing.T) {
	img, err := NewDepth([]uint16{1, 2, 3, 4, 5, 6, 7, 8, 9}, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	sub := img.SubImage(image.Rect(1, 1, 3, 3))
	if got, want := DepthSamples(sub), []uint16{5, 6, 8, 9}; !reflect.DeepEqual(want, got) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestIsInvalidDepth(t *testing.T) {
	for v, want := range map[uint16]bool{
		0:      true,
		0x7FF:  true,
		1:      false,
		0x7FE:  false,
		0x800:  false,
		0xFFFF: false,
	} {
		if got := IsInvalidDepth(v); got != want {
			t.Errorf("IsInvalidDepth(%#x) = %v, want %v", v, got, want)
		}
	}
}
