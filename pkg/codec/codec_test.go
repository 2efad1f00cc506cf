package codec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"
)

func TestRegistry(t *testing.T) {
	called := 0
	Register("test-null", EncoderFunc(func(w io.Writer, img image.Image, level int) error {
		called++
		_, err := w.Write([]byte{byte(level)})
		return err
	}))

	enc, err := Lookup("test-null")
	if err != nil {
		t.Fatal(err)
	}

	b, err := EncodeToBytes(enc, image.NewGray(image.Rect(0, 0, 1, 1)), LevelBest)
	if err != nil {
		t.Fatal(err)
	}
	if called != 1 || !bytes.Equal(b, []byte{LevelBest}) {
		t.Errorf("unexpected encode result %v after %d calls", b, called)
	}

	found := false
	for _, name := range Names() {
		if name == "test-null" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected test-null in %v", Names())
	}

	if _, err := Lookup("does-not-exist"); err == nil {
		t.Error("expected lookup of unknown codec to fail")
	}
}

func TestEncodeToBytesError(t *testing.T) {
	enc := EncoderFunc(func(io.Writer, image.Image, int) error { return ErrUnsupportedImage })
	if _, err := EncodeToBytes(enc, nil, LevelDefault); !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("expected ErrUnsupportedImage, got %v", err)
	}
}

func TestValidLevel(t *testing.T) {
	for level, want := range map[int]bool{-1: false, 0: true, 6: true, 9: true, 10: false} {
		if got := ValidLevel(level); got != want {
			t.Errorf("ValidLevel(%d) = %v, want %v", level, got, want)
		}
	}
}

func TestDecodeUnknownFormat(t *testing.T) {
	if _, _, err := Decode([]byte("not an image")); err == nil {
		t.Error("expected decode of garbage to fail")
	}
}

func TestDecodeConfig(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray16(image.Rect(0, 0, 7, 3))); err != nil {
		t.Fatal(err)
	}

	cfg, format, err := DecodeConfig(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if format != "png" || cfg.Width != 7 || cfg.Height != 3 || cfg.ColorModel != color.Gray16Model {
		t.Errorf("unexpected config %s %dx%d %v", format, cfg.Width, cfg.Height, cfg.ColorModel)
	}

	if _, _, err := DecodeConfig([]byte("not an image")); err == nil {
		t.Error("expected config of garbage to fail")
	}
}
