package io

import (
	"bytes"
	"errors"
	"io"
)

// ReadFull fills buf from r. A source that ends early yields a *ShortReadError
// naming field; other read errors are returned unchanged.
func ReadFull(r io.Reader, buf []byte, field string) error {
	n, err := io.ReadFull(r, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &ShortReadError{Field: field, Want: int64(len(buf)), Got: int64(n)}
	}
	return err
}

// ReadN reads exactly n bytes from r. Memory grows with the bytes actually
// delivered by r, not with n, so a bogus length prefix cannot force a large
// allocation on its own.
func ReadN(r io.Reader, n int64, field string) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	if n <= 64*1024 {
		buf.Grow(int(n))
	}
	got, err := buf.ReadFrom(io.LimitReader(r, n))
	if err != nil {
		return nil, err
	}
	if got != n {
		return nil, &ShortReadError{Field: field, Want: n, Got: got}
	}
	return buf.Bytes(), nil
}
