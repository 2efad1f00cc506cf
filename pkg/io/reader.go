package io

import "io"

// NewByteReader returns r as an io.ByteReader. Readers that already implement
// io.ByteReader are returned as is; others are read one byte per call so that
// nothing past the consumed byte is taken from r.
func NewByteReader(r io.Reader) io.ByteReader {
	if br, ok := r.(io.ByteReader); ok {
		return br
	}
	return &byteReader{r: r}
}

type byteReader struct {
	r   io.Reader
	buf [1]byte
}

func (b *byteReader) ReadByte() (byte, error) {
	for {
		n, err := b.r.Read(b.buf[:])
		if n == 1 {
			return b.buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}
