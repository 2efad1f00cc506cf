package io

import "fmt"

// ShortReadError tells the caller that the source ended before the declared
// amount of data could be read.
type ShortReadError struct {
	Field string
	Want  int64
	Got   int64
}

func (e *ShortReadError) Error() string {
	return fmt.Sprintf("short read of %s: got %d of %d bytes", e.Field, e.Got, e.Want)
}
