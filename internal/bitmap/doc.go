// Package bitmap reads and writes uncompressed 24-bit bitmap files.
//
// The on-disk layout is a 14 byte file header, a 40 byte image header, an
// optional gap up to the image data offset, and bottom-up rows of BGR
// pixels, each padded to a 4 byte boundary. Images are held top-down in
// memory. Writing an image and reading it back reproduces the headers and
// pixels exactly.
package bitmap

import "errors"

var (
	// ErrNilImage is returned when an operation is given a nil image.
	ErrNilImage = errors.New("bitmap: nil image")
	// ErrInvalidHeader reports header fields that contradict each other.
	ErrInvalidHeader = errors.New("bitmap: invalid header")
	// ErrUnsupported reports a well-formed bitmap this package does not handle.
	ErrUnsupported = errors.New("bitmap: unsupported format")
	// ErrTruncated reports a stream that ended before the expected data.
	ErrTruncated = errors.New("bitmap: truncated data")
	// ErrAllocation reports a pixel buffer that cannot be allocated.
	ErrAllocation = errors.New("bitmap: pixel buffer allocation failed")
)
