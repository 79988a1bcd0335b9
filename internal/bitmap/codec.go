package bitmap

import (
	"errors"
	"fmt"
	"io"
)

// Pixel is one BGR sample, in on-disk channel order.
type Pixel struct {
	B uint8
	G uint8
	R uint8
}

// RowPadding returns the number of bytes appended to a row of the given
// width so that the row length is a multiple of four.
func RowPadding(width int) int {
	n := width * BytesPerPixel
	if n%4 == 0 {
		return 0
	}
	return 4 - n%4
}

// RowStride returns the padded on-disk length of one row.
func RowStride(width int) int {
	return width*BytesPerPixel + RowPadding(width)
}

// ReadPixels reads height padded rows from r into pixels. The first row in
// the stream is the bottom row of the image.
func ReadPixels(r io.Reader, width, height int, pixels []Pixel) error {
	if len(pixels) != width*height {
		return fmt.Errorf("%w: buffer holds %d pixels, need %d", ErrInvalidHeader, len(pixels), width*height)
	}
	if width == 0 || height == 0 {
		return nil
	}

	row := make([]byte, RowStride(width))
	for i := 0; i < height; i++ {
		if _, err := io.ReadFull(r, row); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return fmt.Errorf("%w: row %d of %d", ErrTruncated, i, height)
			}
			return fmt.Errorf("failed to read row %d: %w", i, err)
		}

		// 스트림 순서는 아래에서 위로
		dst := pixels[(height-1-i)*width : (height-i)*width]
		for x := range dst {
			off := x * BytesPerPixel
			dst[x] = Pixel{B: row[off], G: row[off+1], R: row[off+2]}
		}
	}

	return nil
}

// WritePixels writes pixels to w as height padded rows, bottom row first.
// Padding bytes are zero.
func WritePixels(w io.Writer, width, height int, pixels []Pixel) error {
	if len(pixels) != width*height {
		return fmt.Errorf("%w: buffer holds %d pixels, need %d", ErrInvalidHeader, len(pixels), width*height)
	}

	row := make([]byte, RowStride(width))
	for i := height - 1; i >= 0; i-- {
		src := pixels[i*width : (i+1)*width]
		for x, p := range src {
			off := x * BytesPerPixel
			row[off] = p.B
			row[off+1] = p.G
			row[off+2] = p.R
		}
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", height-1-i, err)
		}
	}

	return nil
}
