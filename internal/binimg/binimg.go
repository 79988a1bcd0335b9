// Package binimg provides a two-colour image: a top-down, row-major grid of
// Black and White cells with no padding and no file-format conventions.
package binimg

import (
	"errors"
	"fmt"
	"strings"
)

// MaxCells bounds the grid size New will allocate.
const MaxCells = 1 << 26

var (
	// ErrInvalidSize reports negative dimensions.
	ErrInvalidSize = errors.New("binimg: invalid size")
	// ErrAllocation reports a grid that cannot be allocated.
	ErrAllocation = errors.New("binimg: allocation failed")
)

// Color is the value of one cell.
type Color uint8

const (
	Black Color = iota
	White
)

// String returns the string representation of the color.
func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
}

// Image is a Width x Height grid of colors.
type Image struct {
	Width  int
	Height int
	Matrix []Color
}

// New allocates an all-black image.
func New(width, height int) (*Image, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width != 0 && height > MaxCells/width {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrAllocation, width, height, MaxCells)
	}

	return &Image{
		Width:  width,
		Height: height,
		Matrix: make([]Color, width*height),
	}, nil
}

// Index converts a column/row pair to a position in Matrix.
func (img *Image) Index(x, y int) int {
	return y*img.Width + x
}

// At returns the color at column x, row y.
func (img *Image) At(x, y int) Color {
	return img.Matrix[img.Index(x, y)]
}

// Set stores c at column x, row y.
func (img *Image) Set(x, y int, c Color) {
	img.Matrix[img.Index(x, y)] = c
}

// Clone returns an independent copy of img.
func (img *Image) Clone() (*Image, error) {
	if img == nil {
		return nil, ErrInvalidSize
	}
	c, err := New(img.Width, img.Height)
	if err != nil {
		return nil, err
	}
	copy(c.Matrix, img.Matrix)
	return c, nil
}

// Release drops the matrix. It is safe to call on a nil image.
func (img *Image) Release() {
	if img == nil {
		return
	}
	img.Matrix = nil
}

// Equal reports whether both images have the same size and cells.
func (img *Image) Equal(other *Image) bool {
	if img == nil || other == nil {
		return img == other
	}
	if img.Width != other.Width || img.Height != other.Height {
		return false
	}
	for i := range img.Matrix {
		if img.Matrix[i] != other.Matrix[i] {
			return false
		}
	}
	return true
}

// CountWhite returns the number of White cells.
func (img *Image) CountWhite() int {
	n := 0
	for _, c := range img.Matrix {
		if c == White {
			n++
		}
	}
	return n
}

// String renders the image one line per row, '#' for White and '.' for
// Black.
func (img *Image) String() string {
	var sb strings.Builder
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if img.At(x, y) == White {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Parse builds an image from the String format. Rows must have equal
// length.
func Parse(s string) (*Image, error) {
	lines := strings.Fields(s)
	if len(lines) == 0 {
		return New(0, 0)
	}

	img, err := New(len(lines[0]), len(lines))
	if err != nil {
		return nil, err
	}
	for y, line := range lines {
		if len(line) != img.Width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidSize, y, len(line), img.Width)
		}
		for x, ch := range []byte(line) {
			switch ch {
			case '#':
				img.Set(x, y, White)
			case '.':
			default:
				return nil, fmt.Errorf("binimg: unexpected %q at (%d,%d)", ch, x, y)
			}
		}
	}
	return img, nil
}
