// Package convert maps between colour bitmaps and two-colour images.
package convert

import (
	"errors"
	"fmt"

	"github.com/roboco-io/bmpmorph/internal/binimg"
	"github.com/roboco-io/bmpmorph/internal/bitmap"
)

// DefaultThreshold splits the luminance range in half.
const DefaultThreshold = 128

// ErrSizeMismatch reports a template whose dimensions differ from the
// binary image.
var ErrSizeMismatch = errors.New("convert: size mismatch")

var (
	white = bitmap.Pixel{B: 0xFF, G: 0xFF, R: 0xFF}
	black = bitmap.Pixel{}
)

// Luminance returns the mean of the three channels.
func Luminance(p bitmap.Pixel) uint8 {
	return uint8((int(p.R) + int(p.G) + int(p.B)) / 3)
}

// Binarize maps every pixel with luminance >= threshold to White and the
// rest to Black.
func Binarize(img *bitmap.Image, threshold uint8) (*binimg.Image, error) {
	if img == nil {
		return nil, bitmap.ErrNilImage
	}

	bin, err := binimg.New(img.Width(), img.Height())
	if err != nil {
		return nil, err
	}
	for i, p := range img.Pixels {
		if Luminance(p) >= threshold {
			bin.Matrix[i] = binimg.White
		}
	}
	return bin, nil
}

// Colorize renders bin as pure black and white pixels. The headers are
// copied from template so the result writes back with the original layout;
// a nil template yields a fresh bitmap.
func Colorize(bin *binimg.Image, template *bitmap.Image) (*bitmap.Image, error) {
	if bin == nil {
		return nil, fmt.Errorf("convert: nil binary image")
	}

	var out *bitmap.Image
	if template == nil {
		img, err := bitmap.New(bin.Width, bin.Height)
		if err != nil {
			return nil, err
		}
		out = img
	} else {
		if template.Width() != bin.Width || template.Height() != bin.Height {
			return nil, fmt.Errorf("%w: binary %dx%d, template %dx%d",
				ErrSizeMismatch, bin.Width, bin.Height, template.Width(), template.Height())
		}
		out = template.Clone()
	}

	for i, c := range bin.Matrix {
		if c == binimg.White {
			out.Pixels[i] = white
		} else {
			out.Pixels[i] = black
		}
	}
	return out, nil
}
