package bitmap

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
)

// MaxPixels bounds the pixel buffer a header may request.
const MaxPixels = 1 << 26

// Image is a decoded bitmap: both headers plus a top-down pixel buffer.
type Image struct {
	FileHeader  FileHeader
	ImageHeader ImageHeader
	Pixels      []Pixel
}

// New creates a zeroed (black) image with consistent headers.
func New(width, height int) (*Image, error) {
	pixels, err := allocPixels(width, height)
	if err != nil {
		return nil, err
	}

	dataSize := RowStride(width) * height
	img := &Image{
		FileHeader: FileHeader{
			Signature:       [2]byte{'B', 'M'},
			FileSize:        uint32(HeaderSize + dataSize),
			ImageDataOffset: HeaderSize,
		},
		ImageHeader: ImageHeader{
			Size:         ImageHeaderSize,
			Width:        int32(width),
			Height:       int32(height),
			Planes:       1,
			BitsPerPixel: BitsPerPixel,
			ImageSize:    uint32(dataSize),
		},
		Pixels: pixels,
	}
	return img, nil
}

func allocPixels(width, height int) ([]Pixel, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidHeader, width, height)
	}
	if width > MaxPixels || height > MaxPixels || (width != 0 && height > MaxPixels/width) {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrAllocation, width, height, MaxPixels)
	}
	return make([]Pixel, width*height), nil
}

// Width returns the image width in pixels.
func (img *Image) Width() int {
	return int(img.ImageHeader.Width)
}

// Height returns the image height in pixels.
func (img *Image) Height() int {
	return int(img.ImageHeader.Height)
}

func (img *Image) index(x, y int) int {
	return y*img.Width() + x
}

// At returns the pixel at column x, row y (row 0 is the top).
func (img *Image) At(x, y int) Pixel {
	return img.Pixels[img.index(x, y)]
}

// Set stores p at column x, row y.
func (img *Image) Set(x, y int, p Pixel) {
	img.Pixels[img.index(x, y)] = p
}

// Clone returns a deep copy of img.
func (img *Image) Clone() *Image {
	if img == nil {
		return nil
	}
	c := *img
	c.Pixels = make([]Pixel, len(img.Pixels))
	copy(c.Pixels, img.Pixels)
	return &c
}

// Release drops the pixel buffer. It is safe to call on a nil image.
func (img *Image) Release() {
	if img == nil {
		return
	}
	img.Pixels = nil
}

// ToRGBA converts the image to an opaque *image.RGBA.
func (img *Image) ToRGBA() *image.RGBA {
	w, h := img.Width(), img.Height()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := img.At(x, y)
			out.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xFF})
		}
	}
	return out
}

// ReadImage decodes a bitmap from r. Pixel data is read from the offset
// recorded in the file header. No image is returned on failure.
func ReadImage(r io.ReadSeeker) (*Image, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrTruncated, err)
	}

	fh, err := ParseFileHeader(buf[:FileHeaderSize])
	if err != nil {
		return nil, err
	}
	ih, err := ParseImageHeader(buf[FileHeaderSize:])
	if err != nil {
		return nil, err
	}
	if err := validate(fh, ih); err != nil {
		return nil, err
	}

	pixels, err := allocPixels(int(ih.Width), int(ih.Height))
	if err != nil {
		return nil, err
	}

	if _, err := r.Seek(int64(fh.ImageDataOffset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek to image data: %w", err)
	}

	if err := ReadPixels(r, int(ih.Width), int(ih.Height), pixels); err != nil {
		return nil, err
	}

	return &Image{FileHeader: fh, ImageHeader: ih, Pixels: pixels}, nil
}

// Decode reads a bitmap held entirely in memory.
func Decode(data []byte) (*Image, error) {
	return ReadImage(bytes.NewReader(data))
}

// WriteImage encodes img to w. Zero bytes fill the gap between the headers
// and the image data offset.
func WriteImage(w io.Writer, img *Image) error {
	if img == nil {
		return ErrNilImage
	}
	if img.FileHeader.ImageDataOffset < HeaderSize {
		return fmt.Errorf("%w: image data offset %d is inside the header", ErrInvalidHeader, img.FileHeader.ImageDataOffset)
	}
	if img.ImageHeader.Width < 0 || img.ImageHeader.Height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidHeader, img.ImageHeader.Width, img.ImageHeader.Height)
	}

	if _, err := w.Write(img.FileHeader.Bytes()); err != nil {
		return fmt.Errorf("failed to write file header: %w", err)
	}
	if _, err := w.Write(img.ImageHeader.Bytes()); err != nil {
		return fmt.Errorf("failed to write image header: %w", err)
	}

	gap := int(img.FileHeader.ImageDataOffset) - HeaderSize
	if gap > 0 {
		if _, err := w.Write(make([]byte, gap)); err != nil {
			return fmt.Errorf("failed to write header gap: %w", err)
		}
	}

	return WritePixels(w, img.Width(), img.Height(), img.Pixels)
}

// Encode returns the on-disk bytes of img.
func Encode(img *Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteImage(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
