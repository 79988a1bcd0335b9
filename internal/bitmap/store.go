package bitmap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CompressedExt marks bitmap files stored inside a zstd frame.
const CompressedExt = ".zst"

// DefaultZstdLevel is the zstd level used by Save.
const DefaultZstdLevel = 3

// SaveOptions controls how Save encodes the file.
type SaveOptions struct {
	// ZstdLevel is used when the path ends in CompressedExt (1-4).
	ZstdLevel int
}

// IsCompressedPath reports whether path names a zstd-wrapped bitmap.
func IsCompressedPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), CompressedExt)
}

// Load reads a bitmap from path. Paths ending in ".zst" are decompressed
// first.
func Load(path string) (*Image, error) {
	if IsCompressedPath(path) {
		data, err := ReadRaw(path)
		if err != nil {
			return nil, err
		}
		return Decode(data)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bitmap: %w", err)
	}
	defer f.Close()

	return ReadImage(f)
}

// ReadRaw returns the bitmap bytes stored at path, decompressing ".zst"
// files.
func ReadRaw(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bitmap: %w", err)
	}
	defer f.Close()

	if !IsCompressedPath(path) {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return data, nil
	}

	dec, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
	}
	return data, nil
}

// Save writes img to path with default options.
func Save(img *Image, path string) error {
	return SaveWith(img, path, SaveOptions{ZstdLevel: DefaultZstdLevel})
}

// SaveWith writes img to path. A nil image is reported as ErrNilImage
// before the file is touched.
func SaveWith(img *Image, path string, opts SaveOptions) (err error) {
	if img == nil {
		return ErrNilImage
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create bitmap: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close bitmap: %w", cerr)
		}
	}()

	if IsCompressedPath(path) {
		level := opts.ZstdLevel
		if level <= 0 {
			level = DefaultZstdLevel
		}
		enc, err := zstd.NewWriter(f,
			zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			return fmt.Errorf("failed to create zstd writer: %w", err)
		}
		if err := WriteImage(enc, img); err != nil {
			enc.Close()
			return err
		}
		return enc.Close()
	}

	w := bufio.NewWriter(f)
	if err := WriteImage(w, img); err != nil {
		return err
	}
	return w.Flush()
}
