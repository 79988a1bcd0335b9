package bitmap

import (
	"encoding/binary"
	"fmt"
)

const (
	// FileHeaderSize is the size of the BITMAPFILEHEADER record.
	FileHeaderSize = 14
	// ImageHeaderSize is the size of the BITMAPINFOHEADER record.
	ImageHeaderSize = 40
	// HeaderSize is the minimum offset at which pixel data can start.
	HeaderSize = FileHeaderSize + ImageHeaderSize

	// Signature is the magic value at offset 0.
	Signature = "BM"

	// BitsPerPixel is the only pixel depth this package handles.
	BitsPerPixel = 24
	// BytesPerPixel is the on-disk size of one Pixel.
	BytesPerPixel = 3
)

// FileHeader는 파일 선두 14바이트 레코드
type FileHeader struct {
	Signature       [2]byte // "BM"
	FileSize        uint32  // 전체 파일 크기
	Reserved1       uint16
	Reserved2       uint16
	ImageDataOffset uint32 // 픽셀 데이터 시작 위치
}

// ImageHeader는 FileHeader 다음의 40바이트 레코드 (BITMAPINFOHEADER)
type ImageHeader struct {
	Size            uint32 // 헤더 크기 (40)
	Width           int32
	Height          int32
	Planes          uint16
	BitsPerPixel    uint16
	Compression     uint32
	ImageSize       uint32 // 패딩 포함 픽셀 데이터 크기
	XPixelsPerMeter int32
	YPixelsPerMeter int32
	ColorsUsed      uint32
	ImportantColors uint32
}

// ParseFileHeader parses the FileHeader from raw bytes.
func ParseFileHeader(data []byte) (FileHeader, error) {
	var h FileHeader
	if len(data) < FileHeaderSize {
		return h, fmt.Errorf("%w: file header too small: %d bytes", ErrTruncated, len(data))
	}

	copy(h.Signature[:], data[0:2])
	if string(h.Signature[:]) != Signature {
		return h, fmt.Errorf("%w: signature %q", ErrInvalidHeader, h.Signature[:])
	}

	h.FileSize = binary.LittleEndian.Uint32(data[2:6])
	h.Reserved1 = binary.LittleEndian.Uint16(data[6:8])
	h.Reserved2 = binary.LittleEndian.Uint16(data[8:10])
	h.ImageDataOffset = binary.LittleEndian.Uint32(data[10:14])

	return h, nil
}

// ParseImageHeader parses the ImageHeader from raw bytes.
func ParseImageHeader(data []byte) (ImageHeader, error) {
	var h ImageHeader
	if len(data) < ImageHeaderSize {
		return h, fmt.Errorf("%w: image header too small: %d bytes", ErrTruncated, len(data))
	}

	le := binary.LittleEndian
	h.Size = le.Uint32(data[0:4])
	h.Width = int32(le.Uint32(data[4:8]))
	h.Height = int32(le.Uint32(data[8:12]))
	h.Planes = le.Uint16(data[12:14])
	h.BitsPerPixel = le.Uint16(data[14:16])
	h.Compression = le.Uint32(data[16:20])
	h.ImageSize = le.Uint32(data[20:24])
	h.XPixelsPerMeter = int32(le.Uint32(data[24:28]))
	h.YPixelsPerMeter = int32(le.Uint32(data[28:32]))
	h.ColorsUsed = le.Uint32(data[32:36])
	h.ImportantColors = le.Uint32(data[36:40])

	return h, nil
}

// Bytes returns the on-disk encoding of the file header.
func (h FileHeader) Bytes() []byte {
	b := make([]byte, FileHeaderSize)
	copy(b[0:2], h.Signature[:])
	binary.LittleEndian.PutUint32(b[2:6], h.FileSize)
	binary.LittleEndian.PutUint16(b[6:8], h.Reserved1)
	binary.LittleEndian.PutUint16(b[8:10], h.Reserved2)
	binary.LittleEndian.PutUint32(b[10:14], h.ImageDataOffset)
	return b
}

// Bytes returns the on-disk encoding of the image header.
func (h ImageHeader) Bytes() []byte {
	b := make([]byte, ImageHeaderSize)
	le := binary.LittleEndian
	le.PutUint32(b[0:4], h.Size)
	le.PutUint32(b[4:8], uint32(h.Width))
	le.PutUint32(b[8:12], uint32(h.Height))
	le.PutUint16(b[12:14], h.Planes)
	le.PutUint16(b[14:16], h.BitsPerPixel)
	le.PutUint32(b[16:20], h.Compression)
	le.PutUint32(b[20:24], h.ImageSize)
	le.PutUint32(b[24:28], uint32(h.XPixelsPerMeter))
	le.PutUint32(b[28:32], uint32(h.YPixelsPerMeter))
	le.PutUint32(b[32:36], h.ColorsUsed)
	le.PutUint32(b[36:40], h.ImportantColors)
	return b
}

// validate checks the fields the codec depends on.
func validate(fh FileHeader, ih ImageHeader) error {
	if ih.Width < 0 || ih.Height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrUnsupported, ih.Width, ih.Height)
	}
	if ih.BitsPerPixel != BitsPerPixel {
		return fmt.Errorf("%w: %d bits per pixel", ErrUnsupported, ih.BitsPerPixel)
	}
	if ih.Compression != 0 {
		return fmt.Errorf("%w: compression %d", ErrUnsupported, ih.Compression)
	}
	if fh.ImageDataOffset < HeaderSize {
		return fmt.Errorf("%w: image data offset %d is inside the header", ErrInvalidHeader, fh.ImageDataOffset)
	}
	return nil
}
