package bitmap

import (
	"bytes"
	"errors"
	"testing"
)

func TestRowPadding(t *testing.T) {
	tests := []struct {
		width    int
		expected int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 3},
		{4, 0},
		{5, 1},
		{7, 3},
		{8, 0},
		{101, 1},
	}

	for _, tc := range tests {
		got := RowPadding(tc.width)
		if got != tc.expected {
			t.Errorf("RowPadding(%d) = %d, want %d", tc.width, got, tc.expected)
		}
	}
}

func TestRowPadding_AlignsRows(t *testing.T) {
	for w := 0; w < 64; w++ {
		p := RowPadding(w)
		if p < 0 || p > 3 {
			t.Errorf("width %d: padding %d out of range", w, p)
		}
		if (w*3+p)%4 != 0 {
			t.Errorf("width %d: row length %d not aligned", w, w*3+p)
		}
	}
}

func TestReadPixels_BottomUp(t *testing.T) {
	// 1x2 이미지: 스트림 첫 행이 아래쪽 행
	data := []byte{
		0x01, 0x02, 0x03, 0x00, // bottom row + 1 byte padding
		0x0A, 0x0B, 0x0C, 0x00, // top row + 1 byte padding
	}

	pixels := make([]Pixel, 2)
	if err := ReadPixels(bytes.NewReader(data), 1, 2, pixels); err != nil {
		t.Fatalf("ReadPixels failed: %v", err)
	}

	top := Pixel{B: 0x0A, G: 0x0B, R: 0x0C}
	bottom := Pixel{B: 0x01, G: 0x02, R: 0x03}
	if pixels[0] != top {
		t.Errorf("expected top pixel %+v, got %+v", top, pixels[0])
	}
	if pixels[1] != bottom {
		t.Errorf("expected bottom pixel %+v, got %+v", bottom, pixels[1])
	}
}

func TestWritePixels_PaddingIsZero(t *testing.T) {
	pixels := []Pixel{
		{B: 1, G: 2, R: 3}, {B: 4, G: 5, R: 6},
		{B: 7, G: 8, R: 9}, {B: 10, G: 11, R: 12},
	}

	var buf bytes.Buffer
	if err := WritePixels(&buf, 2, 2, pixels); err != nil {
		t.Fatalf("WritePixels failed: %v", err)
	}

	expected := []byte{
		7, 8, 9, 10, 11, 12, 0, 0,
		1, 2, 3, 4, 5, 6, 0, 0,
	}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("expected % x, got % x", expected, buf.Bytes())
	}
}

func TestPixels_RoundTrip(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 2}, {5, 5}, {6, 3}, {13, 7}} {
		w, h := size[0], size[1]
		pixels := make([]Pixel, w*h)
		for i := range pixels {
			pixels[i] = Pixel{B: uint8(i), G: uint8(i * 7), R: uint8(i * 13)}
		}

		var buf bytes.Buffer
		if err := WritePixels(&buf, w, h, pixels); err != nil {
			t.Fatalf("%dx%d: WritePixels failed: %v", w, h, err)
		}
		if buf.Len() != RowStride(w)*h {
			t.Errorf("%dx%d: expected %d bytes, got %d", w, h, RowStride(w)*h, buf.Len())
		}

		restored := make([]Pixel, w*h)
		if err := ReadPixels(&buf, w, h, restored); err != nil {
			t.Fatalf("%dx%d: ReadPixels failed: %v", w, h, err)
		}
		for i := range pixels {
			if pixels[i] != restored[i] {
				t.Fatalf("%dx%d: pixel %d mismatch: %+v != %+v", w, h, i, pixels[i], restored[i])
			}
		}
	}
}

func TestReadPixels_Truncated(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x00, 0x0A}

	pixels := make([]Pixel, 2)
	err := ReadPixels(bytes.NewReader(data), 1, 2, pixels)
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestReadPixels_BufferMismatch(t *testing.T) {
	err := ReadPixels(bytes.NewReader(nil), 2, 2, make([]Pixel, 3))
	if err == nil {
		t.Error("expected error for mismatched buffer")
	}
}
