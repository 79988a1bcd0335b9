package binimg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	img, err := New(4, 3)
	require.NoError(t, err)

	assert.Equal(t, 4, img.Width)
	assert.Equal(t, 3, img.Height)
	assert.Len(t, img.Matrix, 12)
	assert.Equal(t, 0, img.CountWhite())
}

func TestNew_InvalidSize(t *testing.T) {
	_, err := New(-1, 2)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = New(MaxCells, 2)
	assert.ErrorIs(t, err, ErrAllocation)
}

func TestImage_SetAt(t *testing.T) {
	img, err := New(3, 2)
	require.NoError(t, err)

	img.Set(2, 1, White)
	assert.Equal(t, White, img.At(2, 1))
	assert.Equal(t, White, img.Matrix[5])
	assert.Equal(t, Black, img.At(1, 1))
}

func TestImage_Clone(t *testing.T) {
	img, err := Parse("#.\n.#")
	require.NoError(t, err)

	c, err := img.Clone()
	require.NoError(t, err)
	assert.True(t, img.Equal(c))

	c.Set(1, 0, White)
	assert.False(t, img.Equal(c))
	assert.Equal(t, Black, img.At(1, 0))
}

func TestParse_String(t *testing.T) {
	art := "..#\n###\n#..\n"

	img, err := Parse(art)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Width)
	assert.Equal(t, 3, img.Height)
	assert.Equal(t, 5, img.CountWhite())
	assert.Equal(t, art, img.String())
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("##\n#")
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = Parse("#x")
	assert.Error(t, err)
}

func TestImage_Release(t *testing.T) {
	var nilImg *Image
	nilImg.Release()

	img, err := New(2, 2)
	require.NoError(t, err)
	img.Release()
	assert.Nil(t, img.Matrix)
}

func TestColor_String(t *testing.T) {
	assert.Equal(t, "black", Black.String())
	assert.Equal(t, "white", White.String())
	assert.Equal(t, "Color(7)", Color(7).String())
}
