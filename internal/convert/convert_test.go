package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roboco-io/bmpmorph/internal/binimg"
	"github.com/roboco-io/bmpmorph/internal/bitmap"
)

func TestLuminance(t *testing.T) {
	assert.Equal(t, uint8(0), Luminance(bitmap.Pixel{}))
	assert.Equal(t, uint8(255), Luminance(bitmap.Pixel{B: 255, G: 255, R: 255}))
	assert.Equal(t, uint8(100), Luminance(bitmap.Pixel{B: 0, G: 100, R: 200}))
}

func TestBinarize(t *testing.T) {
	img, err := bitmap.New(3, 1)
	require.NoError(t, err)
	img.Set(0, 0, bitmap.Pixel{B: 10, G: 10, R: 10})
	img.Set(1, 0, bitmap.Pixel{B: 128, G: 128, R: 128})
	img.Set(2, 0, bitmap.Pixel{B: 250, G: 200, R: 255})

	bin, err := Binarize(img, DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, ".##\n", bin.String())

	_, err = Binarize(nil, DefaultThreshold)
	assert.ErrorIs(t, err, bitmap.ErrNilImage)
}

func TestColorize_Template(t *testing.T) {
	template, err := bitmap.New(2, 2)
	require.NoError(t, err)
	template.FileHeader.ImageDataOffset = bitmap.HeaderSize + 4
	template.ImageHeader.XPixelsPerMeter = 3780

	bin, err := binimg.Parse("#.\n.#")
	require.NoError(t, err)

	out, err := Colorize(bin, template)
	require.NoError(t, err)
	assert.Equal(t, template.FileHeader, out.FileHeader)
	assert.Equal(t, template.ImageHeader, out.ImageHeader)
	assert.Equal(t, white, out.At(0, 0))
	assert.Equal(t, black, out.At(1, 0))
	assert.Equal(t, white, out.At(1, 1))
	assert.Equal(t, black, template.At(0, 0), "template must not be modified")
}

func TestColorize_NoTemplate(t *testing.T) {
	bin, err := binimg.Parse("##.")
	require.NoError(t, err)

	out, err := Colorize(bin, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Width())
	assert.Equal(t, 1, out.Height())
	assert.Equal(t, white, out.At(1, 0))
}

func TestColorize_SizeMismatch(t *testing.T) {
	template, err := bitmap.New(3, 3)
	require.NoError(t, err)
	bin, err := binimg.New(2, 2)
	require.NoError(t, err)

	_, err = Colorize(bin, template)
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

func TestRoundTrip(t *testing.T) {
	bin, err := binimg.Parse(".#.\n###\n.#.")
	require.NoError(t, err)

	colour, err := Colorize(bin, nil)
	require.NoError(t, err)
	back, err := Binarize(colour, DefaultThreshold)
	require.NoError(t, err)
	assert.True(t, bin.Equal(back))
}
