package morphology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquare_Bounds(t *testing.T) {
	tests := []struct {
		size    int
		wantErr bool
	}{
		{-1, true},
		{0, false},
		{1, false},
		{3, false},
		{MaxKernelSize, false},
		{MaxKernelSize + 1, true},
	}

	for _, tc := range tests {
		k, err := Square(tc.size)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrKernelSize, "size %d", tc.size)
			assert.Nil(t, k)
			continue
		}

		require.NoError(t, err, "size %d", tc.size)
		mask := k.Mask()
		assert.Len(t, mask, tc.size*tc.size)
		for _, v := range mask {
			assert.Equal(t, uint8(1), v)
		}
		assert.Equal(t, tc.size*tc.size, k.Active())
	}
}

func TestRect(t *testing.T) {
	k, err := Rect(5, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, k.Width)
	assert.Equal(t, 1, k.Height)
	assert.Equal(t, "1 1 1 1 1\n", k.String())

	_, err = Rect(3, -2)
	assert.ErrorIs(t, err, ErrKernelSize)
}

func TestFromMask(t *testing.T) {
	k, err := FromMask(3, 3, []uint8{0, 1, 0, 1, 7, 1, 0, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, 5, k.Active())
	assert.True(t, k.At(1, 1))
	assert.False(t, k.At(0, 0))

	_, err = FromMask(3, 3, []uint8{1, 1})
	assert.ErrorIs(t, err, ErrKernelSize)
}

func TestFromExpression(t *testing.T) {
	tests := []struct {
		name   string
		expr   string
		size   int
		active int
		art    string
	}{
		{
			name:   "cross",
			expr:   "x == 0 || y == 0",
			size:   3,
			active: 5,
			art:    "0 1 0\n1 1 1\n0 1 0\n",
		},
		{
			name:   "disk",
			expr:   "x*x + y*y <= rx*rx",
			size:   5,
			active: 13,
		},
		{
			name:   "diamond",
			expr:   "abs(x) + abs(y) <= rx",
			size:   5,
			active: 13,
		},
		{
			name:   "square",
			expr:   "max(abs(x), abs(y)) <= rx",
			size:   3,
			active: 9,
		},
		{
			name:   "none",
			expr:   "false",
			size:   3,
			active: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			k, err := FromExpression(tc.expr, tc.size, tc.size)
			require.NoError(t, err)
			assert.Equal(t, tc.active, k.Active())
			if tc.art != "" {
				assert.Equal(t, tc.art, k.String())
			}
		})
	}
}

func TestFromExpression_Errors(t *testing.T) {
	_, err := FromExpression("x +* ", 3, 3)
	assert.ErrorIs(t, err, ErrExpression)

	_, err = FromExpression("x + y", 3, 3)
	assert.ErrorIs(t, err, ErrExpression)

	_, err = FromExpression("true", MaxKernelSize+1, 3)
	assert.ErrorIs(t, err, ErrKernelSize)
}

func TestKernel_Release(t *testing.T) {
	var nilKernel *Kernel
	nilKernel.Release()

	k, err := Square(3)
	require.NoError(t, err)
	k.Release()
	assert.Nil(t, k.mask)
}

func TestKernel_MaskIsCopy(t *testing.T) {
	k, err := Square(2)
	require.NoError(t, err)

	m := k.Mask()
	m[0] = 0
	assert.True(t, k.At(0, 0))
}
