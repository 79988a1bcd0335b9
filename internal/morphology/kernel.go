package morphology

import (
	"fmt"
	"math"
	"strings"

	"github.com/knetic/govaluate"
)

// MaxKernelSize bounds either kernel dimension.
const MaxKernelSize = 255

// Kernel is a structuring element: a Width x Height mask of 0/1 cells,
// centred on the pixel under test. It is not modified after construction.
type Kernel struct {
	Width  int
	Height int
	mask   []uint8
}

func checkSize(width, height int) error {
	if width < 0 || width > MaxKernelSize || height < 0 || height > MaxKernelSize {
		return fmt.Errorf("%w: %dx%d (max %d)", ErrKernelSize, width, height, MaxKernelSize)
	}
	return nil
}

// Rect builds a width x height kernel with every cell active.
func Rect(width, height int) (*Kernel, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}

	k := &Kernel{
		Width:  width,
		Height: height,
		mask:   make([]uint8, width*height),
	}
	for i := range k.mask {
		k.mask[i] = 1
	}
	return k, nil
}

// Square builds a size x size kernel with every cell active.
func Square(size int) (*Kernel, error) {
	return Rect(size, size)
}

// FromMask builds a kernel from a row-major mask. Any non-zero value is
// treated as active.
func FromMask(width, height int, mask []uint8) (*Kernel, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	if len(mask) != width*height {
		return nil, fmt.Errorf("%w: mask has %d cells, want %d", ErrKernelSize, len(mask), width*height)
	}

	k := &Kernel{Width: width, Height: height, mask: make([]uint8, len(mask))}
	for i, v := range mask {
		if v != 0 {
			k.mask[i] = 1
		}
	}
	return k, nil
}

// expressionFunctions are callable from kernel expressions.
var expressionFunctions = map[string]govaluate.ExpressionFunction{
	"abs": func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("abs takes 1 argument, got %d", len(args))
		}
		v, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("abs: non-numeric argument %v", args[0])
		}
		return math.Abs(v), nil
	},
	"max": func(args ...interface{}) (interface{}, error) {
		return foldNumbers("max", args, math.Max)
	},
	"min": func(args ...interface{}) (interface{}, error) {
		return foldNumbers("min", args, math.Min)
	},
}

func foldNumbers(name string, args []interface{}, f func(a, b float64) float64) (interface{}, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%s takes at least 1 argument", name)
	}
	var acc float64
	for i, a := range args {
		v, ok := a.(float64)
		if !ok {
			return nil, fmt.Errorf("%s: non-numeric argument %v", name, a)
		}
		if i == 0 {
			acc = v
			continue
		}
		acc = f(acc, v)
	}
	return acc, nil
}

// FromExpression builds a kernel whose cells are active where expr
// evaluates to true. The expression sees x and y (offset of the cell from
// the centre), w and h (kernel size), and rx and ry (w/2 and h/2).
//
//	x*x + y*y <= rx*rx        disk
//	abs(x) + abs(y) <= rx     diamond
//	x == 0 || y == 0          cross
func FromExpression(expr string, width, height int) (*Kernel, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}

	e, err := govaluate.NewEvaluableExpressionWithFunctions(expr, expressionFunctions)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrExpression, expr, err)
	}

	rx, ry := width/2, height/2
	params := map[string]interface{}{
		"w":  float64(width),
		"h":  float64(height),
		"rx": float64(rx),
		"ry": float64(ry),
	}

	k := &Kernel{Width: width, Height: height, mask: make([]uint8, width*height)}
	for ky := 0; ky < height; ky++ {
		for kx := 0; kx < width; kx++ {
			params["x"] = float64(kx - rx)
			params["y"] = float64(ky - ry)

			result, err := e.Evaluate(params)
			if err != nil {
				return nil, fmt.Errorf("%w: %q at (%d,%d): %v", ErrExpression, expr, kx-rx, ky-ry, err)
			}
			active, ok := result.(bool)
			if !ok {
				return nil, fmt.Errorf("%w: %q yields %T, want bool", ErrExpression, expr, result)
			}
			if active {
				k.mask[k.index(kx, ky)] = 1
			}
		}
	}
	return k, nil
}

func (k *Kernel) index(kx, ky int) int {
	return ky*k.Width + kx
}

// At reports whether the cell at column kx, row ky is active.
func (k *Kernel) At(kx, ky int) bool {
	return k.mask[k.index(kx, ky)] == 1
}

// Active returns the number of active cells.
func (k *Kernel) Active() int {
	n := 0
	for _, v := range k.mask {
		n += int(v)
	}
	return n
}

// Mask returns a copy of the mask.
func (k *Kernel) Mask() []uint8 {
	m := make([]uint8, len(k.mask))
	copy(m, k.mask)
	return m
}

// Release drops the mask. It is safe to call on a nil kernel.
func (k *Kernel) Release() {
	if k == nil {
		return
	}
	k.mask = nil
}

// String renders the mask one row per line, '1' for active cells.
func (k *Kernel) String() string {
	var sb strings.Builder
	for ky := 0; ky < k.Height; ky++ {
		for kx := 0; kx < k.Width; kx++ {
			if kx > 0 {
				sb.WriteByte(' ')
			}
			if k.At(kx, ky) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
