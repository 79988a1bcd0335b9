package morphology

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/roboco-io/bmpmorph/internal/binimg"
)

// State is the result of probing a neighbourhood with a kernel.
type State int

const (
	// Out: no active cell lands on a White pixel.
	Out State = iota
	// Hit: some but not all active cells land on White pixels.
	Hit
	// Fit: every active cell lands on a White pixel.
	Fit
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Out:
		return "out"
	case Hit:
		return "hit"
	case Fit:
		return "fit"
	default:
		return "unknown"
	}
}

func clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(min(v, hi), lo)
}

// Classify probes the neighbourhood of (x, y) with k. Each active kernel
// cell (kx, ky) maps to (x+kx-Width/2, y+ky-Height/2), clamped to the image
// on each axis. A kernel with no active cells always fits. An image with
// no pixels has nothing to hit, so every probe is Out.
func Classify(img *binimg.Image, k *Kernel, x, y int) State {
	if img.Width == 0 || img.Height == 0 {
		return Out
	}
	cx, cy := k.Width/2, k.Height/2

	size, hits := 0, 0
	for ky := 0; ky < k.Height; ky++ {
		iy := clamp(y+ky-cy, 0, img.Height-1)
		for kx := 0; kx < k.Width; kx++ {
			if !k.At(kx, ky) {
				continue
			}
			size++

			ix := clamp(x+kx-cx, 0, img.Width-1)
			if img.At(ix, iy) == binimg.White {
				hits++
			}
		}
	}

	switch {
	case hits == size:
		return Fit
	case hits == 0:
		return Out
	default:
		return Hit
	}
}

func checkArgs(img *binimg.Image, k *Kernel) error {
	if img == nil || k == nil {
		return ErrNilArgument
	}
	if len(img.Matrix) != img.Width*img.Height || len(k.mask) != k.Width*k.Height {
		return fmt.Errorf("%w: released or inconsistent buffer", ErrNilArgument)
	}
	return nil
}

func snapshot(img *binimg.Image) (*binimg.Image, error) {
	snap, err := img.Clone()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocation, err)
	}
	return snap, nil
}

// Dilate turns every Black pixel whose neighbourhood is Hit White. White
// pixels are never changed.
func Dilate(img *binimg.Image, k *Kernel) error {
	if err := checkArgs(img, k); err != nil {
		return err
	}
	snap, err := snapshot(img)
	if err != nil {
		return err
	}
	defer snap.Release()

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if snap.At(x, y) == binimg.Black && Classify(snap, k, x, y) == Hit {
				img.Set(x, y, binimg.White)
			}
		}
	}
	return nil
}

// Erode turns every White pixel whose neighbourhood is not Fit Black.
// Black pixels are never changed.
func Erode(img *binimg.Image, k *Kernel) error {
	if err := checkArgs(img, k); err != nil {
		return err
	}
	snap, err := snapshot(img)
	if err != nil {
		return err
	}
	defer snap.Release()

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if snap.At(x, y) == binimg.White && Classify(snap, k, x, y) != Fit {
				img.Set(x, y, binimg.Black)
			}
		}
	}
	return nil
}

// Open dilates img and then erodes the result with the same kernel.
func Open(img *binimg.Image, k *Kernel) error {
	if err := checkArgs(img, k); err != nil {
		return err
	}
	if err := Dilate(img, k); err != nil {
		return fmt.Errorf("%w: dilation: %w", ErrComposite, err)
	}
	if err := Erode(img, k); err != nil {
		return fmt.Errorf("%w: erosion: %w", ErrComposite, err)
	}
	return nil
}

// Close erodes img and then dilates the result with the same kernel.
func Close(img *binimg.Image, k *Kernel) error {
	if err := checkArgs(img, k); err != nil {
		return err
	}
	if err := Erode(img, k); err != nil {
		return fmt.Errorf("%w: erosion: %w", ErrComposite, err)
	}
	if err := Dilate(img, k); err != nil {
		return fmt.Errorf("%w: dilation: %w", ErrComposite, err)
	}
	return nil
}

// Operation names one of the four transforms.
type Operation int

const (
	OpDilate Operation = iota
	OpErode
	OpOpen
	OpClose
)

// String returns the string representation of the operation.
func (op Operation) String() string {
	switch op {
	case OpDilate:
		return "dilate"
	case OpErode:
		return "erode"
	case OpOpen:
		return "open"
	case OpClose:
		return "close"
	default:
		return "unknown"
	}
}

// Operations lists every operation in declaration order.
func Operations() []Operation {
	return []Operation{OpDilate, OpErode, OpOpen, OpClose}
}

// ParseOperation parses an operation name as returned by String. Common
// noun forms ("dilation", "opening", ...) are accepted too.
func ParseOperation(name string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dilate", "dilation":
		return OpDilate, nil
	case "erode", "erosion":
		return OpErode, nil
	case "open", "opening":
		return OpOpen, nil
	case "close", "closing":
		return OpClose, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
}

// Apply runs op on img with kernel k.
func Apply(op Operation, img *binimg.Image, k *Kernel) error {
	switch op {
	case OpDilate:
		return Dilate(img, k)
	case OpErode:
		return Erode(img, k)
	case OpOpen:
		return Open(img, k)
	case OpClose:
		return Close(img, k)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownOperation, int(op))
	}
}
