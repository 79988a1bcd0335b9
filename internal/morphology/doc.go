// Package morphology implements binary morphology over binimg images:
// neighbourhood classification against a structuring element, dilation,
// erosion, opening and closing.
//
// Kernel probes that fall outside the image read the nearest edge pixel
// (edge replication). Dilation and erosion read from a snapshot of the
// image, so traversal order never affects the result.
package morphology

import "errors"

var (
	// ErrNilArgument is returned when the image or kernel is missing.
	ErrNilArgument = errors.New("morphology: nil image or kernel")
	// ErrAllocation is returned when the working snapshot cannot be made.
	ErrAllocation = errors.New("morphology: snapshot allocation failed")
	// ErrComposite wraps the failing step of an opening or closing.
	ErrComposite = errors.New("morphology: composite operation failed")
	// ErrKernelSize reports kernel dimensions outside [0, MaxKernelSize].
	ErrKernelSize = errors.New("morphology: kernel size out of range")
	// ErrExpression reports a kernel expression that cannot be evaluated.
	ErrExpression = errors.New("morphology: invalid kernel expression")
	// ErrUnknownOperation reports an operation name ParseOperation does not know.
	ErrUnknownOperation = errors.New("morphology: unknown operation")
)
