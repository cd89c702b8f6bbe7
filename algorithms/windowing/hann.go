// Package windowing provides window functions for optional frame
// conditioning ahead of the forward transform. Spectrogram analysis is
// rectangular (unwindowed) by default; callers opt in per call.
package windowing

import (
	"fmt"
	"math"
)

// Hann is a periodic Hann window of a fixed size
type Hann struct {
	size         int
	coefficients []float64
}

// NewHann creates a Hann window for frames of the given size
func NewHann(size int) *Hann {
	h := &Hann{size: size}
	h.coefficients = make([]float64, size)
	for i := range size {
		h.coefficients[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/float64(size)))
	}
	return h
}

// ApplyInPlace multiplies the frame by the window coefficients
func (h *Hann) ApplyInPlace(frame []float64) error {
	if len(frame) != h.size {
		return fmt.Errorf("frame length (%d) doesn't match window size (%d)", len(frame), h.size)
	}

	for i := range frame {
		frame[i] *= h.coefficients[i]
	}

	return nil
}

// Size returns the window size
func (h *Hann) Size() int {
	return h.size
}
