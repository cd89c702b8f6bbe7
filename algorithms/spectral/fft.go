package spectral

import (
	"github.com/mjibson/go-dsp/fft"
)

// FFT wraps the forward and inverse transforms from mjibson/go-dsp.
// Instances hold no state of their own; go-dsp memoizes its radix
// factorizations internally, so repeated transforms of the same size
// reuse the cached plan.
type FFT struct{}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute computes the forward transform of a real-valued signal. The
// transform is sized exactly to the input; no zero-padding is applied,
// so N input samples produce N complex bins.
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	// go-dsp handles all sizes, including non-power-of-2
	return fft.FFTReal(x)
}

// ComputeInverse computes the inverse transform
func (f *FFT) ComputeInverse(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	return fft.IFFT(x)
}

// ComputeInverseReal computes the inverse transform and returns the
// real part only
func (f *FFT) ComputeInverseReal(x []complex128) []float64 {
	if len(x) == 0 {
		return []float64{}
	}

	result := fft.IFFT(x)
	realResult := make([]float64, len(result))

	for i, val := range result {
		realResult[i] = real(val)
	}

	return realResult
}
