package spectral

import (
	"math/cmplx"
)

// Spectrum holds the full complex spectrum of one analysis frame
// together with the sample rate the frame was recorded at. The bin
// count equals the frame length; bin k is centered at
// k * SampleRate / Len() Hz, ordered low to high.
type Spectrum struct {
	Bins       []complex128 `json:"-"`
	SampleRate int          `json:"sample_rate"`
}

// Forward computes the spectrum of a real-valued frame. The transform
// is sized exactly to the frame, so inverting an unmodified spectrum
// recovers the frame within numerical tolerance.
func Forward(frame []float64, sampleRate int) *Spectrum {
	f := NewFFT()
	return &Spectrum{
		Bins:       f.Compute(frame),
		SampleRate: sampleRate,
	}
}

// Len returns the number of frequency bins
func (s *Spectrum) Len() int {
	return len(s.Bins)
}

// BinSpacing returns the frequency spacing between adjacent bins in Hz
func (s *Spectrum) BinSpacing() float64 {
	if len(s.Bins) == 0 {
		return 0.0
	}
	return float64(s.SampleRate) / float64(len(s.Bins))
}

// Magnitudes returns the magnitude of every bin, one non-negative value
// per bin, ordered low to high frequency. The returned slice is freshly
// allocated and does not alias the spectrum.
func (s *Spectrum) Magnitudes() []float64 {
	mags := make([]float64, len(s.Bins))
	for i, bin := range s.Bins {
		mags[i] = cmplx.Abs(bin)
	}
	return mags
}

// HalfMagnitudes returns magnitudes for the first Len()/2 bins, the
// positive-frequency half used for display. For real input the upper
// half mirrors the lower and carries no extra information.
func (s *Spectrum) HalfMagnitudes() []float64 {
	mags := make([]float64, len(s.Bins)/2)
	for i := range mags {
		mags[i] = cmplx.Abs(s.Bins[i])
	}
	return mags
}

// Invert transforms the spectrum back to a real sample sequence of
// length Len(). Any imaginary residue from bin modification is dropped.
func (s *Spectrum) Invert() []float64 {
	f := NewFFT()
	return f.ComputeInverseReal(s.Bins)
}

// Clone returns a deep copy of the spectrum
func (s *Spectrum) Clone() *Spectrum {
	bins := make([]complex128, len(s.Bins))
	copy(bins, s.Bins)
	return &Spectrum{Bins: bins, SampleRate: s.SampleRate}
}
