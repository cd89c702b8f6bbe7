// Package filters provides time-domain filtering for isolating the
// frequency range of interest before pitch analysis.
package filters

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-pitch/algorithms/common"
)

// Default cutoffs for isolating the human vocal range. Some callers use
// the tighter 800 Hz upper cutoff for low-voice material; both cutoffs
// are always explicit parameters, never baked into the filter.
const (
	VocalLowHz        = 80.0
	VocalHighHz       = 1200.0
	VocalHighNarrowHz = 800.0
)

// Bandpass implements a digital bandpass filter using biquad topology.
//
// Coefficients follow the cookbook formulas from Robert Bristow-Johnson's
// "Cookbook formulae for audio EQ biquad filter coefficients"
// (https://webaudio.github.io/Audio-EQ-Cookbook/audio-eq-cookbook.html),
// centered at (low+high)/2 with Q = center/(high-low). Coefficients are
// always derived from the sample rate the caller passes in, so cutoffs
// stay correct regardless of the actual capture rate.
type Bandpass struct {
	sampleRate int
	lowHz      float64
	highHz     float64

	// Biquad coefficients, normalized so a0 == 1
	b0, b1, b2 float64
	a1, a2     float64

	// Direct form II delay line
	w1, w2 float64
}

// NewBandpass creates a bandpass filter passing [lowHz, highHz] at the
// given sample rate. Fails fast on non-positive rate, cutoffs outside
// (0, Nyquist), or low >= high.
func NewBandpass(sampleRate int, lowHz, highHz float64) (*Bandpass, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	nyquist := float64(sampleRate) / 2
	if lowHz <= 0 {
		return nil, fmt.Errorf("low cutoff must be positive, got %g Hz", lowHz)
	}
	if highHz >= nyquist {
		return nil, fmt.Errorf("high cutoff %g Hz must be below Nyquist (%g Hz)", highHz, nyquist)
	}
	if lowHz >= highHz {
		return nil, fmt.Errorf("low cutoff %g Hz must be below high cutoff %g Hz", lowHz, highHz)
	}

	bp := &Bandpass{
		sampleRate: sampleRate,
		lowHz:      lowHz,
		highHz:     highHz,
	}
	bp.computeCoefficients()
	return bp, nil
}

// computeCoefficients calculates the biquad coefficients using the
// cookbook bandpass (constant 0 dB peak gain) formula.
func (bp *Bandpass) computeCoefficients() {
	center := (bp.lowHz + bp.highHz) / 2
	q := center / (bp.highHz - bp.lowHz)

	w0 := 2.0 * math.Pi * center / float64(bp.sampleRate)
	cosW0 := math.Cos(w0)
	sinW0 := math.Sin(w0)
	alpha := sinW0 / (2.0 * q)

	a0 := 1.0 + alpha
	bp.b0 = alpha / a0
	bp.b1 = 0.0
	bp.b2 = -alpha / a0
	bp.a1 = -2.0 * cosW0 / a0
	bp.a2 = (1.0 - alpha) / a0
}

// Process filters a single sample using the Direct Form II difference
// equation:
//
//	w[n] = x[n] - a1*w[n-1] - a2*w[n-2]
//	y[n] = b0*w[n] + b1*w[n-1] + b2*w[n-2]
func (bp *Bandpass) Process(input float64) float64 {
	w := input - bp.a1*bp.w1 - bp.a2*bp.w2
	output := bp.b0*w + bp.b1*bp.w1 + bp.b2*bp.w2

	bp.w2 = bp.w1
	bp.w1 = w

	return output
}

// ProcessBuffer filters an entire buffer. Output length equals input
// length; no gain compensation is applied beyond what the filter
// inherently introduces.
func (bp *Bandpass) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	for i, sample := range input {
		output[i] = bp.Process(sample)
	}
	return output
}

// Reset clears the filter's delay line. Call this between
// discontinuous audio segments.
func (bp *Bandpass) Reset() {
	bp.w1, bp.w2 = 0.0, 0.0
}

// Cutoffs returns the configured low and high cutoff frequencies
func (bp *Bandpass) Cutoffs() (lowHz, highHz float64) {
	return bp.lowHz, bp.highHz
}

// FrequencyResponse computes the magnitude response (linear scale) at
// the given frequency, evaluated as
// |H(e^jw)| = |(b0 + b1*e^-jw + b2*e^-j2w) / (1 + a1*e^-jw + a2*e^-j2w)|
func (bp *Bandpass) FrequencyResponse(frequency float64) float64 {
	w := 2.0 * math.Pi * frequency / float64(bp.sampleRate)

	cosW := math.Cos(w)
	sinW := math.Sin(w)
	cos2W := math.Cos(2 * w)
	sin2W := math.Sin(2 * w)

	numReal := bp.b0 + bp.b1*cosW + bp.b2*cos2W
	numImag := -bp.b1*sinW - bp.b2*sin2W
	denReal := 1.0 + bp.a1*cosW + bp.a2*cos2W
	denImag := -bp.a1*sinW - bp.a2*sin2W

	num := math.Sqrt(numReal*numReal + numImag*numImag)
	den := math.Sqrt(denReal*denReal + denImag*denImag)

	return num / den
}

// BandpassBuffer filters samples through a fresh bandpass filter in one
// call. State does not carry over between calls, so identical input
// always yields identical output. Rejects non-finite samples.
func BandpassBuffer(samples []float64, sampleRate int, lowHz, highHz float64) ([]float64, error) {
	bp, err := NewBandpass(sampleRate, lowHz, highHz)
	if err != nil {
		return nil, err
	}
	if common.HasNonFinite(samples) {
		return nil, fmt.Errorf("input contains NaN or Inf samples")
	}
	return bp.ProcessBuffer(samples), nil
}
