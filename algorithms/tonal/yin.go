// Package tonal estimates the fundamental frequency of near-periodic
// signals.
package tonal

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-pitch/algorithms/common"
)

// Pitch is a single fundamental-frequency estimate. Clarity is a
// confidence score in [0, 1] (1 minus the normalized difference at the
// detected period), not a probability.
type Pitch struct {
	Frequency float64 `json:"frequency"`
	Clarity   float64 `json:"clarity"`
}

// YinConfig holds the YIN detector's tunables
type YinConfig struct {
	// Threshold is the absolute CMNDF threshold for accepting a period
	// candidate. Typical values are 0.1-0.2; lower is stricter.
	Threshold float64 `json:"threshold"`

	// MinPower is the minimum mean frame power; quieter frames are
	// treated as unvoiced without running the period search.
	MinPower float64 `json:"min_power"`
}

// DefaultYinConfig returns the conventional YIN threshold of 0.15 with
// a small power floor that rejects silence and near-silence.
func DefaultYinConfig() YinConfig {
	return YinConfig{
		Threshold: 0.15,
		MinPower:  1e-4,
	}
}

func (c YinConfig) validate() error {
	if c.Threshold <= 0 || c.Threshold >= 1 {
		return fmt.Errorf("threshold must be in (0, 1), got %g", c.Threshold)
	}
	if c.MinPower < 0 || math.IsNaN(c.MinPower) {
		return fmt.Errorf("min power must be non-negative, got %g", c.MinPower)
	}
	return nil
}

// Yin implements the YIN fundamental-frequency estimator
// (de Cheveigné & Kawahara, 2002): a cumulative mean normalized
// difference function over candidate lags, an absolute-threshold search
// for the first qualifying dip, and parabolic refinement of the period.
//
// The absolute-threshold search is load-bearing: taking the first dip
// below the threshold rather than the global minimum is what avoids
// locking onto subharmonics an octave low. Do not replace it with a
// global-minimum scan.
//
// A Yin value holds no internal buffers shared between calls; instances
// are safe to hand from one goroutine to another, one user at a time.
type Yin struct {
	config YinConfig
}

// NewYin creates a detector with the given config
func NewYin(config YinConfig) (*Yin, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &Yin{config: config}, nil
}

// Detect estimates the fundamental frequency of one frame. Returns nil
// when no reliable periodicity is found: silent or sub-MinPower frames,
// frames with no CMNDF dip below the threshold, and candidates mapping
// below 1 Hz or above Nyquist. An error is returned only for invalid
// input, never for absence of pitch.
func (y *Yin) Detect(frame []float64, sampleRate int) (*Pitch, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if common.HasNonFinite(frame) {
		return nil, fmt.Errorf("input contains NaN or Inf samples")
	}

	maxLag := len(frame) / 2
	if maxLag < 2 {
		return nil, nil
	}

	if common.Power(frame) < y.config.MinPower {
		return nil, nil
	}

	cmndf := cumulativeMeanNormalizedDifference(frame)

	lag := firstDipBelow(cmndf, y.config.Threshold)
	if lag < 0 {
		return nil, nil
	}

	period := common.ParabolicPeak(cmndf, lag)
	if period <= 0 {
		return nil, nil
	}

	frequency := float64(sampleRate) / period
	nyquist := float64(sampleRate) / 2
	if frequency < 1.0 || frequency > nyquist {
		return nil, nil
	}

	return &Pitch{
		Frequency: frequency,
		Clarity:   common.Clamp(1.0-cmndf[lag], 0.0, 1.0),
	}, nil
}

// cumulativeMeanNormalizedDifference computes YIN's d'(tau) for lags in
// [0, len/2). d'(0) is defined as 1.
func cumulativeMeanNormalizedDifference(frame []float64) []float64 {
	maxLag := len(frame) / 2

	diff := make([]float64, maxLag)
	for tau := 1; tau < maxLag; tau++ {
		sum := 0.0
		for j := 0; j < maxLag; j++ {
			delta := frame[j] - frame[j+tau]
			sum += delta * delta
		}
		diff[tau] = sum
	}

	cmndf := make([]float64, maxLag)
	cmndf[0] = 1.0

	runningSum := 0.0
	for tau := 1; tau < maxLag; tau++ {
		runningSum += diff[tau]
		if runningSum == 0 {
			// A perfectly flat frame; no periodicity information
			cmndf[tau] = 1.0
			continue
		}
		cmndf[tau] = diff[tau] * float64(tau) / runningSum
	}

	return cmndf
}

// firstDipBelow scans lags in order and returns the bottom of the first
// dip whose CMNDF value falls below threshold, or -1 when none
// qualifies.
func firstDipBelow(cmndf []float64, threshold float64) int {
	for tau := 2; tau < len(cmndf); tau++ {
		if cmndf[tau] >= threshold {
			continue
		}
		// Walk down to the bottom of this dip
		for tau+1 < len(cmndf) && cmndf[tau+1] < cmndf[tau] {
			tau++
		}
		return tau
	}
	return -1
}
