// Package pitch composes the analysis building blocks into the
// streaming surface callers use: signal cleaning ahead of detection,
// and frame-by-frame pitch tracking over a buffer.
package pitch

import (
	"fmt"

	"github.com/RyanBlaney/sonido-pitch/algorithms/common"
	"github.com/RyanBlaney/sonido-pitch/algorithms/framing"
	"github.com/RyanBlaney/sonido-pitch/algorithms/tonal"
	"github.com/RyanBlaney/sonido-pitch/logging"
)

// Estimate is one per-frame tracking result. Voiced is false when the
// detector found no reliable periodicity in the frame; Pitch is only
// meaningful when Voiced is true.
type Estimate struct {
	Pitch  tonal.Pitch `json:"pitch"`
	Voiced bool        `json:"voiced"`
}

// Estimates is the per-frame result sequence, in frame order
type Estimates []Estimate

// Frequencies flattens the sequence to one frequency per frame, with
// 0.0 standing in for unvoiced frames.
func (e Estimates) Frequencies() []float64 {
	freqs := make([]float64, len(e))
	for i, est := range e {
		if est.Voiced {
			freqs[i] = est.Pitch.Frequency
		}
	}
	return freqs
}

// TrackerConfig holds the tracker's framing and detection tunables
type TrackerConfig struct {
	// WindowSize is the analysis frame length in samples
	WindowSize int `json:"window_size"`

	// StepSize is the advance between frame starts in samples
	StepSize int `json:"step_size"`

	// PowerThreshold short-circuits frames whose mean power falls below
	// it to unvoiced without running the detector.
	PowerThreshold float64 `json:"power_threshold"`

	// Yin configures the per-frame detector
	Yin tonal.YinConfig `json:"yin"`
}

// DefaultTrackerConfig returns a 2048-sample window with a 256-sample
// step and the default detector settings.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		WindowSize:     2048,
		StepSize:       256,
		PowerThreshold: 1e-4,
		Yin:            DefaultYinConfig(),
	}
}

// DefaultYinConfig re-exports the detector defaults so most callers
// only import this package.
func DefaultYinConfig() tonal.YinConfig {
	return tonal.DefaultYinConfig()
}

// Tracker drives the YIN detector across overlapping frames of a
// buffer. It carries no state between frames: each frame is detected
// independently, and any temporal smoothing belongs to the caller.
type Tracker struct {
	config   TrackerConfig
	detector *tonal.Yin
}

// NewTracker creates a tracker, failing fast on invalid configuration
func NewTracker(config TrackerConfig) (*Tracker, error) {
	if config.WindowSize <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %d", config.WindowSize)
	}
	if config.StepSize <= 0 {
		return nil, fmt.Errorf("step size must be positive, got %d", config.StepSize)
	}
	if config.PowerThreshold < 0 {
		return nil, fmt.Errorf("power threshold must be non-negative, got %g", config.PowerThreshold)
	}

	detector, err := tonal.NewYin(config.Yin)
	if err != nil {
		return nil, err
	}

	return &Tracker{config: config, detector: detector}, nil
}

// Config returns the tracker's configuration
func (t *Tracker) Config() TrackerConfig {
	return t.config
}

// Track produces one estimate per frame, in frame order. The number of
// frames follows the framing count formula; a buffer shorter than one
// window yields an empty sequence. Frame i starts at sample
// i*StepSize, so collaborators can recover its time offset as
// i*StepSize/sampleRate.
func (t *Tracker) Track(samples []float64, sampleRate int) (Estimates, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if common.HasNonFinite(samples) {
		return nil, fmt.Errorf("input contains NaN or Inf samples")
	}

	estimates := make(Estimates, 0, framing.Count(len(samples), t.config.WindowSize, t.config.StepSize))
	for frame := range framing.Frames(samples, t.config.WindowSize, t.config.StepSize) {
		// Skip the detector entirely on low-power frames
		if common.Power(frame) < t.config.PowerThreshold {
			estimates = append(estimates, Estimate{})
			continue
		}

		detected, err := t.detector.Detect(frame, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", len(estimates), err)
		}
		if detected == nil {
			estimates = append(estimates, Estimate{})
			continue
		}
		estimates = append(estimates, Estimate{Pitch: *detected, Voiced: true})
	}

	logging.Debug("tracked buffer", logging.Fields{
		"frames":      len(estimates),
		"window_size": t.config.WindowSize,
		"step_size":   t.config.StepSize,
	})

	return estimates, nil
}
