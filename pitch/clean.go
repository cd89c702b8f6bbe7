package pitch

import (
	"fmt"

	"github.com/RyanBlaney/sonido-pitch/algorithms/filters"
	"github.com/RyanBlaney/sonido-pitch/algorithms/noise"
	"github.com/RyanBlaney/sonido-pitch/algorithms/spectral"
	"github.com/RyanBlaney/sonido-pitch/logging"
)

// Clean conditions a buffer ahead of pitch detection. With a noise
// profile it runs the spectral gate; without one it falls back to
// bandpass filtering of the vocal range. Output length and sample rate
// match the input.
func Clean(samples []float64, sampleRate int, profile *spectral.Spectrum, gateCfg noise.GateConfig) ([]float64, error) {
	if profile == nil {
		logging.Debug("no noise profile, falling back to bandpass cleaning")
		return filters.BandpassBuffer(samples, sampleRate, filters.VocalLowHz, filters.VocalHighHz)
	}

	gate, err := noise.NewSpectralGate(profile, gateCfg)
	if err != nil {
		return nil, fmt.Errorf("building spectral gate: %w", err)
	}
	return gate.Process(samples)
}

// TrackCleaned runs the full pipeline: estimate a noise profile from
// the buffer itself, clean with the gate (or the bandpass fallback when
// no quiet region is found), then track pitch frame by frame.
func TrackCleaned(samples []float64, sampleRate int, profilerCfg noise.ProfilerConfig, gateCfg noise.GateConfig, trackerCfg TrackerConfig) (Estimates, error) {
	profile, err := noise.EstimateProfile(samples, sampleRate, profilerCfg)
	if err != nil {
		return nil, fmt.Errorf("estimating noise profile: %w", err)
	}

	cleaned, err := Clean(samples, sampleRate, profile, gateCfg)
	if err != nil {
		return nil, fmt.Errorf("cleaning buffer: %w", err)
	}

	tracker, err := NewTracker(trackerCfg)
	if err != nil {
		return nil, err
	}
	return tracker.Track(cleaned, sampleRate)
}
