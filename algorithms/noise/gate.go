package noise

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/RyanBlaney/sonido-pitch/algorithms/common"
	"github.com/RyanBlaney/sonido-pitch/algorithms/spectral"
)

// GateConfig holds the spectral gate's tunables
type GateConfig struct {
	// ThresholdDB sets how far above the noise floor a bin must rise to
	// pass untouched: bins below noise * 10^(ThresholdDB/20) are
	// attenuated. Default 6 dB (about a 2x multiplier).
	ThresholdDB float64 `json:"threshold_db"`

	// SmoothingWindow is the number of adjacent bins averaged before
	// thresholding. 1 means no smoothing.
	SmoothingWindow int `json:"smoothing_window"`
}

// DefaultGateConfig returns a 6 dB threshold with no bin smoothing
func DefaultGateConfig() GateConfig {
	return GateConfig{
		ThresholdDB:     6.0,
		SmoothingWindow: 1,
	}
}

func (c GateConfig) validate() error {
	if c.SmoothingWindow < 1 {
		return fmt.Errorf("smoothing window must be at least 1, got %d", c.SmoothingWindow)
	}
	if math.IsNaN(c.ThresholdDB) || math.IsInf(c.ThresholdDB, 0) {
		return fmt.Errorf("threshold must be finite, got %g dB", c.ThresholdDB)
	}
	return nil
}

// gateState is an immutable snapshot of profile and config. Process
// reads one snapshot for its whole run, so an update lands entirely
// before or entirely after any in-flight call.
type gateState struct {
	profile         *spectral.Spectrum
	noiseMagnitudes []float64
	config          GateConfig
}

// SpectralGate attenuates frequency bins whose magnitude sits close to
// a recorded noise profile. The gate carries no state across frames:
// the profile and config stay fixed until explicitly replaced via
// UpdateProfile or UpdateConfig, and Process is a pure function of
// (gate state, frame).
type SpectralGate struct {
	state atomic.Pointer[gateState]
}

// NewSpectralGate creates a gate from a noise profile and config
func NewSpectralGate(profile *spectral.Spectrum, cfg GateConfig) (*SpectralGate, error) {
	if profile == nil {
		return nil, fmt.Errorf("noise profile is required")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	g := &SpectralGate{}
	g.state.Store(newGateState(profile, cfg))
	return g, nil
}

func newGateState(profile *spectral.Spectrum, cfg GateConfig) *gateState {
	return &gateState{
		profile:         profile,
		noiseMagnitudes: common.MovingAverage(profile.Magnitudes(), cfg.SmoothingWindow),
		config:          cfg,
	}
}

// Process runs one frame through the gate: forward transform, compare
// each (smoothed) bin magnitude against the noise floor plus the
// threshold, scale quiet bins toward zero preserving their phase, and
// invert back to samples. Output length equals input length. Repeated
// identical calls give identical output.
func (g *SpectralGate) Process(frame []float64) ([]float64, error) {
	if len(frame) == 0 {
		return []float64{}, nil
	}
	if common.HasNonFinite(frame) {
		return nil, fmt.Errorf("input contains NaN or Inf samples")
	}

	state := g.state.Load()
	thresholdMultiplier := dbToLinear(state.config.ThresholdDB)

	spectrum := spectral.Forward(frame, state.profile.SampleRate)
	smoothed := common.MovingAverage(spectrum.Magnitudes(), state.config.SmoothingWindow)

	for i := range spectrum.Bins {
		var noiseLevel float64
		if i < len(state.noiseMagnitudes) {
			noiseLevel = state.noiseMagnitudes[i]
		}
		if noiseLevel <= 0 {
			continue
		}

		threshold := noiseLevel * thresholdMultiplier
		if smoothed[i] < threshold {
			// Soft gate: scale toward zero in proportion to how far
			// below the threshold the bin sits, keeping its phase
			gain := common.Clamp(smoothed[i]/threshold, 0.0, 1.0)
			spectrum.Bins[i] *= complex(gain, 0)
		}
	}

	return spectrum.Invert()[:len(frame)], nil
}

// UpdateProfile atomically replaces the noise profile, keeping the
// current config
func (g *SpectralGate) UpdateProfile(profile *spectral.Spectrum) error {
	if profile == nil {
		return fmt.Errorf("noise profile is required")
	}
	g.state.Store(newGateState(profile, g.state.Load().config))
	return nil
}

// UpdateConfig atomically replaces the config, keeping the current
// noise profile
func (g *SpectralGate) UpdateConfig(cfg GateConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	g.state.Store(newGateState(g.state.Load().profile, cfg))
	return nil
}

// Profile returns the current noise profile
func (g *SpectralGate) Profile() *spectral.Spectrum {
	return g.state.Load().profile
}

// Config returns the current configuration
func (g *SpectralGate) Config() GateConfig {
	return g.state.Load().config
}

// dbToLinear converts decibels to a linear amplitude multiplier
func dbToLinear(db float64) float64 {
	return math.Pow(10.0, db/20.0)
}
