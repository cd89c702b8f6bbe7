// Package noise estimates background-noise profiles from quiet audio
// and suppresses that noise with a spectral gate.
package noise

import (
	"fmt"
	"time"

	"github.com/RyanBlaney/sonido-pitch/algorithms/common"
	"github.com/RyanBlaney/sonido-pitch/algorithms/spectral"
	"github.com/RyanBlaney/sonido-pitch/logging"
)

// ProfilerConfig controls where the profiler looks for a quiet segment
// and how quiet it has to be. The search heuristic is deliberately
// simple and is known to be fragile: a fixed time-offset candidate
// region scored by a single z-score threshold. Changing it changes
// what the gate ends up suppressing, so the behavior is kept as-is and
// only its constants are configurable.
type ProfilerConfig struct {
	// SearchStart and SearchEnd bound the candidate noise region,
	// measured from the start of the buffer.
	SearchStart time.Duration `json:"search_start"`
	SearchEnd   time.Duration `json:"search_end"`

	// ZScoreThreshold is the (negative) number of standard deviations
	// the candidate window's RMS must fall below the mean RMS of all
	// equally sized windows for the candidate to count as noise.
	ZScoreThreshold float64 `json:"z_score_threshold"`
}

// DefaultProfilerConfig returns the conventional search window of
// 200ms-1500ms with a one-standard-deviation quietness requirement.
func DefaultProfilerConfig() ProfilerConfig {
	return ProfilerConfig{
		SearchStart:     200 * time.Millisecond,
		SearchEnd:       1500 * time.Millisecond,
		ZScoreThreshold: -1.0,
	}
}

func (c ProfilerConfig) validate() error {
	if c.SearchStart < 0 {
		return fmt.Errorf("search start must not be negative, got %v", c.SearchStart)
	}
	if c.SearchEnd <= c.SearchStart {
		return fmt.Errorf("search end (%v) must be after search start (%v)", c.SearchEnd, c.SearchStart)
	}
	if c.ZScoreThreshold >= 0 {
		return fmt.Errorf("z-score threshold must be negative, got %g", c.ZScoreThreshold)
	}
	return nil
}

// EstimateProfile searches the candidate region for background noise
// and returns its spectrum. A nil spectrum with nil error means no
// sufficiently quiet segment was found; callers fall back to
// bandpass-only cleaning in that case. This is a best-effort heuristic,
// not a guarantee.
func EstimateProfile(samples []float64, sampleRate int, cfg ProfilerConfig) (*spectral.Spectrum, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if common.HasNonFinite(samples) {
		return nil, fmt.Errorf("input contains NaN or Inf samples")
	}

	window := noiseWindow(samples, sampleRate, cfg)
	if window == nil {
		return nil, nil
	}

	return spectral.Forward(window, sampleRate), nil
}

// noiseWindow extracts the candidate segment and accepts it only when
// its RMS sits well below the buffer-wide RMS distribution.
func noiseWindow(samples []float64, sampleRate int, cfg ProfilerConfig) []float64 {
	startIdx := int(cfg.SearchStart.Seconds() * float64(sampleRate))
	endIdx := min(int(cfg.SearchEnd.Seconds()*float64(sampleRate)), len(samples))
	if startIdx >= endIdx {
		return nil
	}

	candidate := samples[startIdx:endIdx]
	windowSize := len(candidate)

	// RMS of every window-sized chunk across the whole buffer,
	// including the trailing partial chunk
	var chunkRMS []float64
	for start := 0; start < len(samples); start += windowSize {
		end := min(start+windowSize, len(samples))
		chunkRMS = append(chunkRMS, common.RMS(samples[start:end]))
	}

	mean := common.Mean(chunkRMS)
	stddev := common.PopStdDev(chunkRMS)
	// A spread indistinguishable from rounding noise means the buffer is
	// uniformly loud (or uniformly silent); no chunk is meaningfully quiet
	if stddev <= mean*1e-9 {
		return nil
	}

	zscore := (common.RMS(candidate) - mean) / stddev
	if zscore >= cfg.ZScoreThreshold {
		logging.Debug("no suitable noise window found", logging.Fields{
			"zscore":    zscore,
			"threshold": cfg.ZScoreThreshold,
		})
		return nil
	}

	return candidate
}
