package spectral

import (
	"fmt"

	"github.com/RyanBlaney/sonido-pitch/algorithms/common"
	"github.com/RyanBlaney/sonido-pitch/algorithms/framing"
)

// Window is an optional per-frame window function applied before the
// forward transform. A nil Window leaves frames rectangular, which is
// the default: the original analysis path applied no window, and the
// resulting spectral leakage is an accepted fidelity trade-off.
type Window interface {
	ApplyInPlace(frame []float64) error
}

// Spectrogram is a sequence of spectra computed from overlapping frames
// of one buffer. Frame i starts at sample i*StepSize, so its time
// offset is i*StepSize/SampleRate seconds.
type Spectrogram struct {
	Spectra    []*Spectrum `json:"-"`
	WindowSize int         `json:"window_size"`
	StepSize   int         `json:"step_size"`
	SampleRate int         `json:"sample_rate"`
}

// ComputeSpectrogram frames the buffer and runs the forward transform
// on each frame. win may be nil for no windowing (the default
// behavior). Fails fast on degenerate window/step configuration and on
// non-finite samples; a buffer shorter than one window produces an
// empty spectrogram.
func ComputeSpectrogram(samples []float64, sampleRate, windowSize, stepSize int, win Window) (*Spectrogram, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if windowSize <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %d", windowSize)
	}
	if stepSize <= 0 {
		return nil, fmt.Errorf("step size must be positive, got %d", stepSize)
	}
	if common.HasNonFinite(samples) {
		return nil, fmt.Errorf("input contains NaN or Inf samples")
	}

	spectra := make([]*Spectrum, 0, framing.Count(len(samples), windowSize, stepSize))
	for frame := range framing.Frames(samples, windowSize, stepSize) {
		if win != nil {
			if err := win.ApplyInPlace(frame); err != nil {
				return nil, fmt.Errorf("applying window: %w", err)
			}
		}
		spectra = append(spectra, Forward(frame, sampleRate))
	}

	return &Spectrogram{
		Spectra:    spectra,
		WindowSize: windowSize,
		StepSize:   stepSize,
		SampleRate: sampleRate,
	}, nil
}

// NumFrames returns the number of time steps
func (sg *Spectrogram) NumFrames() int {
	return len(sg.Spectra)
}

// NumBins returns the number of positive-frequency bins per frame
func (sg *Spectrogram) NumBins() int {
	if len(sg.Spectra) == 0 {
		return 0
	}
	return sg.Spectra[0].Len() / 2
}

// FrameTime returns the start time of frame i in seconds
func (sg *Spectrogram) FrameTime(i int) float64 {
	return float64(i*sg.StepSize) / float64(sg.SampleRate)
}

// MagnitudeMatrix returns the positive-frequency magnitudes for every
// frame as a time x frequency matrix, the form visualization
// collaborators consume.
func (sg *Spectrogram) MagnitudeMatrix() [][]float64 {
	matrix := make([][]float64, len(sg.Spectra))
	for i, spectrum := range sg.Spectra {
		matrix[i] = spectrum.HalfMagnitudes()
	}
	return matrix
}
