// Package framing slices sample buffers into fixed-size analysis
// frames with a configurable step (hop) between frame starts. A step
// smaller than the window produces overlapping frames, equal tiles the
// buffer, larger leaves gaps.
package framing

import "iter"

// Count returns the number of full frames produced for a buffer of n
// samples with the given window and step: floor((n-window)/step)+1 when
// n >= window, otherwise 0. Degenerate window/step yields 0.
func Count(n, window, step int) int {
	if window <= 0 || step <= 0 || n < window {
		return 0
	}
	return (n-window)/step + 1
}

// Frames returns a lazy sequence of frames over samples. Frame i covers
// samples[i*step : i*step+window]. The sequence stops once fewer than
// window samples remain; no padding is applied. Each frame is a fresh
// copy, so callers may retain or mutate frames freely.
//
// Degenerate configuration (window <= 0 or step <= 0) yields an empty
// sequence rather than an error; callers that need fail-fast behavior
// validate before framing. The sequence is restartable: ranging over it
// again re-iterates from the first frame.
func Frames(samples []float64, window, step int) iter.Seq[[]float64] {
	return func(yield func([]float64) bool) {
		if window <= 0 || step <= 0 {
			return
		}
		for start := 0; start+window <= len(samples); start += step {
			frame := make([]float64, window)
			copy(frame, samples[start:start+window])
			if !yield(frame) {
				return
			}
		}
	}
}

// Collect materializes Frames into a slice of frames.
func Collect(samples []float64, window, step int) [][]float64 {
	frames := make([][]float64, 0, Count(len(samples), window, step))
	for frame := range Frames(samples, window, step) {
		frames = append(frames, frame)
	}
	return frames
}
