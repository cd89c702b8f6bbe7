package pitch

import (
	"math"
	"testing"

	"github.com/RyanBlaney/sonido-pitch/algorithms/framing"
)

func sineWave(freq float64, sampleRate, n int) []float64 {
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return signal
}

func mustTracker(t *testing.T, cfg TrackerConfig) *Tracker {
	t.Helper()
	tr, err := NewTracker(cfg)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	return tr
}

func TestTrackFrameCount(t *testing.T) {
	sampleRate := 44100
	samples := sineWave(440, sampleRate, sampleRate) // 1 second
	cfg := DefaultTrackerConfig()

	estimates, err := mustTracker(t, cfg).Track(samples, sampleRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := framing.Count(len(samples), cfg.WindowSize, cfg.StepSize)
	if len(estimates) != want {
		t.Fatalf("got %d estimates, want %d", len(estimates), want)
	}
}

func TestTrackSteadyTone(t *testing.T) {
	sampleRate := 44100
	samples := sineWave(440, sampleRate, sampleRate)

	estimates, err := mustTracker(t, DefaultTrackerConfig()).Track(samples, sampleRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, est := range estimates {
		if !est.Voiced {
			t.Fatalf("frame %d unvoiced for a steady tone", i)
		}
		if math.Abs(est.Pitch.Frequency-440) > 2 {
			t.Fatalf("frame %d: %.2f Hz, want 440 +/- 2", i, est.Pitch.Frequency)
		}
	}
}

func TestTrackSilenceAllUnvoiced(t *testing.T) {
	sampleRate := 44100
	samples := make([]float64, sampleRate/2)

	estimates, err := mustTracker(t, DefaultTrackerConfig()).Track(samples, sampleRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(estimates) == 0 {
		t.Fatal("expected estimates for every frame")
	}
	for i, est := range estimates {
		if est.Voiced {
			t.Fatalf("frame %d voiced in silence", i)
		}
	}
}

func TestTrackToneThenSilence(t *testing.T) {
	sampleRate := 44100
	cfg := DefaultTrackerConfig()

	// Half a second of tone followed by half a second of silence;
	// estimates stay aligned to frame start times.
	tonePart := sineWave(330, sampleRate, sampleRate/2)
	samples := append(tonePart, make([]float64, sampleRate/2)...)

	estimates, err := mustTracker(t, cfg).Track(samples, sampleRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, est := range estimates {
		frameStart := i * cfg.StepSize
		frameEnd := frameStart + cfg.WindowSize
		switch {
		case frameEnd <= len(tonePart):
			if !est.Voiced {
				t.Fatalf("frame %d (inside tone) unvoiced", i)
			}
		case frameStart >= len(tonePart):
			if est.Voiced {
				t.Fatalf("frame %d (inside silence) voiced", i)
			}
		}
	}
}

func TestTrackEmptyBuffer(t *testing.T) {
	estimates, err := mustTracker(t, DefaultTrackerConfig()).Track(nil, 44100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(estimates) != 0 {
		t.Fatalf("expected no estimates, got %d", len(estimates))
	}
}

func TestTrackerInvalidConfig(t *testing.T) {
	cfg := DefaultTrackerConfig()
	cfg.WindowSize = 0
	if _, err := NewTracker(cfg); err == nil {
		t.Fatal("expected error for zero window size")
	}

	cfg = DefaultTrackerConfig()
	cfg.StepSize = -1
	if _, err := NewTracker(cfg); err == nil {
		t.Fatal("expected error for negative step size")
	}

	cfg = DefaultTrackerConfig()
	cfg.PowerThreshold = -0.1
	if _, err := NewTracker(cfg); err == nil {
		t.Fatal("expected error for negative power threshold")
	}

	cfg = DefaultTrackerConfig()
	cfg.Yin.Threshold = 2.0
	if _, err := NewTracker(cfg); err == nil {
		t.Fatal("expected error for invalid detector threshold")
	}
}

func TestTrackRejectsNonFinite(t *testing.T) {
	samples := sineWave(440, 44100, 44100)
	samples[2000] = math.NaN()

	if _, err := mustTracker(t, DefaultTrackerConfig()).Track(samples, 44100); err == nil {
		t.Fatal("expected error for NaN input")
	}
}

func TestFrequenciesFlattening(t *testing.T) {
	sampleRate := 44100
	samples := append(sineWave(440, sampleRate, sampleRate/2), make([]float64, sampleRate/2)...)
	tracked, err := mustTracker(t, DefaultTrackerConfig()).Track(samples, sampleRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	freqs := tracked.Frequencies()
	if len(freqs) != len(tracked) {
		t.Fatalf("got %d frequencies for %d estimates", len(freqs), len(tracked))
	}
	for i, est := range tracked {
		if est.Voiced && freqs[i] == 0 {
			t.Fatalf("frame %d voiced but flattened to 0", i)
		}
		if !est.Voiced && freqs[i] != 0 {
			t.Fatalf("frame %d unvoiced but flattened to %g", i, freqs[i])
		}
	}
}

func TestTrackDeterministic(t *testing.T) {
	sampleRate := 44100
	samples := sineWave(261.63, sampleRate, sampleRate/2)
	tracker := mustTracker(t, DefaultTrackerConfig())

	a, err := tracker.Track(samples, sampleRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := tracker.Track(samples, sampleRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("frame %d differs between identical calls", i)
		}
	}
}
