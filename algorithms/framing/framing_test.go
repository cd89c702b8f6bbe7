package framing

import (
	"testing"
)

func TestFramesOverlapping(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}

	got := Collect(data, 2, 1)
	want := [][]float64{{1, 2}, {2, 3}, {3, 4}, {4, 5}}

	if len(got) != len(want) {
		t.Fatalf("frame count mismatch: got %d want %d", len(got), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Fatalf("frame %d mismatch: got %v want %v", i, got[i], want[i])
			}
		}
	}
}

func TestFramesWithGapStep(t *testing.T) {
	data := []float64{10, 20, 30, 40, 50, 60}

	got := Collect(data, 3, 2)
	want := [][]float64{{10, 20, 30}, {30, 40, 50}}

	if len(got) != len(want) {
		t.Fatalf("frame count mismatch: got %d want %d", len(got), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Fatalf("frame %d mismatch: got %v want %v", i, got[i], want[i])
			}
		}
	}
}

func TestFramesExactTiling(t *testing.T) {
	data := []float64{1, 2, 3, 4}

	got := Collect(data, 2, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(got))
	}
	if got[0][0] != 1 || got[0][1] != 2 || got[1][0] != 3 || got[1][1] != 4 {
		t.Fatalf("unexpected frames: %v", got)
	}
}

func TestFramesWindowLargerThanBuffer(t *testing.T) {
	data := []float64{1, 2, 3}

	if got := Collect(data, 5, 1); len(got) != 0 {
		t.Fatalf("expected no frames, got %d", len(got))
	}
}

func TestFramesDegenerateConfig(t *testing.T) {
	data := []float64{1, 2, 3, 4}

	if got := Collect(data, 0, 1); len(got) != 0 {
		t.Fatalf("window=0 should yield no frames, got %d", len(got))
	}
	if got := Collect(data, 2, 0); len(got) != 0 {
		t.Fatalf("step=0 should yield no frames, got %d", len(got))
	}
}

func TestFramesEmptyBuffer(t *testing.T) {
	if got := Collect(nil, 4, 2); len(got) != 0 {
		t.Fatalf("empty buffer should yield no frames, got %d", len(got))
	}
}

func TestCountFormula(t *testing.T) {
	cases := []struct {
		n, window, step int
		want            int
	}{
		{100, 10, 5, 19},
		{100, 10, 10, 10},
		{100, 10, 15, 7},
		{10, 10, 3, 1},
		{9, 10, 3, 0},
		{0, 10, 3, 0},
		{100, 0, 3, 0},
		{100, 10, 0, 0},
	}

	for _, c := range cases {
		if got := Count(c.n, c.window, c.step); got != c.want {
			t.Errorf("Count(%d, %d, %d) = %d, want %d", c.n, c.window, c.step, got, c.want)
		}
	}
}

func TestCountMatchesFrames(t *testing.T) {
	data := make([]float64, 1000)
	for _, cfg := range []struct{ window, step int }{{64, 16}, {128, 128}, {100, 37}} {
		want := Count(len(data), cfg.window, cfg.step)
		got := len(Collect(data, cfg.window, cfg.step))
		if got != want {
			t.Errorf("window=%d step=%d: Count=%d but produced %d frames", cfg.window, cfg.step, want, got)
		}
	}
}

func TestFramesRestartable(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	seq := Frames(data, 2, 2)

	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}

	if first != second || first != 3 {
		t.Fatalf("sequence not restartable: first pass %d frames, second pass %d", first, second)
	}
}
