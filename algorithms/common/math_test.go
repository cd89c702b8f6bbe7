package common

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	if got := Mean([]float64{1, 2, 3}); math.Abs(got-2) > 1e-12 {
		t.Fatalf("Mean = %g, want 2", got)
	}
	if got := Mean(nil); got != 0 {
		t.Fatalf("Mean(nil) = %g, want 0", got)
	}
}

func TestPopStdDev(t *testing.T) {
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := PopStdDev(data); math.Abs(got-2) > 1e-12 {
		t.Fatalf("PopStdDev = %g, want 2", got)
	}
}

func TestRMSKnownValue(t *testing.T) {
	want := math.Sqrt((9.0 + 16.0) / 2.0)
	if got := RMS([]float64{3, 4}); math.Abs(got-want) > 1e-12 {
		t.Fatalf("RMS = %g, want %g", got, want)
	}
	if got := RMS(nil); got != 0 {
		t.Fatalf("RMS(nil) = %g, want 0", got)
	}
}

func TestPower(t *testing.T) {
	if got := Power([]float64{1, -1, 1, -1}); math.Abs(got-1) > 1e-12 {
		t.Fatalf("Power = %g, want 1", got)
	}
}

func TestMovingAverageLengthPreserved(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}
	got := MovingAverage(data, 3)
	if len(got) != len(data) {
		t.Fatalf("length %d, want %d", len(got), len(data))
	}
	// Interior point is the plain 3-point mean
	if math.Abs(got[2]-3) > 1e-12 {
		t.Fatalf("center = %g, want 3", got[2])
	}
	// Edges average the available neighbors only
	if math.Abs(got[0]-1.5) > 1e-12 {
		t.Fatalf("edge = %g, want 1.5", got[0])
	}
}

func TestMovingAverageNoSmoothing(t *testing.T) {
	data := []float64{5, 1, 9}
	got := MovingAverage(data, 1)
	for i := range data {
		if got[i] != data[i] {
			t.Fatalf("window=1 should be identity, index %d changed", i)
		}
	}
}

func TestHasNonFinite(t *testing.T) {
	if HasNonFinite([]float64{1, 2, 3}) {
		t.Fatal("finite data flagged")
	}
	if !HasNonFinite([]float64{1, math.NaN()}) {
		t.Fatal("NaN not flagged")
	}
	if !HasNonFinite([]float64{1, math.Inf(1)}) {
		t.Fatal("+Inf not flagged")
	}
	if !HasNonFinite([]float64{math.Inf(-1)}) {
		t.Fatal("-Inf not flagged")
	}
}

func TestParabolicPeakExactVertex(t *testing.T) {
	// y = (x-2)^2 sampled at 1,2,3 has its vertex at exactly 2
	data := []float64{1, 0, 1}
	if got := ParabolicPeak(data, 1); math.Abs(got-1) > 1e-12 {
		t.Fatalf("vertex at %g, want 1", got)
	}

	// Asymmetric samples pull the vertex toward the shallower side
	data = []float64{1, 0, 0.5}
	got := ParabolicPeak(data, 1)
	if got <= 1 || got >= 2 {
		t.Fatalf("refined vertex %g, want within (1, 2)", got)
	}
}

func TestParabolicPeakBoundary(t *testing.T) {
	data := []float64{0, 1, 2}
	if got := ParabolicPeak(data, 0); got != 0 {
		t.Fatalf("boundary index should pass through, got %g", got)
	}
	if got := ParabolicPeak(data, 2); got != 2 {
		t.Fatalf("boundary index should pass through, got %g", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 1) != 1 || Clamp(-5, 0, 1) != 0 || Clamp(0.5, 0, 1) != 0.5 {
		t.Fatal("Clamp misbehaves")
	}
}
