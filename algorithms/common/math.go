package common

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Basic numeric helpers shared across the analysis packages, built on
// gonum where it has a robust implementation.

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// PopStdDev calculates the population standard deviation of a slice.
// The noise-window search scores candidate windows against the
// population spread of all windows, so this intentionally divides by N
// rather than N-1.
func PopStdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	mean := stat.Mean(data, nil)
	variance := 0.0
	for _, v := range data {
		diff := v - mean
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(len(data)))
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, val := range data {
		sumSquares += val * val
	}

	return math.Sqrt(sumSquares / float64(len(data)))
}

// Power calculates mean signal power (mean of squared samples)
func Power(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, val := range data {
		sumSquares += val * val
	}

	return sumSquares / float64(len(data))
}

// MovingAverage calculates a centered simple moving average with the
// given window size. Edges use the available neighbors only, so output
// length always equals input length.
func MovingAverage(data []float64, windowSize int) []float64 {
	if len(data) == 0 || windowSize <= 1 {
		return data
	}

	result := make([]float64, len(data))
	halfWindow := windowSize / 2

	for i := range data {
		start := max(i-halfWindow, 0)
		end := min(i+halfWindow+1, len(data))

		sum := 0.0
		for j := start; j < end; j++ {
			sum += data[j]
		}
		result[i] = sum / float64(end-start)
	}

	return result
}

// Clamp constrains a value to a range
func Clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// HasNonFinite reports whether any sample is NaN or infinite. Entry
// points that accept caller samples reject such input up front so bad
// values never propagate silently through a transform.
func HasNonFinite(data []float64) bool {
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

// ParabolicPeak refines the location of an extremum at index idx by
// fitting a parabola through (idx-1, idx, idx+1). Returns idx as a
// float when refinement is not possible. The refined offset is always
// within (-1, 1) of idx.
func ParabolicPeak(data []float64, idx int) float64 {
	if idx <= 0 || idx >= len(data)-1 {
		return float64(idx)
	}

	y1 := data[idx-1]
	y2 := data[idx]
	y3 := data[idx+1]

	a := (y1 - 2*y2 + y3) / 2
	b := (y3 - y1) / 2

	if a == 0 {
		return float64(idx)
	}

	return float64(idx) - b/(2*a)
}
