// Package series provides one-pass summary statistics for sample windows.
//
// It is a trimmed sibling of an audio time-domain statistics package: the
// step engine needs the mean, the deviation about the mean, and the value
// range of many short windows, computed with stable accumulation so that
// long flat regions with large DC offsets do not lose precision.
package series

import "math"

// Summary holds the statistics of one sample window.
type Summary struct {
	Len   int
	Mean  float64
	Std   float64 // population deviation about the mean
	Min   float64
	Max   float64
	Range float64 // Max - Min
}

// Calculate computes all summary statistics in a single pass using
// Welford's online algorithm for the second moment.
func Calculate(window []float64) Summary {
	n := len(window)
	if n == 0 {
		return Summary{}
	}

	var (
		mean   float64
		m2     float64
		minVal = window[0]
		maxVal = window[0]
	)

	for i, x := range window {
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)

		if x < minVal {
			minVal = x
		}

		if x > maxVal {
			maxVal = x
		}
	}

	return Summary{
		Len:   n,
		Mean:  mean,
		Std:   math.Sqrt(m2 / float64(n)),
		Min:   minVal,
		Max:   maxVal,
		Range: maxVal - minVal,
	}
}

// Mean returns the mean of the window using Kahan summation.
func Mean(window []float64) float64 {
	if len(window) == 0 {
		return 0
	}

	var sum, c float64
	for _, x := range window {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(window))
}

// Std returns the population standard deviation of the window.
func Std(window []float64) float64 {
	return Calculate(window).Std
}
