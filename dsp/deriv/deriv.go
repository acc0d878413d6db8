// Package deriv provides discrete derivative operators and sub-sample
// zero-crossing analysis for 1-D signals.
//
// Gradient uses central differences in the interior and one-sided
// differences at the ends; Laplacian applies the [1 -2 1] stencil with
// reflect boundary handling. Zero crossings are located by linear
// interpolation between the samples that bracket the sign change, so
// positions are fractional sample indices.
package deriv

import "math"

// ZeroCrossing is one sign change of a derivative sequence.
//
// Position is a fractional index into the analyzed sequence. Weight is the
// relative importance of the crossing in [0, 1], normalized against the
// maximum weight found in the same detection call; weights from different
// calls are not comparable.
type ZeroCrossing struct {
	Position float64
	Weight   float64
}

// Gradient returns the discrete first derivative of x: central differences
// (x[i+1]-x[i-1])/2 in the interior, one-sided differences at the ends.
// Inputs shorter than 2 samples yield an all-zero result.
func Gradient(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)

	if n < 2 {
		return out
	}

	out[0] = x[1] - x[0]
	out[n-1] = x[n-1] - x[n-2]

	for i := 1; i < n-1; i++ {
		out[i] = (x[i+1] - x[i-1]) / 2
	}

	return out
}

// Laplacian returns the discrete second derivative of x using the [1 -2 1]
// stencil with reflect boundary handling, so the end samples see a mirrored
// neighbor.
func Laplacian(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)

	if n < 2 {
		return out
	}

	out[0] = x[1] - x[0]
	out[n-1] = x[n-2] - x[n-1]

	for i := 1; i < n-1; i++ {
		out[i] = x[i+1] - 2*x[i] + x[i-1]
	}

	return out
}

// ZeroCrossings returns the interpolated positions where y changes sign.
// The crossing between samples i-1 and i sits at i-1 + t where t solves the
// linear interpolation; if both samples are equal the midpoint i-0.5 is
// used.
func ZeroCrossings(y []float64) []float64 {
	var positions []float64

	for i := 1; i < len(y); i++ {
		if !signChange(y[i-1], y[i]) {
			continue
		}

		positions = append(positions, interpolateCrossing(y, i))
	}

	return positions
}

// WeightedZeroCrossings returns the sign changes of y, each weighted by the
// maximum |grad| over the half-open window [i-window, i+window) around the
// crossing sample. Weights are normalized by their own maximum, so the
// strongest crossing of the call has weight 1.
func WeightedZeroCrossings(y, grad []float64, window int) []ZeroCrossing {
	var crossings []ZeroCrossing

	maxWeight := 0.0

	for i := 1; i < len(y); i++ {
		if !signChange(y[i-1], y[i]) {
			continue
		}

		lo := i - window
		if lo < 0 {
			lo = 0
		}

		hi := i + window
		if hi > len(grad) {
			hi = len(grad)
		}

		w := 0.0
		for _, g := range grad[lo:hi] {
			if a := math.Abs(g); a > w {
				w = a
			}
		}

		crossings = append(crossings, ZeroCrossing{
			Position: interpolateCrossing(y, i),
			Weight:   w,
		})

		if w > maxWeight {
			maxWeight = w
		}
	}

	norm := maxWeight + 1e-10
	for i := range crossings {
		crossings[i].Weight /= norm
	}

	return crossings
}

// signChange reports whether the pair (prev, cur) brackets a zero crossing.
// Zero itself counts as non-negative, so a touch of zero from below is a
// crossing while a constant zero run is not.
func signChange(prev, cur float64) bool {
	return (prev < 0 && cur >= 0) || (prev >= 0 && cur < 0)
}

// interpolateCrossing returns the fractional position of the sign change
// between y[i-1] and y[i].
func interpolateCrossing(y []float64, i int) float64 {
	if y[i] == y[i-1] {
		return float64(i) - 0.5
	}

	t := -y[i-1] / (y[i] - y[i-1])

	return float64(i-1) + t
}
