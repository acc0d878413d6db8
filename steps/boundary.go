package steps

import (
	"errors"

	"github.com/cwbudde/algo-steps/dsp/deriv"
	"github.com/cwbudde/algo-steps/dsp/gaussian"
	"github.com/cwbudde/algo-steps/stats/series"
)

// ErrEmptySignal indicates a zero-length input signal. It is the only
// failure the detection pipeline propagates; every other degenerate input
// degrades to the whole-signal-as-one-step result.
var ErrEmptySignal = errors.New("steps: empty signal")

// DetectionParams configures boundary detection.
type DetectionParams struct {
	// MinStepWidth is the minimum step length in samples. Candidate
	// transition points closer than half this width are clustered into one
	// boundary, and boundaries closer than the full width to the previous
	// kept boundary are dropped. Zero disables the width filter.
	MinStepWidth int

	// SmoothingWidth is the Gaussian standard deviation applied to the raw
	// signal before differentiation. Values <= 1 skip smoothing.
	SmoothingWidth int

	// DetectionThreshold scales the gradient standard deviation to form
	// the transition threshold.
	DetectionThreshold float64

	// MinStepHeight is accepted for compatibility with existing parameter
	// sets but is not consulted by boundary detection.
	MinStepHeight float64
}

// DefaultDetectionParams returns the parameter set used when callers have
// no domain-specific tuning.
func DefaultDetectionParams() DetectionParams {
	return DetectionParams{
		MinStepWidth:       30,
		SmoothingWidth:     10,
		DetectionThreshold: 3.0,
		MinStepHeight:      0.1,
	}
}

// DetectBoundaries locates step boundaries in signal and returns their
// indices in ascending order, starting at 0 and ending at len(signal)-1.
// A signal with no detectable transitions yields [0, N-1], a single step
// covering everything.
func DetectBoundaries(signal []float64, p DetectionParams) ([]int, error) {
	n := len(signal)
	if n == 0 {
		return nil, ErrEmptySignal
	}

	if n == 1 {
		return []int{0}, nil
	}

	smoothed := gaussian.Smooth(signal, float64(p.SmoothingWidth))
	gradient := deriv.Gradient(smoothed)

	threshold := p.DetectionThreshold * series.Std(gradient)

	var candidates []int
	for i, g := range gradient {
		if g > threshold || g < -threshold {
			candidates = append(candidates, i)
		}
	}

	boundaries := []int{0}
	boundaries = append(boundaries, clusterCandidates(candidates, float64(p.MinStepWidth)/2)...)

	if boundaries[len(boundaries)-1] < n-1 {
		boundaries = append(boundaries, n-1)
	}

	return filterByWidth(boundaries, p.MinStepWidth), nil
}

// clusterCandidates collapses runs of candidate indices closer than half
// the minimum step width into single boundaries at the run midpoint.
func clusterCandidates(candidates []int, halfWidth float64) []int {
	var out []int

	i := 0
	for i < len(candidates) {
		j := i
		for j+1 < len(candidates) && float64(candidates[j+1]-candidates[j]) < halfWidth {
			j++
		}

		if j > i {
			out = append(out, candidates[i]+(candidates[j]-candidates[i])/2)
			i = j + 1
		} else {
			out = append(out, candidates[i])
			i++
		}
	}

	return out
}

// filterByWidth drops boundaries closer than minWidth to the previously
// kept boundary. The final boundary is always kept so the list still ends
// at the last signal index.
func filterByWidth(boundaries []int, minWidth int) []int {
	kept := []int{boundaries[0]}

	for _, b := range boundaries[1:] {
		if b-kept[len(kept)-1] >= minWidth {
			kept = append(kept, b)
		}
	}

	last := boundaries[len(boundaries)-1]
	if kept[len(kept)-1] != last {
		kept = append(kept, last)
	}

	return kept
}
