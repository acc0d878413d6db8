package steps

import (
	"sort"

	"github.com/cwbudde/algo-steps/dsp/deriv"
	"github.com/cwbudde/algo-steps/dsp/gaussian"
	"github.com/cwbudde/algo-steps/stats/series"
)

const (
	// crossingSigma is the Gaussian smoothing applied before derivative
	// zero-crossing analysis.
	crossingSigma = 2.0

	// weightWindow is the half-width of the gradient window that weights a
	// zero crossing.
	weightWindow = 5

	// importanceThreshold separates important zero crossings from weak
	// ones within a single detection call.
	importanceThreshold = 0.3

	// minAnalysisLen is the shortest step that gets stable-region analysis
	// instead of the full region.
	minAnalysisLen = 10
)

// EstimateLevels builds one Step per consecutive boundary pair. Steps
// shorter than the analysis minimum take the full region as stable;
// longer ones get a stable region from second-derivative zero-crossing
// analysis, optionally narrowed by third-derivative refinement.
func EstimateLevels(signal []float64, boundaries []int) []Step {
	var out []Step

	for i := 0; i+1 < len(boundaries); i++ {
		start, end := boundaries[i], boundaries[i+1]
		if end <= start {
			continue
		}

		// The final step also owns the last sample so the step list tiles
		// the signal exactly.
		dataEnd := end
		if i+2 == len(boundaries) && end < len(signal) {
			dataEnd = end + 1
		}

		out = append(out, estimateStep(signal, start, end, dataEnd))
	}

	return out
}

func estimateStep(signal []float64, start, end, dataEnd int) Step {
	data := append([]float64(nil), signal[start:dataEnd]...)
	duration := end - start

	stableStart, stableEnd := start, end-1
	refined := false

	var thirdZeros []float64

	if duration >= minAnalysisLen {
		important := importantCrossings(data, start)
		stableStart, stableEnd = stableRegion(important, start, end, duration)

		if stableEnd-stableStart+1 > minAnalysisLen {
			if ns, ne, zeros, ok := refineThirdDerivative(signal[stableStart:stableEnd+1], stableStart, stableEnd); ok {
				stableStart, stableEnd = ns, ne
				refined = true
				thirdZeros = zeros
			}
		}
	}

	stableData := append([]float64(nil), signal[stableStart:stableEnd+1]...)
	summary := series.Calculate(stableData)

	// Second crossing pass over the full step; weights are normalized
	// within this call only.
	full := crossings(data)

	return Step{
		Start:              start,
		End:                end,
		StableStart:        stableStart,
		StableEnd:          stableEnd,
		Level:              summary.Mean,
		RMS:                summary.Std,
		Range:              summary.Range,
		Data:               data,
		StableData:         stableData,
		ZeroCrossings:      len(full),
		ZeroPositions:      filterImportant(full, start),
		ThirdDerivRefined:  refined,
		ThirdZeroCrossings: thirdZeros,
	}
}

// crossings runs the Laplacian-of-Gaussian zero-crossing analysis on data.
// Positions are relative to the start of data.
func crossings(data []float64) []deriv.ZeroCrossing {
	smoothed := gaussian.Filter(data, crossingSigma)
	laplacian := deriv.Laplacian(smoothed)
	gradient := deriv.Gradient(smoothed)

	return deriv.WeightedZeroCrossings(laplacian, gradient, weightWindow)
}

// filterImportant keeps crossings above the importance threshold and shifts
// their positions into absolute signal coordinates.
func filterImportant(all []deriv.ZeroCrossing, offset int) []deriv.ZeroCrossing {
	var out []deriv.ZeroCrossing

	for _, zc := range all {
		if zc.Weight > importanceThreshold {
			out = append(out, deriv.ZeroCrossing{
				Position: float64(offset) + zc.Position,
				Weight:   zc.Weight,
			})
		}
	}

	return out
}

// importantCrossings analyzes data and returns the important crossings in
// absolute coordinates, sorted by position.
func importantCrossings(data []float64, offset int) []deriv.ZeroCrossing {
	important := filterImportant(crossings(data), offset)

	sort.Slice(important, func(i, j int) bool {
		return important[i].Position < important[j].Position
	})

	return important
}

// stableRegion derives the stable sub-interval of [start, end) from the
// important zero crossings: two or more span first-to-last, exactly one
// centers a quarter-duration window, none falls back to the full step.
// Bounds are clamped to [start, end-1].
func stableRegion(important []deriv.ZeroCrossing, start, end, duration int) (int, int) {
	stableStart, stableEnd := start, end-1

	switch {
	case len(important) >= 2:
		first := int(important[0].Position)
		last := int(important[len(important)-1].Position)

		if first < last {
			stableStart, stableEnd = first, last
		}
	case len(important) == 1:
		center := int(important[0].Position)
		stableStart = center - duration/4
		stableEnd = center + duration/4
	}

	if stableStart < start {
		stableStart = start
	}

	if stableEnd > end-1 {
		stableEnd = end - 1
	}

	if stableStart > stableEnd {
		return start, end - 1
	}

	return stableStart, stableEnd
}

// refineThirdDerivative narrows a stable region using zero crossings of the
// third derivative of the smoothed region data. With four or more crossings
// the second and second-to-last become the new bounds; with two or three the
// first and last do. Anything less, or a degenerate result, leaves the
// region untouched.
func refineThirdDerivative(stableData []float64, origStart, origEnd int) (int, int, []float64, bool) {
	smoothed := gaussian.Filter(stableData, crossingSigma)
	third := deriv.Gradient(deriv.Gradient(deriv.Gradient(smoothed)))

	relative := deriv.ZeroCrossings(third)
	if len(relative) < 2 {
		return origStart, origEnd, nil, false
	}

	absolute := make([]float64, len(relative))
	for i, pos := range relative {
		absolute[i] = float64(origStart) + pos
	}

	lo, hi := 0, len(absolute)-1
	if len(absolute) >= 4 {
		lo, hi = 1, len(absolute)-2
	}

	newStart := int(absolute[lo])
	newEnd := int(absolute[hi])

	if newStart < origStart {
		newStart = origStart
	}

	if newEnd > origEnd {
		newEnd = origEnd
	}

	if newStart > newEnd {
		return origStart, origEnd, nil, false
	}

	return newStart, newEnd, absolute, true
}
