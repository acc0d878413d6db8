package steps

import (
	"github.com/cwbudde/algo-steps/dsp/deriv"
	"github.com/cwbudde/algo-steps/stats/series"
)

// Merger coarsens a step list. Implementations never modify the input and
// never return records whose buffers alias the input's.
type Merger interface {
	Merge(steps []Step) []Step
}

// mergePredicate decides whether the step at original index i should be
// merged into the group accumulated so far. last is the accumulated group
// record, cur the candidate step.
type mergePredicate func(last, cur *Step, i int) bool

// mergeSequential performs the left-to-right scan shared by the sequential
// strategies: each step either joins the previously emitted group or opens
// a new one.
func mergeSequential(steps []Step, shouldMerge mergePredicate) []Step {
	if len(steps) < 2 {
		return cloneSteps(steps)
	}

	out := []Step{steps[0].Clone()}

	for i := 1; i < len(steps); i++ {
		last := &out[len(out)-1]
		cur := &steps[i]

		if shouldMerge(last, cur, i) {
			out[len(out)-1] = combine(*last, *cur)
		} else {
			out = append(out, cur.Clone())
		}
	}

	return out
}

// combine builds the record for a merged pair: outer bounds, concatenated
// data buffers, statistics recomputed from the concatenated stable data,
// and the union of the constituents' zero-crossing information.
func combine(a, b Step) Step {
	return combineGroup([]Step{a, b})
}

// combineGroup merges an ordered run of steps into one record. The group
// must be non-empty; a single-element group yields a clone. The crossing
// count of the merged record is the size of the merged important-position
// list, not the sum of the constituents' full-step counts: weak crossings
// do not survive a merge.
func combineGroup(group []Step) Step {
	if len(group) == 1 {
		return group[0].Clone()
	}

	first, last := group[0], group[len(group)-1]

	var (
		data       []float64
		stableData []float64
		zeros      []deriv.ZeroCrossing
	)

	for i := range group {
		data = append(data, group[i].Data...)
		stableData = append(stableData, group[i].StableData...)
		zeros = append(zeros, group[i].ZeroPositions...)
	}

	summary := series.Calculate(stableData)

	return Step{
		Start:         first.Start,
		End:           last.End,
		StableStart:   first.StableStart,
		StableEnd:     last.StableEnd,
		Level:         summary.Mean,
		RMS:           summary.Std,
		Range:         summary.Range,
		Data:          data,
		StableData:    stableData,
		ZeroCrossings: len(zeros),
		ZeroPositions: zeros,
	}
}
