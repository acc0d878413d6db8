package steps

import "math"

// AdjacentTolerance merges neighboring steps whose levels differ by at most
// LevelTolerance. Steps with one or no second-derivative zero crossing are
// treated as unreliable boundaries and merged into a neighbor regardless of
// level distance.
type AdjacentTolerance struct {
	LevelTolerance float64
}

// Merge implements Merger.
func (m AdjacentTolerance) Merge(steps []Step) []Step {
	if len(steps) < 2 {
		return cloneSteps(steps)
	}

	// Unreliability flags refer to the original records, matching the
	// level comparison against the running group.
	unreliable := make([]bool, len(steps))
	for i := range steps {
		unreliable[i] = steps[i].ZeroCrossings <= 1
	}

	return mergeSequential(steps, func(last, cur *Step, i int) bool {
		if math.Abs(cur.Level-last.Level) <= m.LevelTolerance {
			return true
		}

		return unreliable[i] || unreliable[i-1]
	})
}
