package steps

import (
	"github.com/cwbudde/algo-steps/dsp/deriv"
)

// Step is one contiguous segment of the signal judged to sit at a single
// level.
//
// Start and End index the parent signal; End is exclusive except that the
// final step of a detection run also owns the last sample, so that the
// concatenated Data of all steps reconstructs the signal exactly. The
// stable region [StableStart, StableEnd] is the inclusive sub-interval the
// statistics are computed from; it always satisfies
// Start <= StableStart <= StableEnd <= End-1.
type Step struct {
	Start       int
	End         int
	StableStart int
	StableEnd   int

	// Level, RMS and Range describe the stable-region data. RMS is the
	// root-mean-square deviation about the stable-region mean.
	Level float64
	RMS   float64
	Range float64

	// Data holds a copy of the full step's samples, StableData a copy of
	// the stable region. Both are owned by the record.
	Data       []float64
	StableData []float64

	// ZeroCrossings counts second-derivative zero crossings over the full
	// step. ZeroPositions keeps the important ones (relative weight above
	// the importance threshold) in absolute signal coordinates. On a merged
	// record the count is len(ZeroPositions): only important crossings
	// survive a merge.
	ZeroCrossings int
	ZeroPositions []deriv.ZeroCrossing

	// ThirdDerivRefined reports whether third-derivative analysis narrowed
	// the stable region; ThirdZeroCrossings holds the absolute positions
	// used for that refinement.
	ThirdDerivRefined  bool
	ThirdZeroCrossings []float64
}

// Duration returns the step length in samples, End - Start.
func (s *Step) Duration() int {
	return s.End - s.Start
}

// StableDuration returns the inclusive length of the stable region.
func (s *Step) StableDuration() int {
	return s.StableEnd - s.StableStart + 1
}

// Clone returns a deep copy of the step; the copy shares no buffers with
// the original.
func (s *Step) Clone() Step {
	out := *s
	out.Data = append([]float64(nil), s.Data...)
	out.StableData = append([]float64(nil), s.StableData...)
	out.ZeroPositions = append([]deriv.ZeroCrossing(nil), s.ZeroPositions...)
	out.ThirdZeroCrossings = append([]float64(nil), s.ThirdZeroCrossings...)

	return out
}

// cloneSteps deep-copies a step list.
func cloneSteps(in []Step) []Step {
	out := make([]Step, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}

	return out
}
