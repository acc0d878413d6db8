package steps

import (
	"math"

	"github.com/cwbudde/algo-steps/dsp/resample"
	"gonum.org/v1/gonum/stat"
)

const (
	// strongWeightThreshold marks the zero crossings that veto a merge of
	// otherwise ambiguous steps.
	strongWeightThreshold = 0.4

	// shapeCheckMinDuration is the shortest step duration eligible for the
	// correlation shape check.
	shapeCheckMinDuration = 50

	// shapeSampleCap caps the resampled comparison length of the shape
	// check.
	shapeSampleCap = 50

	// shapeCorrThreshold and shapeMSEThreshold are the acceptance limits
	// of the correlation shape check.
	shapeCorrThreshold = 0.7
	shapeMSEThreshold  = 0.4
)

// AdaptiveHybrid merges neighboring steps under a noise- and
// confidence-adaptive level tolerance, and additionally on structural
// grounds: when both steps lack a strong zero crossing, or when two long
// steps correlate strongly in shape. It is the strategy of choice for
// noisy recordings where a fixed tolerance either over- or under-merges.
type AdaptiveHybrid struct {
	// BaseTolerance is the level tolerance before adaptation.
	BaseTolerance float64

	// NoiseFactor scales how strongly local noise widens the tolerance.
	NoiseFactor float64

	// MinConfidence is the score below which low-confidence steps widen
	// the tolerance further.
	MinConfidence float64
}

// Merge implements Merger.
func (m AdaptiveHybrid) Merge(steps []Step) []Step {
	return mergeSequential(steps, func(last, cur *Step, _ int) bool {
		return m.shouldMerge(last, cur)
	})
}

func (m AdaptiveHybrid) shouldMerge(last, cur *Step) bool {
	noise := math.Max(last.LocalNoise(), cur.LocalNoise())
	tolerance := m.BaseTolerance * (1 + m.NoiseFactor*noise)

	confidence := math.Min(last.Confidence(), cur.Confidence())
	if confidence < m.MinConfidence && confidence > 0 {
		tolerance *= m.MinConfidence / confidence
	}

	if math.Abs(cur.Level-last.Level) <= tolerance {
		return true
	}

	if mergeByZeroCrossings(last, cur) {
		return true
	}

	if last.Duration() > shapeCheckMinDuration && cur.Duration() > shapeCheckMinDuration {
		return shapesCorrelate(last.StableData, cur.StableData)
	}

	return false
}

// mergeByZeroCrossings merges steps whose boundary evidence is too weak to
// stand alone: one of them has at most one zero crossing and neither has a
// strong crossing.
func mergeByZeroCrossings(a, b *Step) bool {
	if a.ZeroCrossings > 1 && b.ZeroCrossings > 1 {
		return false
	}

	return !hasStrongCrossing(a) && !hasStrongCrossing(b)
}

func hasStrongCrossing(s *Step) bool {
	for _, zc := range s.ZeroPositions {
		if zc.Weight > strongWeightThreshold {
			return true
		}
	}

	return false
}

// shapesCorrelate compares two stable regions after resampling both to a
// common capped length and normalizing them: similar shapes pass by
// Pearson correlation or by mean squared error. Comparison failures count
// as not similar.
func shapesCorrelate(a, b []float64) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}

	longer, shorter := len(a), len(b)
	if shorter > longer {
		longer, shorter = shorter, longer
	}

	if float64(longer)/float64(shorter) > maxStableLenRatio {
		return false
	}

	sampleLen := longer
	if sampleLen > shapeSampleCap {
		sampleLen = shapeSampleCap
	}

	ra, err := resample.Resample(a, sampleLen)
	if err != nil {
		return false
	}

	rb, err := resample.Resample(b, sampleLen)
	if err != nil {
		return false
	}

	na := zscore(ra)
	nb := zscore(rb)

	correlation := stat.Correlation(na, nb, nil)
	if !math.IsNaN(correlation) && correlation > shapeCorrThreshold {
		return true
	}

	var mse float64
	for i := range na {
		d := na[i] - nb[i]
		mse += d * d
	}
	mse /= float64(len(na))

	return mse < shapeMSEThreshold
}
