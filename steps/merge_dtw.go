package steps

import (
	"github.com/cwbudde/algo-steps/dsp/dtw"
	"github.com/cwbudde/algo-steps/dsp/resample"
	"github.com/cwbudde/algo-steps/stats/series"
)

// maxStableLenRatio is the largest stable-region length ratio two steps may
// have and still be considered for shape comparison.
const maxStableLenRatio = 5.0

// DTWShape merges neighboring steps whose stable regions have similar
// shape under dynamic time warping. Both regions are resampled to a common
// length and z-score normalized before comparison, so only shape matters,
// not absolute level or duration.
type DTWShape struct {
	// SimilarityThreshold is the maximum per-sample DTW distance for a
	// merge.
	SimilarityThreshold float64

	// MaxSamplePoints caps the comparison length; zero means 100.
	MaxSamplePoints int
}

// Merge implements Merger.
func (m DTWShape) Merge(steps []Step) []Step {
	maxPoints := m.MaxSamplePoints
	if maxPoints <= 0 {
		maxPoints = 100
	}

	return mergeSequential(steps, func(last, cur *Step, _ int) bool {
		return shapesSimilarDTW(last.StableData, cur.StableData, m.SimilarityThreshold, maxPoints)
	})
}

// shapesSimilarDTW reports whether two stable regions are similar in shape.
// Any comparison failure (empty region, resampling or DTW error) counts as
// not similar, so the merge stays conservative.
func shapesSimilarDTW(a, b []float64, threshold float64, maxPoints int) bool {
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
	if sampleLen > maxPoints {
		sampleLen = maxPoints
	}

	ra, err := resample.Resample(a, sampleLen)
	if err != nil {
		return false
	}

	rb, err := resample.Resample(b, sampleLen)
	if err != nil {
		return false
	}

	distance, err := dtw.Distance(zscore(ra), zscore(rb))
	if err != nil {
		return false
	}

	return distance/float64(sampleLen) < threshold
}

// zscore centers x on its mean and scales by its deviation when the
// deviation is meaningfully non-zero. Returns a fresh slice.
func zscore(x []float64) []float64 {
	summary := series.Calculate(x)

	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v - summary.Mean
	}

	if summary.Std > 1e-10 {
		for i := range out {
			out[i] /= summary.Std
		}
	}

	return out
}
