package steps

import (
	"math"

	"github.com/cwbudde/algo-steps/stats/series"
)

// levelEpsilon guards divisions by a near-zero step level.
const levelEpsilon = 1e-10

// LocalNoise estimates the relative noise of the step in [0, 1] as the
// worst of three indicators: deviation-to-level ratio, half the
// range-to-level ratio, and the coefficient of variation of the zero
// crossing weights. Steps offering no indicator default to 0.5.
func (s *Step) LocalNoise() float64 {
	var indicators []float64

	if math.Abs(s.Level) > levelEpsilon {
		indicators = append(indicators, capped(s.RMS/math.Abs(s.Level)))
		indicators = append(indicators, capped(s.Range/math.Abs(s.Level)/2))
	} else {
		indicators = append(indicators, capped(s.RMS))
	}

	if len(s.ZeroPositions) > 0 {
		weights := make([]float64, len(s.ZeroPositions))
		for i, zc := range s.ZeroPositions {
			weights[i] = zc.Weight
		}

		summary := series.Calculate(weights)
		if summary.Mean > 0 {
			indicators = append(indicators, capped(summary.Std/summary.Mean))
		}
	}

	if len(indicators) == 0 {
		return 0.5
	}

	noise := indicators[0]
	for _, v := range indicators[1:] {
		if v > noise {
			noise = v
		}
	}

	return noise
}

// Confidence scores how trustworthy the step's boundaries and level are,
// in [0, 1]. The score starts at 1 and shrinks multiplicatively with short
// duration, few zero crossings, poor signal-to-noise ratio, wide value
// range, and a small stable fraction.
func (s *Step) Confidence() float64 {
	confidence := 1.0

	durationScore := capped(float64(s.Duration()) / 100)
	confidence *= 0.5 + 0.5*durationScore

	if s.ZeroCrossings <= 1 {
		confidence *= 0.5
	} else {
		zeroScore := capped(float64(s.ZeroCrossings) / 5)
		confidence *= 0.7 + 0.3*zeroScore
	}

	if s.RMS > levelEpsilon {
		snrScore := capped(math.Abs(s.Level) / s.RMS / 10)
		confidence *= 0.6 + 0.4*snrScore
	}

	if math.Abs(s.Level) > levelEpsilon {
		rangeScore := 1 - capped(s.Range/math.Abs(s.Level)/2)
		confidence *= 0.8 + 0.2*rangeScore
	}

	if s.Duration() > 0 {
		stableRatio := float64(s.StableDuration()) / float64(s.Duration())
		confidence *= 0.7 + 0.3*stableRatio
	}

	return confidence
}

// capped limits v to at most 1.
func capped(v float64) float64 {
	if v > 1 {
		return 1
	}

	return v
}
