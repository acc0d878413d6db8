package steps

// Result holds the output of one detection run. Boundaries and Steps come
// from detection and level estimation; Merged is only populated when a
// merge strategy was supplied and is always derived from Steps, never a
// replacement for it.
type Result struct {
	Boundaries []int
	Steps      []Step
	Merged     []Step
}

// Detect runs boundary detection and level estimation on signal and
// returns fresh step records. Every invocation recomputes from scratch;
// nothing is retained between runs.
func Detect(signal []float64, p DetectionParams) (Result, error) {
	boundaries, err := DetectBoundaries(signal, p)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Boundaries: boundaries,
		Steps:      EstimateLevels(signal, boundaries),
	}, nil
}

// DetectAndMerge runs Detect and additionally applies the given merge
// strategy. A nil merger leaves Result.Merged empty.
func DetectAndMerge(signal []float64, p DetectionParams, m Merger) (Result, error) {
	res, err := Detect(signal, p)
	if err != nil {
		return Result{}, err
	}

	if m != nil {
		res.Merged = m.Merge(res.Steps)
	}

	return res, nil
}
