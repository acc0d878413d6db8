package steps

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestDetectEmptySignal(t *testing.T) {
	if _, err := Detect(nil, DefaultDetectionParams()); !errors.Is(err, ErrEmptySignal) {
		t.Fatalf("err = %v, want ErrEmptySignal", err)
	}

	if _, err := DetectAndMerge(nil, DefaultDetectionParams(), AdjacentTolerance{}); !errors.Is(err, ErrEmptySignal) {
		t.Fatalf("err = %v, want ErrEmptySignal", err)
	}
}

func TestDetectThreeLevels(t *testing.T) {
	res, err := Detect(stepSignal(), testParams())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if len(res.Boundaries) != 4 {
		t.Fatalf("boundaries = %v, want four", res.Boundaries)
	}

	if len(res.Steps) != 3 {
		t.Fatalf("len(steps) = %d, want 3", len(res.Steps))
	}

	if len(res.Merged) != 0 {
		t.Fatalf("Merged populated without a merger: %d records", len(res.Merged))
	}
}

func TestDetectAndMergeNilMerger(t *testing.T) {
	res, err := DetectAndMerge(stepSignal(), testParams(), nil)
	if err != nil {
		t.Fatalf("DetectAndMerge() error = %v", err)
	}

	if len(res.Merged) != 0 {
		t.Fatalf("Merged = %d records, want none", len(res.Merged))
	}
}

func TestDetectAndMergeAdjacent(t *testing.T) {
	res, err := DetectAndMerge(stepSignal(), testParams(), AdjacentTolerance{LevelTolerance: 0.05})
	if err != nil {
		t.Fatalf("DetectAndMerge() error = %v", err)
	}

	if len(res.Merged) == 0 || len(res.Merged) > len(res.Steps) {
		t.Fatalf("merged %d of %d steps", len(res.Merged), len(res.Steps))
	}

	// Merging must leave the unmerged records intact.
	if len(res.Steps) != 3 {
		t.Fatalf("len(steps) = %d after merge, want 3", len(res.Steps))
	}
}

func TestDetectRepeatable(t *testing.T) {
	signal := stepSignal()

	first, err := Detect(signal, testParams())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	second, err := Detect(signal, testParams())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if len(first.Steps) != len(second.Steps) {
		t.Fatalf("runs disagree: %d vs %d steps", len(first.Steps), len(second.Steps))
	}

	for i := range first.Steps {
		if first.Steps[i].Level != second.Steps[i].Level {
			t.Fatalf("step %d level drifted: %v vs %v",
				i, first.Steps[i].Level, second.Steps[i].Level)
		}
	}
}

func TestDetectNoisySignal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	signal := make([]float64, 600)
	for i := range signal {
		level := 0.0
		if i >= 200 && i < 400 {
			level = 5
		}

		signal[i] = level + 0.1*rng.NormFloat64()
	}

	res, err := Detect(signal, DefaultDetectionParams())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if len(res.Steps) < 2 {
		t.Fatalf("len(steps) = %d, want at least 2", len(res.Steps))
	}

	// The extreme levels must come out near 0 and 5 despite the noise.
	minLevel, maxLevel := math.Inf(1), math.Inf(-1)
	for i := range res.Steps {
		minLevel = math.Min(minLevel, res.Steps[i].Level)
		maxLevel = math.Max(maxLevel, res.Steps[i].Level)
	}

	if math.Abs(minLevel) > 0.5 || math.Abs(maxLevel-5) > 0.5 {
		t.Fatalf("levels span [%v, %v], want near [0, 5]", minLevel, maxLevel)
	}
}
