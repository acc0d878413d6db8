package steps

import (
	"errors"
	"testing"
)

// stepSignal builds a clean three-level trace: 0 for the first hundred
// samples, 5 for the next hundred, 0 again for the last hundred.
func stepSignal() []float64 {
	signal := make([]float64, 300)
	for i := 100; i < 200; i++ {
		signal[i] = 5
	}

	return signal
}

func testParams() DetectionParams {
	return DetectionParams{
		MinStepWidth:       30,
		SmoothingWidth:     5,
		DetectionThreshold: 3.0,
	}
}

func TestDetectBoundariesEmpty(t *testing.T) {
	if _, err := DetectBoundaries(nil, DefaultDetectionParams()); !errors.Is(err, ErrEmptySignal) {
		t.Fatalf("err = %v, want ErrEmptySignal", err)
	}
}

func TestDetectBoundariesSingleSample(t *testing.T) {
	got, err := DetectBoundaries([]float64{1.5}, DefaultDetectionParams())
	if err != nil {
		t.Fatalf("DetectBoundaries() error = %v", err)
	}

	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("boundaries = %v, want [0]", got)
	}
}

func TestDetectBoundariesFlat(t *testing.T) {
	signal := make([]float64, 500)
	for i := range signal {
		signal[i] = 2.5
	}

	got, err := DetectBoundaries(signal, DefaultDetectionParams())
	if err != nil {
		t.Fatalf("DetectBoundaries() error = %v", err)
	}

	if len(got) != 2 || got[0] != 0 || got[1] != 499 {
		t.Fatalf("boundaries = %v, want [0 499]", got)
	}
}

func TestDetectBoundariesThreeLevels(t *testing.T) {
	got, err := DetectBoundaries(stepSignal(), testParams())
	if err != nil {
		t.Fatalf("DetectBoundaries() error = %v", err)
	}

	if len(got) != 4 {
		t.Fatalf("boundaries = %v, want four", got)
	}

	if got[0] != 0 || got[3] != 299 {
		t.Fatalf("endpoints = %d, %d, want 0, 299", got[0], got[3])
	}

	if got[1] < 96 || got[1] > 102 {
		t.Fatalf("first transition at %d, want near 100", got[1])
	}

	if got[2] < 196 || got[2] > 202 {
		t.Fatalf("second transition at %d, want near 200", got[2])
	}
}

func TestDetectBoundariesSorted(t *testing.T) {
	got, err := DetectBoundaries(stepSignal(), testParams())
	if err != nil {
		t.Fatalf("DetectBoundaries() error = %v", err)
	}

	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("boundaries not strictly ascending: %v", got)
		}
	}
}

func TestDetectBoundariesWideMinWidth(t *testing.T) {
	p := testParams()
	p.MinStepWidth = 150

	got, err := DetectBoundaries(stepSignal(), p)
	if err != nil {
		t.Fatalf("DetectBoundaries() error = %v", err)
	}

	if got[0] != 0 || got[len(got)-1] != 299 {
		t.Fatalf("endpoints of %v, want 0 and 299", got)
	}

	// Both transitions sit closer than 150 samples to a kept neighbor, so
	// at most one of them survives the width filter.
	if len(got) > 3 {
		t.Fatalf("boundaries = %v, want at most three", got)
	}
}

func TestClusterCandidates(t *testing.T) {
	got := clusterCandidates([]int{10, 11, 12, 40}, 15)

	if len(got) != 2 || got[0] != 11 || got[1] != 40 {
		t.Fatalf("clusterCandidates = %v, want [11 40]", got)
	}

	if got := clusterCandidates(nil, 15); len(got) != 0 {
		t.Fatalf("clusterCandidates(nil) = %v, want none", got)
	}
}

func TestFilterByWidth(t *testing.T) {
	got := filterByWidth([]int{0, 10, 50, 99}, 30)
	want := []int{0, 50, 99}

	if len(got) != len(want) {
		t.Fatalf("filterByWidth = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("filterByWidth = %v, want %v", got, want)
		}
	}

	// The terminal boundary survives even when it is too close.
	got = filterByWidth([]int{0, 99, 110}, 30)
	if len(got) != 3 || got[2] != 110 {
		t.Fatalf("filterByWidth = %v, want [0 99 110]", got)
	}
}

func TestDefaultDetectionParams(t *testing.T) {
	p := DefaultDetectionParams()

	if p.MinStepWidth != 30 || p.SmoothingWidth != 10 {
		t.Fatalf("widths = %d, %d, want 30, 10", p.MinStepWidth, p.SmoothingWidth)
	}

	if p.DetectionThreshold != 3.0 || p.MinStepHeight != 0.1 {
		t.Fatalf("thresholds = %v, %v, want 3, 0.1", p.DetectionThreshold, p.MinStepHeight)
	}
}
