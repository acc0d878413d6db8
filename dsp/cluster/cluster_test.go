package cluster

import (
	"errors"
	"testing"
)

func TestDBSCANTwoGroups(t *testing.T) {
	values := []float64{0, 0.1, 5, 5.1}

	labels, err := DBSCAN(values, 0.5, 1)
	if err != nil {
		t.Fatalf("DBSCAN() error = %v", err)
	}

	want := []int{0, 0, 1, 1}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("labels = %v, want %v", labels, want)
		}
	}

	if n := NumClusters(labels); n != 2 {
		t.Fatalf("NumClusters = %d, want 2", n)
	}
}

func TestDBSCANNoise(t *testing.T) {
	values := []float64{0, 0.1, 0.2, 10}

	labels, err := DBSCAN(values, 0.5, 3)
	if err != nil {
		t.Fatalf("DBSCAN() error = %v", err)
	}

	want := []int{0, 0, 0, Noise}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("labels = %v, want %v", labels, want)
		}
	}

	if n := NumClusters(labels); n != 1 {
		t.Fatalf("NumClusters = %d, want 1", n)
	}
}

func TestDBSCANMinSamplesOneHasNoNoise(t *testing.T) {
	values := []float64{-3, 0, 7, 100}

	labels, err := DBSCAN(values, 0.5, 1)
	if err != nil {
		t.Fatalf("DBSCAN() error = %v", err)
	}

	for i, l := range labels {
		if l == Noise {
			t.Fatalf("labels[%d] = Noise with minSamples 1", i)
		}
	}

	if n := NumClusters(labels); n != 4 {
		t.Fatalf("NumClusters = %d, want 4", n)
	}
}

func TestDBSCANChainExpansion(t *testing.T) {
	// Each point is within eps of its neighbor, so density reachability
	// chains the whole run into one cluster.
	values := []float64{0, 0.4, 0.8, 1.2, 1.6}

	labels, err := DBSCAN(values, 0.5, 2)
	if err != nil {
		t.Fatalf("DBSCAN() error = %v", err)
	}

	for i, l := range labels {
		if l != 0 {
			t.Fatalf("labels[%d] = %d, want 0", i, l)
		}
	}
}

func TestDBSCANValidation(t *testing.T) {
	if _, err := DBSCAN(nil, 1, 1); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}

	if _, err := DBSCAN([]float64{1}, -1, 1); !errors.Is(err, ErrInvalidEps) {
		t.Fatalf("err = %v, want ErrInvalidEps", err)
	}

	if _, err := DBSCAN([]float64{1}, 1, 0); !errors.Is(err, ErrInvalidMinSamples) {
		t.Fatalf("err = %v, want ErrInvalidMinSamples", err)
	}
}

func TestNumClustersIgnoresNoise(t *testing.T) {
	if n := NumClusters([]int{Noise, Noise}); n != 0 {
		t.Fatalf("NumClusters = %d, want 0", n)
	}

	if n := NumClusters([]int{0, 1, 1, Noise, 2}); n != 3 {
		t.Fatalf("NumClusters = %d, want 3", n)
	}
}
