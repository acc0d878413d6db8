// Package cluster provides density-based clustering of scalar values.
//
// The DBSCAN variant here works on a 1-D sample with |a-b| distance. It
// follows the classic formulation: a core point has at least minSamples
// neighbors (itself included) within eps; clusters grow by expanding the
// neighborhoods of core points; points reachable from no core point are
// labeled noise.
package cluster

import (
	"errors"
	"math"
)

var (
	// ErrEmptyInput indicates an empty value slice.
	ErrEmptyInput = errors.New("cluster: empty input")
	// ErrInvalidEps indicates a negative neighborhood radius.
	ErrInvalidEps = errors.New("cluster: eps must be >= 0")
	// ErrInvalidMinSamples indicates a non-positive density threshold.
	ErrInvalidMinSamples = errors.New("cluster: minSamples must be >= 1")
)

// Noise is the label assigned to points that belong to no cluster.
const Noise = -1

// DBSCAN clusters values and returns one label per input value, in input
// order. Labels are small non-negative integers assigned in order of
// discovery; noise points receive the Noise label. With minSamples == 1
// every point is a core point and no noise can occur.
func DBSCAN(values []float64, eps float64, minSamples int) ([]int, error) {
	n := len(values)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	if eps < 0 {
		return nil, ErrInvalidEps
	}

	if minSamples < 1 {
		return nil, ErrInvalidMinSamples
	}

	const unvisited = -2

	labels := make([]int, n)
	for i := range labels {
		labels[i] = unvisited
	}

	next := 0

	for i := range n {
		if labels[i] != unvisited {
			continue
		}

		neighbors := regionQuery(values, i, eps)
		if len(neighbors) < minSamples {
			labels[i] = Noise

			continue
		}

		labels[i] = next
		expand(values, labels, neighbors, next, eps, minSamples)
		next++
	}

	return labels, nil
}

// expand grows cluster label from the seed neighborhood, reclassifying
// reachable noise points and recursing through the neighborhoods of newly
// found core points.
func expand(values []float64, labels, seeds []int, label int, eps float64, minSamples int) {
	const unvisited = -2

	for k := 0; k < len(seeds); k++ {
		j := seeds[k]

		if labels[j] == Noise {
			labels[j] = label
		}

		if labels[j] != unvisited {
			continue
		}

		labels[j] = label

		neighbors := regionQuery(values, j, eps)
		if len(neighbors) >= minSamples {
			seeds = append(seeds, neighbors...)
		}
	}
}

// regionQuery returns the indices of all values within eps of values[i],
// including i itself.
func regionQuery(values []float64, i int, eps float64) []int {
	var out []int

	for j, v := range values {
		if math.Abs(v-values[i]) <= eps {
			out = append(out, j)
		}
	}

	return out
}

// NumClusters returns the number of distinct non-noise labels.
func NumClusters(labels []int) int {
	seen := make(map[int]struct{})

	for _, l := range labels {
		if l >= 0 {
			seen[l] = struct{}{}
		}
	}

	return len(seen)
}
