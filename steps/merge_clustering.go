package steps

import (
	"sort"

	"github.com/cwbudde/algo-steps/dsp/cluster"
	"github.com/cwbudde/algo-steps/stats/series"
)

// Clustering merges steps by density-clustering their levels: steps whose
// levels fall into the same cluster are merged, but only along
// index-contiguous runs. A cluster whose members are separated by steps of
// another level therefore yields several merged records, one per run; the
// strategy never bridges across an intervening step.
type Clustering struct {
	// EpsFactor scales the standard deviation of the levels to obtain the
	// clustering neighborhood radius.
	EpsFactor float64

	// MinSamples is the DBSCAN density threshold; zero means 1, under
	// which every step joins a cluster and none is noise.
	MinSamples int
}

// Merge implements Merger. Degenerate inputs (fewer than two steps, zero
// level variance, or a single resulting cluster) return an untouched copy
// of the input.
func (m Clustering) Merge(steps []Step) []Step {
	if len(steps) < 2 {
		return cloneSteps(steps)
	}

	levels := make([]float64, len(steps))
	for i := range steps {
		levels[i] = steps[i].Level
	}

	eps := m.EpsFactor * series.Std(levels)
	if eps <= 0 {
		return cloneSteps(steps)
	}

	minSamples := m.MinSamples
	if minSamples < 1 {
		minSamples = 1
	}

	labels, err := cluster.DBSCAN(levels, eps, minSamples)
	if err != nil || cluster.NumClusters(labels) <= 1 {
		return cloneSteps(steps)
	}

	var out []Step

	for i := 0; i < len(steps); {
		j := i
		for j+1 < len(steps) && labels[j+1] == labels[i] && labels[i] != cluster.Noise {
			j++
		}

		out = append(out, combineGroup(steps[i:j+1]))
		i = j + 1
	}

	sort.Slice(out, func(a, b int) bool {
		return out[a].Start < out[b].Start
	})

	return out
}
