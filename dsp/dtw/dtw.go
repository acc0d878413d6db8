// Package dtw computes the dynamic time warping distance between two
// sequences of possibly different length.
//
// DTW aligns the sequences elastically, tolerating local stretching and
// compression, and sums the |a[i]-b[j]| cost along the optimal alignment.
// The implementation keeps only two rows of the DP matrix, so memory is
// O(len(b)) regardless of input size.
package dtw

import (
	"errors"
	"math"
)

// ErrEmptyInput indicates that one or both input sequences are empty.
var ErrEmptyInput = errors.New("dtw: input sequences must be non-empty")

type config struct {
	window int
}

// Option configures the distance computation.
type Option func(*config)

// WithWindow constrains the alignment to a Sakoe-Chiba band of half-width w,
// so only cells with |i-j| <= w are considered. A non-positive w disables
// the constraint.
func WithWindow(w int) Option {
	return func(cfg *config) {
		cfg.window = w
	}
}

// Distance returns the DTW distance between a and b with absolute-difference
// local cost.
func Distance(a, b []float64, opts ...Option) (float64, error) {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return 0, ErrEmptyInput
	}

	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	window := cfg.window
	if window <= 0 {
		window = n + m
	}

	inf := math.Inf(1)

	prev := make([]float64, m+1)
	curr := make([]float64, m+1)

	for j := 1; j <= m; j++ {
		prev[j] = inf
	}

	for i := 1; i <= n; i++ {
		curr[0] = inf

		for j := 1; j <= m; j++ {
			if absInt(i-j) > window {
				curr[j] = inf

				continue
			}

			cost := math.Abs(a[i-1] - b[j-1])
			curr[j] = cost + min3(prev[j], curr[j-1], prev[j-1])
		}

		prev, curr = curr, prev
	}

	return prev[m], nil
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

func min3(a, b, c float64) float64 {
	if b < a {
		a = b
	}

	if c < a {
		a = c
	}

	return a
}
