package gaussian

import (
	"math"
	"testing"
)

func BenchmarkSmooth(b *testing.B) {
	x := make([]float64, 100000)
	for i := range x {
		x[i] = math.Sin(float64(i) / 50)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		_ = Smooth(x, 10)
	}
}

func BenchmarkFilterFFTPath(b *testing.B) {
	x := make([]float64, 100000)
	for i := range x {
		x[i] = math.Sin(float64(i) / 50)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		_ = Filter(x, 16)
	}
}
