package dtw

import (
	"math"
	"testing"
)

func BenchmarkDistance(b *testing.B) {
	x := make([]float64, 500)
	y := make([]float64, 400)

	for i := range x {
		x[i] = math.Sin(float64(i) / 20)
	}

	for i := range y {
		y[i] = math.Sin(float64(i) / 16)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		_, _ = Distance(x, y)
	}
}

func BenchmarkDistanceWindowed(b *testing.B) {
	x := make([]float64, 500)
	y := make([]float64, 500)

	for i := range x {
		x[i] = math.Sin(float64(i) / 20)
		y[i] = math.Sin(float64(i) / 16)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		_, _ = Distance(x, y, WithWindow(50))
	}
}
