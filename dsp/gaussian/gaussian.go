package gaussian

import (
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// fftThreshold is the kernel length above which the single-FFT convolution
// path is cheaper than direct convolution.
const fftThreshold = 128

// Kernel returns normalized Gaussian filter taps for the given standard
// deviation. The radius is int(4*sigma + 0.5), so the kernel has
// 2*radius + 1 taps. A non-positive sigma yields the identity kernel.
func Kernel(sigma float64) []float64 {
	if sigma <= 0 {
		return []float64{1}
	}

	radius := int(4*sigma + 0.5)
	taps := make([]float64, 2*radius+1)

	sum := 0.0
	inv := 1 / (2 * sigma * sigma)
	for i := range taps {
		d := float64(i - radius)
		taps[i] = math.Exp(-d * d * inv)
		sum += taps[i]
	}

	for i := range taps {
		taps[i] /= sum
	}

	return taps
}

// Smooth applies a 1-D Gaussian filter with standard deviation sigma and
// reflect boundary handling. For sigma <= 1 it returns an identical copy of
// the input. The result is always a freshly allocated slice of the same
// length as signal.
func Smooth(signal []float64, sigma float64) []float64 {
	out := make([]float64, len(signal))
	copy(out, signal)

	if sigma <= 1 || len(signal) == 0 {
		return out
	}

	return Filter(signal, sigma)
}

// Filter applies the Gaussian filter unconditionally, without the sigma <= 1
// pass-through of Smooth. Useful for the fixed small sigmas of derivative
// analysis.
func Filter(signal []float64, sigma float64) []float64 {
	n := len(signal)
	if n == 0 {
		return []float64{}
	}

	kernel := Kernel(sigma)
	if len(kernel) == 1 {
		out := make([]float64, n)
		copy(out, signal)

		return out
	}

	radius := len(kernel) / 2
	padded := reflectPad(signal, radius)

	var full []float64
	if len(kernel) >= fftThreshold {
		full = fftConvolve(padded, kernel)
	} else {
		full = directConvolve(padded, kernel)
	}

	// Full convolution of the padded input has length
	// len(padded) + len(kernel) - 1; the valid region aligned with the
	// original samples starts at 2*radius.
	out := make([]float64, n)
	copy(out, full[2*radius:2*radius+n])

	return out
}

// reflectPad extends signal by radius samples on both sides using symmetric
// reflection. Handles radii larger than the signal length by folding the
// index repeatedly.
func reflectPad(signal []float64, radius int) []float64 {
	n := len(signal)
	out := make([]float64, n+2*radius)

	for i := range out {
		out[i] = signal[reflectIndex(i-radius, n)]
	}

	return out
}

// reflectIndex maps an arbitrary index onto [0, n) by symmetric reflection
// with period 2n.
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}

	period := 2 * n

	m := i % period
	if m < 0 {
		m += period
	}

	if m >= n {
		m = period - 1 - m
	}

	return m
}

// directConvolve computes the full linear convolution of a and b in the time
// domain, accumulating one scaled kernel per input sample.
func directConvolve(a, b []float64) []float64 {
	n := len(a)
	m := len(b)
	dst := make([]float64, n+m-1)

	temp := make([]float64, m)
	for i := range n {
		vecmath.ScaleBlock(temp, b, a[i])
		vecmath.AddBlockInPlace(dst[i:i+m], temp)
	}

	return dst
}

// fftConvolve computes the full linear convolution of a and b through a
// single zero-padded FFT round trip.
func fftConvolve(a, b []float64) []float64 {
	n := len(a)
	m := len(b)
	outLen := n + m - 1
	fftSize := nextPowerOf2(outLen)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		// Plan creation only fails on invalid sizes; fall back rather
		// than propagate from a pure smoothing routine.
		return directConvolve(a, b)
	}

	aPadded := make([]complex128, fftSize)
	bPadded := make([]complex128, fftSize)

	for i := range n {
		aPadded[i] = complex(a[i], 0)
	}

	for i := range m {
		bPadded[i] = complex(b[i], 0)
	}

	aFreq := make([]complex128, fftSize)
	bFreq := make([]complex128, fftSize)

	if err := plan.Forward(aFreq, aPadded); err != nil {
		return directConvolve(a, b)
	}

	if err := plan.Forward(bFreq, bPadded); err != nil {
		return directConvolve(a, b)
	}

	for i := range aFreq {
		aFreq[i] *= bFreq[i]
	}

	resultTime := make([]complex128, fftSize)
	if err := plan.Inverse(resultTime, aFreq); err != nil {
		return directConvolve(a, b)
	}

	result := make([]float64, outLen)
	for i := range result {
		result[i] = real(resultTime[i])
	}

	return result
}

// nextPowerOf2 returns the smallest power of two >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
