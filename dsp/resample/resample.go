package resample

import (
	"errors"

	"gonum.org/v1/gonum/dsp/fourier"
)

var (
	// ErrEmptyInput indicates an empty input sequence.
	ErrEmptyInput = errors.New("resample: empty input")
	// ErrInvalidLength indicates a non-positive target length.
	ErrInvalidLength = errors.New("resample: target length must be > 0")
)

// Resample returns x resampled to length n using the Fourier method.
//
// The spectrum of x is truncated or zero-padded to the target length and
// inverse-transformed. When the shorter of the two lengths is even, the
// shared Nyquist bin is doubled on downsampling and halved on upsampling so
// that real-valued inputs stay real and energy is preserved.
//
// The result is always freshly allocated, including the n == len(x) case.
func Resample(x []float64, n int) ([]float64, error) {
	src := len(x)
	if src == 0 {
		return nil, ErrEmptyInput
	}

	if n < 1 {
		return nil, ErrInvalidLength
	}

	if n == src {
		out := make([]float64, src)
		copy(out, x)

		return out, nil
	}

	fwd := fourier.NewFFT(src)
	spectrum := fwd.Coefficients(nil, x)

	target := make([]complex128, n/2+1)

	shared := src
	if n < shared {
		shared = n
	}

	nyq := shared/2 + 1
	copy(target[:nyq], spectrum[:nyq])

	if shared%2 == 0 {
		if n < src {
			target[shared/2] *= 2
		} else {
			target[shared/2] *= 0.5
		}
	}

	inv := fourier.NewFFT(n)
	out := inv.Sequence(nil, target)

	// Sequence is unnormalized; dividing by the source length folds in both
	// the inverse-transform normalization and the n/src amplitude scale.
	scale := 1 / float64(src)
	for i := range out {
		out[i] *= scale
	}

	return out, nil
}
