// Package gaussian provides 1-D Gaussian smoothing with reflect boundary
// handling.
//
// The filter matches the common image-processing convention: the kernel
// radius is int(4*sigma + 0.5) and the input is extended by symmetric
// reflection (… c b a | a b c … | c b a …) before convolution, so the
// output has the same length as the input and no edge roll-off.
//
// Two convolution paths are used internally:
//
//   - Direct convolution for short kernels, vectorized with algo-vecmath
//   - Single-FFT convolution via algo-fft for long kernels
//
// Both paths produce identical results within floating-point tolerance.
package gaussian
