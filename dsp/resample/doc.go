// Package resample provides Fourier-domain resampling of finite sequences
// to an arbitrary target length.
//
// The input is treated as one period of a periodic signal: its discrete
// spectrum is truncated (downsampling) or zero-padded (upsampling) and
// transformed back at the target length. This preserves the low-frequency
// shape of the segment exactly instead of introducing the phase distortion
// of naive decimation, which is what makes it suitable for comparing the
// shapes of two segments of different length.
//
// Both source and target length may be any positive integer; no rational
// ratio approximation is involved.
package resample
