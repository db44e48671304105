// Package spectrum provides frequency-domain analysis for audio buffers.
//
// Magnitude and power extraction run on the vecmath kernels. The Analyzer
// wraps a power-of-two FFT plan and reduces a buffer to a small level and
// peak summary, which backs the command line analyze mode.
package spectrum
