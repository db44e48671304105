// Package filter provides the small filters the effect catalog is built
// from: one-pole smoothers for damping and band splitting, and a resonant
// bandpass for envelope-controlled sweeps.
package filter

import "github.com/cwbudde/algo-audiofx/dsp/core"

// OnePole is a first-order low-pass smoother:
//
//	y[n] = y[n-1] + alpha * (x[n] - y[n-1])
//
// alpha in [0, 1]; 0 freezes the state, 1 passes the input through.
type OnePole struct {
	alpha float64
	state float64
}

// NewOnePole returns a smoother with the given coefficient, clamped to [0, 1].
func NewOnePole(alpha float64) *OnePole {
	return &OnePole{alpha: core.Clamp(alpha, 0, 1)}
}

// SetAlpha updates the smoothing coefficient, clamped to [0, 1].
func (f *OnePole) SetAlpha(alpha float64) {
	f.alpha = core.Clamp(alpha, 0, 1)
}

// Alpha returns the current smoothing coefficient.
func (f *OnePole) Alpha() float64 {
	return f.alpha
}

// Process filters one sample and returns the smoothed output.
func (f *OnePole) Process(x float64) float64 {
	f.state += f.alpha * (x - f.state)

	return f.state
}

// State returns the current filter memory.
func (f *OnePole) State() float64 {
	return f.state
}

// Reset clears the filter memory.
func (f *OnePole) Reset() {
	f.state = 0
}
