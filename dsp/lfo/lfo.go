// Package lfo provides the low-frequency oscillators that drive delay-time,
// gain, and filter modulation in the effect catalog.
package lfo

import "math"

// Shape selects the oscillator waveform.
type Shape int

const (
	Sine Shape = iota
	Triangle
	Square
	Sawtooth
)

// String returns the lowercase waveform name.
func (s Shape) String() string {
	switch s {
	case Sine:
		return "sine"
	case Triangle:
		return "triangle"
	case Square:
		return "square"
	case Sawtooth:
		return "sawtooth"
	default:
		return "unknown"
	}
}

// ShapeFromInt maps an integer selector to a Shape.
// Out-of-range values fall back to Sine.
func ShapeFromInt(v int) Shape {
	switch v {
	case 1:
		return Triangle
	case 2:
		return Square
	case 3:
		return Sawtooth
	default:
		return Sine
	}
}

// Value evaluates the waveform at phase. Phase is taken modulo 1; the result
// is in [-1, 1].
func Value(shape Shape, phase float64) float64 {
	t := phase - math.Floor(phase)

	switch shape {
	case Triangle:
		if t < 0.5 {
			return 4*t - 1
		}
		return 3 - 4*t
	case Square:
		if t < 0.5 {
			return 1
		}
		return -1
	case Sawtooth:
		return 2*t - 1
	default:
		return math.Sin(2 * math.Pi * t)
	}
}

// Oscillator accumulates phase at rateHz/sampleRate per sample.
type Oscillator struct {
	shape      Shape
	rateHz     float64
	sampleRate float64
	phase      float64
}

// NewOscillator returns an oscillator starting at phase zero.
func NewOscillator(shape Shape, rateHz, sampleRate float64) *Oscillator {
	return &Oscillator{shape: shape, rateHz: rateHz, sampleRate: sampleRate}
}

// Next returns the waveform value at the current phase, then advances the
// phase by one sample and wraps it at 1.
func (o *Oscillator) Next() float64 {
	v := Value(o.shape, o.phase)

	if o.sampleRate > 0 {
		o.phase += o.rateHz / o.sampleRate
		if o.phase >= 1 {
			o.phase -= 1
		}
	}

	return v
}

// Phase returns the current phase in [0, 1).
func (o *Oscillator) Phase() float64 {
	return o.phase
}

// SetShape switches the waveform without disturbing the phase.
func (o *Oscillator) SetShape(shape Shape) {
	o.shape = shape
}

// SetRate updates the oscillation rate in Hz.
func (o *Oscillator) SetRate(rateHz float64) {
	o.rateHz = rateHz
}

// SetSampleRate updates the sample rate the phase increment derives from.
func (o *Oscillator) SetSampleRate(sampleRate float64) {
	o.sampleRate = sampleRate
}

// Reset returns the phase to zero.
func (o *Oscillator) Reset() {
	o.phase = 0
}
