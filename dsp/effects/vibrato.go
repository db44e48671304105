package effects

import (
	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/delay"
	"github.com/cwbudde/algo-audiofx/dsp/lfo"
)

const (
	defaultVibratoRate  = 5.0
	minVibratoRate      = 0.1
	maxVibratoRate      = 20.0
	defaultVibratoDepth = 5.0
	minVibratoDepth     = 0.1
	maxVibratoDepth     = 20.0
)

// VibratoOption overrides a vibrato construction default.
type VibratoOption func(*Vibrato)

// WithVibratoRate sets the LFO rate in Hz, clamped to [0.1, 20].
func WithVibratoRate(rate float64) VibratoOption {
	return func(v *Vibrato) { v.setRate(rate) }
}

// WithVibratoDepth sets the modulation depth in ms, clamped to [0.1, 20].
func WithVibratoDepth(depth float64) VibratoOption {
	return func(v *Vibrato) { v.setDepth(depth) }
}

// Vibrato modulates the pitch by reading a fractional delay line at an
// LFO-swept position. The output is fully wet; there is no dry path and
// no feedback.
type Vibrato struct {
	sampleRate int
	rate       float64
	depth      float64

	line *delay.Line
	osc  *lfo.Oscillator
}

// NewVibrato creates a vibrato at 44.1 kHz defaults.
func NewVibrato(opts ...VibratoOption) *Vibrato {
	v := &Vibrato{
		sampleRate: defaultSampleRate,
		rate:       defaultVibratoRate,
		depth:      defaultVibratoDepth,
		line:       newLine(modulationLineCapacity),
	}
	v.osc = lfo.NewOscillator(lfo.Sine, v.rate, float64(v.sampleRate))

	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}

	return v
}

// Name returns the display name.
func (v *Vibrato) Name() string { return "Vibrato" }

// Definitions describes the configurable parameters.
func (v *Vibrato) Definitions() []Def {
	return []Def{
		floatDef("rate", "Vibrato rate in Hz", defaultVibratoRate, minVibratoRate, maxVibratoRate),
		floatDef("depth", "Modulation depth in milliseconds", defaultVibratoDepth, minVibratoDepth, maxVibratoDepth),
	}
}

// Configure applies the given parameter set.
func (v *Vibrato) Configure(set Set) error {
	return applySet(set, v.setParam)
}

func (v *Vibrato) setParam(name string, value Value) error {
	f, err := floatArg(name, value)
	if err != nil {
		return err
	}

	switch name {
	case "rate":
		v.setRate(f)
	case "depth":
		v.setDepth(f)
	default:
		return errUnknownParam(name)
	}

	return nil
}

func (v *Vibrato) setRate(rate float64) {
	v.rate = core.Clamp(rate, minVibratoRate, maxVibratoRate)
	v.osc.SetRate(v.rate)
}

func (v *Vibrato) setDepth(depth float64) {
	v.depth = core.Clamp(depth, minVibratoDepth, maxVibratoDepth)
}

// Parameters reports the current values.
func (v *Vibrato) Parameters() Set {
	return Set{
		"rate":  Float(v.rate),
		"depth": Float(v.depth),
	}
}

func (v *Vibrato) ensureRate(sampleRate int) {
	if sampleRate == v.sampleRate {
		return
	}

	v.sampleRate = sampleRate
	v.osc.SetSampleRate(float64(sampleRate))
	v.line = newLine(int(v.depth * 2 * 0.001 * float64(sampleRate)))
}

// Process runs the vibrato over the buffer into a new one.
func (v *Vibrato) Process(buf *audio.Buffer) (*audio.Buffer, error) {
	if err := validateInput(buf); err != nil {
		return nil, err
	}
	v.ensureRate(buf.SampleRate)

	base := v.depth * 0.001 * float64(v.sampleRate)
	out := buf.Clone()
	for i, x := range buf.Data {
		pos := base * (1 + 0.5*v.osc.Next())
		v.line.Write(x)
		out.Data[i] = v.line.ReadLinear(pos)
	}

	return out, nil
}

// Reset clears the delay line and the LFO phase.
func (v *Vibrato) Reset() {
	v.line.Reset()
	v.osc.Reset()
}

// SupportsFormat reports whether the format can be processed.
func (v *Vibrato) SupportsFormat(sampleRate, channels int) bool {
	return supportsFormat(sampleRate, channels, 2)
}
