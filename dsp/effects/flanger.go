package effects

import (
	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/delay"
	"github.com/cwbudde/algo-audiofx/dsp/lfo"
)

const (
	defaultFlangerRate     = 0.5
	minFlangerRate         = 0.1
	maxFlangerRate         = 10.0
	defaultFlangerDepth    = 2.0
	minFlangerDepth        = 0.1
	maxFlangerDepth        = 10.0
	defaultFlangerFeedback = 0.5
	defaultFlangerMix      = 0.5
)

// FlangerOption overrides a flanger construction default.
type FlangerOption func(*Flanger)

// WithFlangerRate sets the LFO rate in Hz, clamped to [0.1, 10].
func WithFlangerRate(rate float64) FlangerOption {
	return func(f *Flanger) { f.setRate(rate) }
}

// WithFlangerDepth sets the modulation depth in ms, clamped to [0.1, 10].
func WithFlangerDepth(depth float64) FlangerOption {
	return func(f *Flanger) { f.setDepth(depth) }
}

// WithFlangerFeedback sets the feedback amount, clamped to [0, 0.9].
func WithFlangerFeedback(feedback float64) FlangerOption {
	return func(f *Flanger) { f.setFeedback(feedback) }
}

// WithFlangerMix sets the wet amount, clamped to [0, 1].
func WithFlangerMix(mix float64) FlangerOption {
	return func(f *Flanger) { f.setMix(mix) }
}

// Flanger sweeps a short modulated delay from zero up to the full depth
// and adds the wet tap on top of the dry signal, producing the familiar
// jet-engine comb sweep. Unlike the chorus the modulation reaches all
// the way down to a zero-length delay.
type Flanger struct {
	sampleRate int
	rate       float64
	depth      float64
	feedback   float64
	mix        float64

	line *delay.Line
	osc  *lfo.Oscillator
}

// NewFlanger creates a flanger at 44.1 kHz defaults.
func NewFlanger(opts ...FlangerOption) *Flanger {
	f := &Flanger{
		sampleRate: defaultSampleRate,
		rate:       defaultFlangerRate,
		depth:      defaultFlangerDepth,
		feedback:   defaultFlangerFeedback,
		mix:        defaultFlangerMix,
		line:       newLine(modulationLineCapacity),
	}
	f.osc = lfo.NewOscillator(lfo.Sine, f.rate, float64(f.sampleRate))

	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}

	return f
}

// Name returns the display name.
func (f *Flanger) Name() string { return "Flanger" }

// Definitions describes the configurable parameters.
func (f *Flanger) Definitions() []Def {
	return []Def{
		floatDef("rate", "LFO rate in Hz", defaultFlangerRate, minFlangerRate, maxFlangerRate),
		floatDef("depth", "Modulation depth in milliseconds", defaultFlangerDepth, minFlangerDepth, maxFlangerDepth),
		floatDef("feedback", "Feedback amount", defaultFlangerFeedback, 0, maxModulationFeedback),
		floatDef("mix", "Wet/dry mix", defaultFlangerMix, 0, 1),
	}
}

// Configure applies the given parameter set.
func (f *Flanger) Configure(set Set) error {
	return applySet(set, f.setParam)
}

func (f *Flanger) setParam(name string, value Value) error {
	v, err := floatArg(name, value)
	if err != nil {
		return err
	}

	switch name {
	case "rate":
		f.setRate(v)
	case "depth":
		f.setDepth(v)
	case "feedback":
		f.setFeedback(v)
	case "mix":
		f.setMix(v)
	default:
		return errUnknownParam(name)
	}

	return nil
}

func (f *Flanger) setRate(rate float64) {
	f.rate = core.Clamp(rate, minFlangerRate, maxFlangerRate)
	f.osc.SetRate(f.rate)
}

func (f *Flanger) setDepth(depth float64) {
	f.depth = core.Clamp(depth, minFlangerDepth, maxFlangerDepth)
}

func (f *Flanger) setFeedback(feedback float64) {
	f.feedback = core.Clamp(feedback, 0, maxModulationFeedback)
}

func (f *Flanger) setMix(mix float64) {
	f.mix = core.Clamp(mix, 0, 1)
}

// Parameters reports the current values.
func (f *Flanger) Parameters() Set {
	return Set{
		"rate":     Float(f.rate),
		"depth":    Float(f.depth),
		"feedback": Float(f.feedback),
		"mix":      Float(f.mix),
	}
}

func (f *Flanger) ensureRate(sampleRate int) {
	if sampleRate == f.sampleRate {
		return
	}

	f.sampleRate = sampleRate
	f.osc.SetSampleRate(float64(sampleRate))
	f.line = newLine(int(f.depth * 2 * 0.001 * float64(sampleRate)))
}

// Process runs the flanger over the buffer into a new one.
func (f *Flanger) Process(buf *audio.Buffer) (*audio.Buffer, error) {
	if err := validateInput(buf); err != nil {
		return nil, err
	}
	f.ensureRate(buf.SampleRate)

	base := f.depth * 0.001 * float64(f.sampleRate)
	out := buf.Clone()
	for i, x := range buf.Data {
		wet := f.line.ReadLinear(base * (0.5 + 0.5*f.osc.Next()))
		f.line.Write(x + wet*f.feedback)
		out.Data[i] = x + wet*f.mix
	}

	return out, nil
}

// Reset clears the delay line and the LFO phase.
func (f *Flanger) Reset() {
	f.line.Reset()
	f.osc.Reset()
}

// SupportsFormat reports whether the format can be processed.
func (f *Flanger) SupportsFormat(sampleRate, channels int) bool {
	return supportsFormat(sampleRate, channels, 2)
}
