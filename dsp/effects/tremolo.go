package effects

import (
	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/lfo"
)

const (
	defaultTremoloRate  = 5.0
	minTremoloRate      = 0.1
	maxTremoloRate      = 20.0
	defaultTremoloDepth = 0.7
)

// TremoloOption overrides a tremolo construction default.
type TremoloOption func(*Tremolo)

// WithTremoloRate sets the LFO rate in Hz, clamped to [0.1, 20].
func WithTremoloRate(rate float64) TremoloOption {
	return func(t *Tremolo) { t.setRate(rate) }
}

// WithTremoloDepth sets the modulation depth, clamped to [0, 1].
func WithTremoloDepth(depth float64) TremoloOption {
	return func(t *Tremolo) { t.setDepth(depth) }
}

// WithTremoloShape sets the LFO waveform.
func WithTremoloShape(shape lfo.Shape) TremoloOption {
	return func(t *Tremolo) { t.setWave(int(shape)) }
}

// Tremolo modulates the amplitude with a selectable LFO waveform. The
// gain swings between 1-depth and 1, so depth 0 is transparent and
// depth 1 pulses down to silence.
type Tremolo struct {
	sampleRate int
	rate       float64
	depth      float64
	shape      lfo.Shape

	osc *lfo.Oscillator
}

// NewTremolo creates a tremolo at 44.1 kHz defaults with a sine LFO.
func NewTremolo(opts ...TremoloOption) *Tremolo {
	t := &Tremolo{
		sampleRate: defaultSampleRate,
		rate:       defaultTremoloRate,
		depth:      defaultTremoloDepth,
		shape:      lfo.Sine,
	}
	t.osc = lfo.NewOscillator(t.shape, t.rate, float64(t.sampleRate))

	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}

	return t
}

// Name returns the display name.
func (t *Tremolo) Name() string { return "Tremolo" }

// Definitions describes the configurable parameters.
func (t *Tremolo) Definitions() []Def {
	return []Def{
		floatDef("rate", "Tremolo rate in Hz", defaultTremoloRate, minTremoloRate, maxTremoloRate),
		floatDef("depth", "Modulation depth (0.0 to 1.0)", defaultTremoloDepth, 0, 1),
		intDef("wave", "Wave shape (0=Sine, 1=Triangle, 2=Square, 3=Sawtooth)", 0, 0, 3),
	}
}

// Configure applies the given parameter set.
func (t *Tremolo) Configure(set Set) error {
	return applySet(set, t.setParam)
}

func (t *Tremolo) setParam(name string, value Value) error {
	switch name {
	case "rate":
		v, err := floatArg(name, value)
		if err != nil {
			return err
		}
		t.setRate(v)
	case "depth":
		v, err := floatArg(name, value)
		if err != nil {
			return err
		}
		t.setDepth(v)
	case "wave":
		v, err := intArg(name, value)
		if err != nil {
			return err
		}
		t.setWave(v)
	default:
		return errUnknownParam(name)
	}

	return nil
}

func (t *Tremolo) setRate(rate float64) {
	t.rate = core.Clamp(rate, minTremoloRate, maxTremoloRate)
	t.osc.SetRate(t.rate)
}

func (t *Tremolo) setDepth(depth float64) {
	t.depth = core.Clamp(depth, 0, 1)
}

func (t *Tremolo) setWave(wave int) {
	if wave < 0 {
		wave = 0
	}
	if wave > 3 {
		wave = 3
	}

	t.shape = lfo.ShapeFromInt(wave)
	t.osc.SetShape(t.shape)
}

// Parameters reports the current values.
func (t *Tremolo) Parameters() Set {
	return Set{
		"rate":  Float(t.rate),
		"depth": Float(t.depth),
		"wave":  Int(int(t.shape)),
	}
}

func (t *Tremolo) ensureRate(sampleRate int) {
	if sampleRate == t.sampleRate {
		return
	}

	t.sampleRate = sampleRate
	t.osc.SetSampleRate(float64(sampleRate))
}

// Process runs the tremolo over the buffer into a new one.
func (t *Tremolo) Process(buf *audio.Buffer) (*audio.Buffer, error) {
	if err := validateInput(buf); err != nil {
		return nil, err
	}
	t.ensureRate(buf.SampleRate)

	out := buf.Clone()
	for i, x := range buf.Data {
		gain := 1 - t.depth*(0.5*t.osc.Next()+0.5)
		out.Data[i] = x * gain
	}

	return out, nil
}

// Reset clears the LFO phase.
func (t *Tremolo) Reset() {
	t.osc.Reset()
}

// SupportsFormat reports whether the format can be processed.
func (t *Tremolo) SupportsFormat(sampleRate, channels int) bool {
	return supportsFormat(sampleRate, channels, 8)
}
