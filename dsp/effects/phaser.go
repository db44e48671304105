package effects

import (
	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/lfo"
)

const (
	defaultPhaserRate     = 0.5
	minPhaserRate         = 0.1
	maxPhaserRate         = 10.0
	defaultPhaserDepth    = 1.0
	maxPhaserDepth        = 2.0
	defaultPhaserFeedback = 0.7
	defaultPhaserMix      = 0.5

	phaserStages = 4
)

// PhaserOption overrides a phaser construction default.
type PhaserOption func(*Phaser)

// WithPhaserRate sets the LFO rate in Hz, clamped to [0.1, 10].
func WithPhaserRate(rate float64) PhaserOption {
	return func(p *Phaser) { p.setRate(rate) }
}

// WithPhaserDepth sets the modulation depth, clamped to [0, 2].
func WithPhaserDepth(depth float64) PhaserOption {
	return func(p *Phaser) { p.setDepth(depth) }
}

// WithPhaserFeedback sets the feedback amount, clamped to [0, 0.9].
func WithPhaserFeedback(feedback float64) PhaserOption {
	return func(p *Phaser) { p.setFeedback(feedback) }
}

// WithPhaserMix sets the dry/wet mix, clamped to [0, 1].
func WithPhaserMix(mix float64) PhaserOption {
	return func(p *Phaser) { p.setMix(mix) }
}

// Phaser runs the signal through four cascaded one-sample all-pass
// stages whose coefficients ride the LFO, each stage notching a
// different part of the spectrum as the sweep moves.
type Phaser struct {
	sampleRate int
	rate       float64
	depth      float64
	feedback   float64
	mix        float64

	osc    *lfo.Oscillator
	stages [phaserStages]float64
}

// NewPhaser creates a phaser at 44.1 kHz defaults.
func NewPhaser(opts ...PhaserOption) *Phaser {
	p := &Phaser{
		sampleRate: defaultSampleRate,
		rate:       defaultPhaserRate,
		depth:      defaultPhaserDepth,
		feedback:   defaultPhaserFeedback,
		mix:        defaultPhaserMix,
	}
	p.osc = lfo.NewOscillator(lfo.Sine, p.rate, float64(p.sampleRate))

	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p
}

// Name returns the display name.
func (p *Phaser) Name() string { return "Phaser" }

// Definitions describes the configurable parameters.
func (p *Phaser) Definitions() []Def {
	return []Def{
		floatDef("rate", "LFO rate in Hz", defaultPhaserRate, minPhaserRate, maxPhaserRate),
		floatDef("depth", "Modulation depth", defaultPhaserDepth, 0, maxPhaserDepth),
		floatDef("feedback", "Feedback amount", defaultPhaserFeedback, 0, maxModulationFeedback),
		floatDef("mix", "Wet/dry mix", defaultPhaserMix, 0, 1),
	}
}

// Configure applies the given parameter set.
func (p *Phaser) Configure(set Set) error {
	return applySet(set, p.setParam)
}

func (p *Phaser) setParam(name string, value Value) error {
	v, err := floatArg(name, value)
	if err != nil {
		return err
	}

	switch name {
	case "rate":
		p.setRate(v)
	case "depth":
		p.setDepth(v)
	case "feedback":
		p.setFeedback(v)
	case "mix":
		p.setMix(v)
	default:
		return errUnknownParam(name)
	}

	return nil
}

func (p *Phaser) setRate(rate float64) {
	p.rate = core.Clamp(rate, minPhaserRate, maxPhaserRate)
	p.osc.SetRate(p.rate)
}

func (p *Phaser) setDepth(depth float64) {
	p.depth = core.Clamp(depth, 0, maxPhaserDepth)
}

func (p *Phaser) setFeedback(feedback float64) {
	p.feedback = core.Clamp(feedback, 0, maxModulationFeedback)
}

func (p *Phaser) setMix(mix float64) {
	p.mix = core.Clamp(mix, 0, 1)
}

// Parameters reports the current values.
func (p *Phaser) Parameters() Set {
	return Set{
		"rate":     Float(p.rate),
		"depth":    Float(p.depth),
		"feedback": Float(p.feedback),
		"mix":      Float(p.mix),
	}
}

func (p *Phaser) ensureRate(sampleRate int) {
	if sampleRate == p.sampleRate {
		return
	}

	p.sampleRate = sampleRate
	p.osc.SetSampleRate(float64(sampleRate))
}

// Process runs the phaser over the buffer into a new one.
func (p *Phaser) Process(buf *audio.Buffer) (*audio.Buffer, error) {
	if err := validateInput(buf); err != nil {
		return nil, err
	}
	p.ensureRate(buf.SampleRate)

	out := buf.Clone()
	for i, x := range buf.Data {
		shift := p.depth * p.osc.Next()

		sig := x
		for s := range p.stages {
			g := 0.5 + 0.3*shift*float64(s+1)/phaserStages
			delayed := p.stages[s] * g
			stageOut := sig + delayed
			p.stages[s] = sig - delayed*0.7
			sig = stageOut
		}

		phased := sig + x*p.feedback*0.3
		out.Data[i] = core.Clamp(x*(1-p.mix)+phased*p.mix, -1, 1)
	}

	return out, nil
}

// Reset clears the all-pass states and the LFO phase.
func (p *Phaser) Reset() {
	p.stages = [phaserStages]float64{}
	p.osc.Reset()
}

// SupportsFormat reports whether the format can be processed.
func (p *Phaser) SupportsFormat(sampleRate, channels int) bool {
	return supportsFormat(sampleRate, channels, 2)
}
