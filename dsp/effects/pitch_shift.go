package effects

import (
	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/dsp/core"
)

const (
	defaultPitchFactor = 1.0
	minPitchFactor     = 0.25
	maxPitchFactor     = 4.0
	defaultPitchMix    = 1.0
)

// PitchShiftOption overrides a pitch shifter construction default.
type PitchShiftOption func(*PitchShift)

// WithPitchFactor sets the shift factor, clamped to [0.25, 4].
func WithPitchFactor(factor float64) PitchShiftOption {
	return func(p *PitchShift) { p.setFactor(factor) }
}

// WithPitchMix sets the dry/wet mix, clamped to [0, 1].
func WithPitchMix(mix float64) PitchShiftOption {
	return func(p *PitchShift) { p.setMix(mix) }
}

// PitchShift holds a pitch shift factor and mix. The factor is accepted
// and reported but not yet applied: Process passes audio through
// unchanged.
//
// TODO: implement the shift with a phase vocoder on top of the spectrum
// package.
type PitchShift struct {
	factor float64
	mix    float64
}

// NewPitchShift creates a pitch shifter at the identity factor.
func NewPitchShift(opts ...PitchShiftOption) *PitchShift {
	p := &PitchShift{
		factor: defaultPitchFactor,
		mix:    defaultPitchMix,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p
}

// Name returns the display name.
func (p *PitchShift) Name() string { return "Pitch Shifting" }

// Definitions describes the configurable parameters.
func (p *PitchShift) Definitions() []Def {
	return []Def{
		floatDef("pitch", "Pitch shift factor (1.0 = no change, 2.0 = octave up)", defaultPitchFactor, minPitchFactor, maxPitchFactor),
		floatDef("mix", "Wet/dry mix (0.0 = dry, 1.0 = wet)", defaultPitchMix, 0, 1),
	}
}

// Configure applies the given parameter set.
func (p *PitchShift) Configure(set Set) error {
	return applySet(set, func(name string, value Value) error {
		v, err := floatArg(name, value)
		if err != nil {
			return err
		}

		switch name {
		case "pitch":
			p.setFactor(v)
		case "mix":
			p.setMix(v)
		default:
			return errUnknownParam(name)
		}

		return nil
	})
}

func (p *PitchShift) setFactor(factor float64) {
	p.factor = core.Clamp(factor, minPitchFactor, maxPitchFactor)
}

func (p *PitchShift) setMix(mix float64) {
	p.mix = core.Clamp(mix, 0, 1)
}

// Parameters reports the current values.
func (p *PitchShift) Parameters() Set {
	return Set{
		"pitch": Float(p.factor),
		"mix":   Float(p.mix),
	}
}

// Process copies the buffer unchanged.
func (p *PitchShift) Process(buf *audio.Buffer) (*audio.Buffer, error) {
	if err := validateInput(buf); err != nil {
		return nil, err
	}

	return buf.Clone(), nil
}

// Reset is a no-op; the shifter carries no state.
func (p *PitchShift) Reset() {}

// SupportsFormat reports whether the format can be processed.
func (p *PitchShift) SupportsFormat(sampleRate, channels int) bool {
	return supportsFormat(sampleRate, channels, 2)
}
