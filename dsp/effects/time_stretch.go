package effects

import (
	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/dsp/core"
)

const (
	defaultStretchFactor = 1.0
	minStretchFactor     = 0.25
	maxStretchFactor     = 4.0
	defaultStretchMix    = 1.0
)

// TimeStretchOption overrides a time stretcher construction default.
type TimeStretchOption func(*TimeStretch)

// WithStretchFactor sets the stretch factor, clamped to [0.25, 4].
func WithStretchFactor(factor float64) TimeStretchOption {
	return func(t *TimeStretch) { t.setFactor(factor) }
}

// WithStretchMix sets the dry/wet mix, clamped to [0, 1].
func WithStretchMix(mix float64) TimeStretchOption {
	return func(t *TimeStretch) { t.setMix(mix) }
}

// TimeStretch holds a stretch factor and mix. The factor is accepted
// and reported but not yet applied: Process passes audio through
// unchanged and keeps the length.
//
// TODO: implement the stretch with WSOLA so the length follows the
// factor.
type TimeStretch struct {
	factor float64
	mix    float64
}

// NewTimeStretch creates a time stretcher at the identity factor.
func NewTimeStretch(opts ...TimeStretchOption) *TimeStretch {
	t := &TimeStretch{
		factor: defaultStretchFactor,
		mix:    defaultStretchMix,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}

	return t
}

// Name returns the display name.
func (t *TimeStretch) Name() string { return "Time Stretching" }

// Definitions describes the configurable parameters.
func (t *TimeStretch) Definitions() []Def {
	return []Def{
		floatDef("stretch", "Time stretch factor (1.0 = no change, 2.0 = twice as long)", defaultStretchFactor, minStretchFactor, maxStretchFactor),
		floatDef("mix", "Wet/dry mix (0.0 = dry, 1.0 = wet)", defaultStretchMix, 0, 1),
	}
}

// Configure applies the given parameter set.
func (t *TimeStretch) Configure(set Set) error {
	return applySet(set, func(name string, value Value) error {
		v, err := floatArg(name, value)
		if err != nil {
			return err
		}

		switch name {
		case "stretch":
			t.setFactor(v)
		case "mix":
			t.setMix(v)
		default:
			return errUnknownParam(name)
		}

		return nil
	})
}

func (t *TimeStretch) setFactor(factor float64) {
	t.factor = core.Clamp(factor, minStretchFactor, maxStretchFactor)
}

func (t *TimeStretch) setMix(mix float64) {
	t.mix = core.Clamp(mix, 0, 1)
}

// Parameters reports the current values.
func (t *TimeStretch) Parameters() Set {
	return Set{
		"stretch": Float(t.factor),
		"mix":     Float(t.mix),
	}
}

// Process copies the buffer unchanged.
func (t *TimeStretch) Process(buf *audio.Buffer) (*audio.Buffer, error) {
	if err := validateInput(buf); err != nil {
		return nil, err
	}

	return buf.Clone(), nil
}

// Reset is a no-op; the stretcher carries no state.
func (t *TimeStretch) Reset() {}

// SupportsFormat reports whether the format can be processed.
func (t *TimeStretch) SupportsFormat(sampleRate, channels int) bool {
	return supportsFormat(sampleRate, channels, 2)
}
