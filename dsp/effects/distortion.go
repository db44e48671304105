package effects

import (
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/dsp/core"
)

const (
	defaultDistortionGain      = 2.0
	minDistortionGain          = 0.1
	maxDistortionGain          = 10.0
	defaultDistortionThreshold = 0.7
	minDistortionThreshold     = 0.1
	defaultDistortionMix       = 1.0
	defaultDistortionOutput    = 0.8
	minDistortionOutput        = 0.1
)

// Distortion shaping curves.
const (
	DistortionSoft = iota
	DistortionHard
	DistortionOverdrive
	DistortionFuzz
)

// DistortionOption overrides a distortion construction default.
type DistortionOption func(*Distortion)

// WithDistortionGain sets the input gain, clamped to [0.1, 10].
func WithDistortionGain(gain float64) DistortionOption {
	return func(d *Distortion) { d.setGain(gain) }
}

// WithDistortionType selects the shaping curve, clamped to the known
// types.
func WithDistortionType(typ int) DistortionOption {
	return func(d *Distortion) { d.setType(typ) }
}

// WithDistortionMix sets the dry/wet mix, clamped to [0, 1].
func WithDistortionMix(mix float64) DistortionOption {
	return func(d *Distortion) { d.setMix(mix) }
}

// Distortion is a stateless waveshaper with four curves: tanh soft
// clipping, hard clipping at the threshold, an overdrive that
// compresses only the excess above the threshold, and a near-square
// fuzz. The shaped signal is mixed against the dry input, scaled by the
// output level, and clamped to [-1, 1].
type Distortion struct {
	gain      float64
	threshold float64
	mix       float64
	output    float64
	typ       int
}

// NewDistortion creates a distortion with soft clipping defaults.
func NewDistortion(opts ...DistortionOption) *Distortion {
	d := &Distortion{
		gain:      defaultDistortionGain,
		threshold: defaultDistortionThreshold,
		mix:       defaultDistortionMix,
		output:    defaultDistortionOutput,
		typ:       DistortionSoft,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	return d
}

// Name returns the display name.
func (d *Distortion) Name() string { return "Distortion" }

// Definitions describes the configurable parameters.
func (d *Distortion) Definitions() []Def {
	return []Def{
		floatDef("gain", "Input gain amount", defaultDistortionGain, minDistortionGain, maxDistortionGain),
		floatDef("threshold", "Distortion threshold", defaultDistortionThreshold, minDistortionThreshold, 1),
		floatDef("mix", "Wet/dry mix (0.0 = dry, 1.0 = wet)", defaultDistortionMix, 0, 1),
		floatDef("output", "Output level", defaultDistortionOutput, minDistortionOutput, 1),
		intDef("type", "Distortion type (0=Soft, 1=Hard, 2=Overdrive, 3=Fuzz)", DistortionSoft, DistortionSoft, DistortionFuzz),
	}
}

// Configure applies the given parameter set.
func (d *Distortion) Configure(set Set) error {
	return applySet(set, func(name string, value Value) error {
		if name == "type" {
			i, err := intArg(name, value)
			if err != nil {
				return err
			}
			d.setType(i)

			return nil
		}

		v, err := floatArg(name, value)
		if err != nil {
			return err
		}

		switch name {
		case "gain":
			d.setGain(v)
		case "threshold":
			d.setThreshold(v)
		case "mix":
			d.setMix(v)
		case "output":
			d.setOutput(v)
		default:
			return errUnknownParam(name)
		}

		return nil
	})
}

func (d *Distortion) setGain(gain float64) {
	d.gain = core.Clamp(gain, minDistortionGain, maxDistortionGain)
}

func (d *Distortion) setThreshold(threshold float64) {
	d.threshold = core.Clamp(threshold, minDistortionThreshold, 1)
}

func (d *Distortion) setMix(mix float64) {
	d.mix = core.Clamp(mix, 0, 1)
}

func (d *Distortion) setOutput(output float64) {
	d.output = core.Clamp(output, minDistortionOutput, 1)
}

func (d *Distortion) setType(typ int) {
	if typ < DistortionSoft {
		typ = DistortionSoft
	}
	if typ > DistortionFuzz {
		typ = DistortionFuzz
	}
	d.typ = typ
}

// Parameters reports the current values.
func (d *Distortion) Parameters() Set {
	return Set{
		"gain":      Float(d.gain),
		"threshold": Float(d.threshold),
		"mix":       Float(d.mix),
		"output":    Float(d.output),
		"type":      Int(d.typ),
	}
}

func (d *Distortion) shape(g float64) float64 {
	switch d.typ {
	case DistortionHard:
		return core.Clamp(g, -d.threshold, d.threshold)
	case DistortionOverdrive:
		return d.overdrive(g)
	case DistortionFuzz:
		return d.fuzz(g)
	default:
		return math.Tanh(g)
	}
}

// overdrive passes the signal untouched under the threshold and
// compresses only the excess, which rounds the knee without touching
// low-level detail.
func (d *Distortion) overdrive(g float64) float64 {
	abs := math.Abs(g)
	if abs < d.threshold {
		return g
	}

	excess := abs - d.threshold
	return math.Copysign(d.threshold+excess/(1+2*excess), g)
}

// fuzz regains the already gained signal, so it slams into the rails
// almost immediately and approaches a square wave.
func (d *Distortion) fuzz(g float64) float64 {
	z := g * d.gain * 2
	switch {
	case z > d.threshold:
		return 1
	case z < -d.threshold:
		return -1
	default:
		return z / d.threshold
	}
}

// Process runs the waveshaper over the buffer into a new one.
func (d *Distortion) Process(buf *audio.Buffer) (*audio.Buffer, error) {
	if err := validateInput(buf); err != nil {
		return nil, err
	}

	out := buf.Clone()
	for i, x := range buf.Data {
		shaped := d.shape(x * d.gain)
		out.Data[i] = core.Clamp((x*(1-d.mix)+shaped*d.mix)*d.output, -1, 1)
	}

	return out, nil
}

// Reset is a no-op; the waveshaper carries no state.
func (d *Distortion) Reset() {}

// SupportsFormat reports whether the format can be processed.
func (d *Distortion) SupportsFormat(sampleRate, channels int) bool {
	return supportsFormat(sampleRate, channels, 8)
}
