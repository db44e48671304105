package effects

import (
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/delay"
	"github.com/cwbudde/algo-audiofx/dsp/filter"
)

const (
	defaultReverbRoomSize   = 0.5
	minReverbRoomSize       = 0.1
	maxReverbRoomSize       = 1.0
	defaultReverbDamping    = 0.5
	defaultReverbMix        = 0.3
	defaultReverbFeedback   = 0.5
	maxReverbFeedback       = 0.9
	defaultReverbPreDelayMs = 20.0
	maxReverbPreDelayMs     = 100.0

	reverbCombCount   = 6
	reverbBaseDelayMs = 30.0

	// Room size and pre-delay changes at or below these thresholds keep
	// the existing comb network instead of rebuilding it.
	reverbRoomSizeThreshold   = 0.01
	reverbPreDelayThresholdMs = 0.1
)

// Comb length ratios, chosen to avoid common periods between lines.
var reverbCombMultipliers = [reverbCombCount]float64{1.0, 1.3, 1.7, 2.1, 2.7, 3.1}

// ReverbOption overrides a reverb construction default.
type ReverbOption func(*Reverb)

// WithReverbRoomSize sets the room size, clamped to [0.1, 1].
func WithReverbRoomSize(size float64) ReverbOption {
	return func(r *Reverb) { r.setRoomSize(size) }
}

// WithReverbDamping sets the feedback damping, clamped to [0, 1].
func WithReverbDamping(damping float64) ReverbOption {
	return func(r *Reverb) { r.setDamping(damping) }
}

// WithReverbMix sets the dry/wet mix, clamped to [0, 1].
func WithReverbMix(mix float64) ReverbOption {
	return func(r *Reverb) { r.setMix(mix) }
}

// Reverb is a parallel comb network. Six feedback combs with mutually
// detuned lengths run off a shared pre-delayed input; each comb damps
// its feedback path with a one-pole low-pass and later combs
// recirculate slightly less, so the tail decays instead of ringing at
// one period. Odd combs enter the wet sum inverted at reduced weight to
// thin out comb coloration.
//
// The comb network is sized from the room size and the sample rate, so
// it is built lazily on the first Process call and rebuilt when either
// changes.
type Reverb struct {
	sampleRate int
	roomSize   float64
	damping    float64
	mix        float64
	feedback   float64
	preDelayMs float64

	combs      []*delay.Line
	dampers    []*filter.OnePole
	preLine    *delay.Line
	preSamples int
}

// NewReverb creates a reverb at 44.1 kHz defaults.
func NewReverb(opts ...ReverbOption) *Reverb {
	r := &Reverb{
		sampleRate: defaultSampleRate,
		roomSize:   defaultReverbRoomSize,
		damping:    defaultReverbDamping,
		mix:        defaultReverbMix,
		feedback:   defaultReverbFeedback,
		preDelayMs: defaultReverbPreDelayMs,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

// Name returns the display name.
func (r *Reverb) Name() string { return "Reverb" }

// Definitions describes the configurable parameters.
func (r *Reverb) Definitions() []Def {
	return []Def{
		floatDef("room_size", "Room size (0.0 = small, 1.0 = large)", defaultReverbRoomSize, minReverbRoomSize, maxReverbRoomSize),
		floatDef("damping", "High frequency damping", defaultReverbDamping, 0, 1),
		floatDef("mix", "Wet/dry mix (0.0 = dry, 1.0 = wet)", defaultReverbMix, 0, 1),
		floatDef("feedback", "Feedback amount", defaultReverbFeedback, 0, maxReverbFeedback),
		floatDef("pre_delay", "Pre-delay time in milliseconds", defaultReverbPreDelayMs, 0, maxReverbPreDelayMs),
	}
}

// Configure applies the given parameter set. The comb network is
// rebuilt at most once after all entries are applied, and only when the
// room size or pre-delay moved beyond its threshold.
func (r *Reverb) Configure(set Set) error {
	reinit := false
	for name, value := range set {
		v, err := floatArg(name, value)
		if err != nil {
			return err
		}

		switch name {
		case "room_size":
			v = core.Clamp(v, minReverbRoomSize, maxReverbRoomSize)
			if math.Abs(v-r.roomSize) > reverbRoomSizeThreshold {
				r.roomSize = v
				reinit = true
			}
		case "damping":
			r.setDamping(v)
		case "mix":
			r.setMix(v)
		case "feedback":
			r.setFeedback(v)
		case "pre_delay":
			v = core.Clamp(v, 0, maxReverbPreDelayMs)
			if math.Abs(v-r.preDelayMs) > reverbPreDelayThresholdMs {
				r.preDelayMs = v
				reinit = true
			}
		default:
			return errUnknownParam(name)
		}
	}

	if reinit && r.combs != nil {
		r.rebuild()
	}

	return nil
}

func (r *Reverb) setRoomSize(size float64) {
	size = core.Clamp(size, minReverbRoomSize, maxReverbRoomSize)
	if math.Abs(size-r.roomSize) <= reverbRoomSizeThreshold {
		return
	}

	r.roomSize = size
	if r.combs != nil {
		r.rebuild()
	}
}

func (r *Reverb) setDamping(damping float64) {
	r.damping = core.Clamp(damping, 0, 1)
	for _, d := range r.dampers {
		d.SetAlpha(r.damping)
	}
}

func (r *Reverb) setMix(mix float64) {
	r.mix = core.Clamp(mix, 0, 1)
}

func (r *Reverb) setFeedback(feedback float64) {
	r.feedback = core.Clamp(feedback, 0, maxReverbFeedback)
}

// Parameters reports the current values.
func (r *Reverb) Parameters() Set {
	return Set{
		"room_size": Float(r.roomSize),
		"damping":   Float(r.damping),
		"mix":       Float(r.mix),
		"feedback":  Float(r.feedback),
		"pre_delay": Float(r.preDelayMs),
	}
}

func (r *Reverb) ensureReady(sampleRate int) {
	if r.combs != nil && sampleRate == r.sampleRate {
		return
	}

	r.sampleRate = sampleRate
	r.rebuild()
}

func (r *Reverb) rebuild() {
	sr := float64(r.sampleRate)
	base := reverbBaseDelayMs * r.roomSize

	r.combs = make([]*delay.Line, reverbCombCount)
	r.dampers = make([]*filter.OnePole, reverbCombCount)
	for j := range r.combs {
		r.combs[j] = newLine(int(base * reverbCombMultipliers[j] * 0.001 * sr))
		r.dampers[j] = filter.NewOnePole(r.damping)
	}

	r.preSamples = int(r.preDelayMs * 0.001 * sr)
	r.preLine = newLine(r.preSamples)
}

// Process runs the reverb over the buffer into a new one.
func (r *Reverb) Process(buf *audio.Buffer) (*audio.Buffer, error) {
	if err := validateInput(buf); err != nil {
		return nil, err
	}
	r.ensureReady(buf.SampleRate)

	out := buf.Clone()
	for i, x := range buf.Data {
		r.preLine.Write(x)
		pre := r.preLine.Read(r.preSamples)

		sum := 0.0
		for j, comb := range r.combs {
			wet := comb.Read(comb.Cap() - 1)
			damped := r.dampers[j].Process(wet)
			fb := r.feedback * (1 - float64(j)*0.1/reverbCombCount)
			comb.Write(pre + damped*fb)

			if j%2 == 0 {
				sum += damped
			} else {
				sum -= 0.8 * damped
			}
		}

		wet := sum / reverbCombCount
		out.Data[i] = x*(1-r.mix) + wet*r.mix
	}

	return out, nil
}

// Reset clears the comb network and the pre-delay line.
func (r *Reverb) Reset() {
	for _, comb := range r.combs {
		comb.Reset()
	}
	for _, d := range r.dampers {
		d.Reset()
	}
	if r.preLine != nil {
		r.preLine.Reset()
	}
}

// SupportsFormat reports whether the format can be processed.
func (r *Reverb) SupportsFormat(sampleRate, channels int) bool {
	return supportsFormat(sampleRate, channels, 2)
}
