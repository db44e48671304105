package effects

import (
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/delay"
	"github.com/cwbudde/algo-audiofx/dsp/filter"
)

const (
	defaultDelayTimeMs  = 250.0
	minDelayTimeMs      = 10.0
	maxDelayTimeMs      = 2000.0
	defaultDelayFeedback = 0.3
	maxDelayFeedback     = 0.9
	defaultDelayMix      = 0.3
	defaultDelayDamping  = 0.2

	// 2 seconds at 44.1 kHz.
	delayInitialCapacity = 88200

	// Delay time changes at or below this threshold are ignored, so the
	// line is not churned by sub-millisecond adjustments.
	delayResizeThresholdMs = 1.0

	// Headroom factor when sizing the line from the delay time.
	delayCapacityHeadroom = 1.2
)

// DelayOption overrides a delay construction default.
type DelayOption func(*Delay)

// WithDelayTime sets the delay time in ms, clamped to [10, 2000].
func WithDelayTime(ms float64) DelayOption {
	return func(d *Delay) { d.setTime(ms) }
}

// WithDelayFeedback sets the feedback amount, clamped to [0, 0.9].
func WithDelayFeedback(feedback float64) DelayOption {
	return func(d *Delay) { d.setFeedback(feedback) }
}

// WithDelayMix sets the dry/wet mix, clamped to [0, 1].
func WithDelayMix(mix float64) DelayOption {
	return func(d *Delay) { d.setMix(mix) }
}

// Delay is a feedback delay. The wet tap feeds the output directly; the
// feedback path runs through a one-pole low-pass whose coefficient is
// the damping amount, so each repeat loses high end before it
// recirculates. The feedback write is clamped to [-1, 1] to keep
// runaway settings bounded.
type Delay struct {
	sampleRate int
	timeMs     float64
	feedback   float64
	mix        float64
	damping    float64

	line   *delay.Line
	damper *filter.OnePole
}

// NewDelay creates a delay at 44.1 kHz defaults.
func NewDelay(opts ...DelayOption) *Delay {
	d := &Delay{
		sampleRate: defaultSampleRate,
		timeMs:     defaultDelayTimeMs,
		feedback:   defaultDelayFeedback,
		mix:        defaultDelayMix,
		damping:    defaultDelayDamping,
		line:       newLine(delayInitialCapacity),
	}
	d.damper = filter.NewOnePole(d.damping)

	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	return d
}

// Name returns the display name.
func (d *Delay) Name() string { return "Delay" }

// Definitions describes the configurable parameters.
func (d *Delay) Definitions() []Def {
	return []Def{
		floatDef("delay", "Delay time in milliseconds", defaultDelayTimeMs, minDelayTimeMs, maxDelayTimeMs),
		floatDef("feedback", "Feedback amount (0.0 to 0.9)", defaultDelayFeedback, 0, maxDelayFeedback),
		floatDef("mix", "Wet/dry mix (0.0 = dry, 1.0 = wet)", defaultDelayMix, 0, 1),
		floatDef("damping", "High frequency damping of feedback", defaultDelayDamping, 0, 1),
	}
}

// Configure applies the given parameter set. The line is resized once
// after all entries are applied; a failure part way through keeps the
// entries already applied but skips the resize.
func (d *Delay) Configure(set Set) error {
	resize := false
	for name, value := range set {
		v, err := floatArg(name, value)
		if err != nil {
			return err
		}

		switch name {
		case "delay":
			v = core.Clamp(v, minDelayTimeMs, maxDelayTimeMs)
			if math.Abs(v-d.timeMs) > delayResizeThresholdMs {
				d.timeMs = v
				resize = true
			}
		case "feedback":
			d.setFeedback(v)
		case "mix":
			d.setMix(v)
		case "damping":
			d.setDamping(v)
		default:
			return errUnknownParam(name)
		}
	}

	if resize {
		d.resizeLine()
	}

	return nil
}

func (d *Delay) setTime(ms float64) {
	ms = core.Clamp(ms, minDelayTimeMs, maxDelayTimeMs)
	if math.Abs(ms-d.timeMs) > delayResizeThresholdMs {
		d.timeMs = ms
		d.resizeLine()
	}
}

func (d *Delay) setFeedback(feedback float64) {
	d.feedback = core.Clamp(feedback, 0, maxDelayFeedback)
}

func (d *Delay) setMix(mix float64) {
	d.mix = core.Clamp(mix, 0, 1)
}

func (d *Delay) setDamping(damping float64) {
	d.damping = core.Clamp(damping, 0, 1)
	d.damper.SetAlpha(d.damping)
}

func (d *Delay) resizeLine() {
	d.line = newLine(int(d.timeMs * delayCapacityHeadroom * 0.001 * float64(d.sampleRate)))
}

// Parameters reports the current values.
func (d *Delay) Parameters() Set {
	return Set{
		"delay":    Float(d.timeMs),
		"feedback": Float(d.feedback),
		"mix":      Float(d.mix),
		"damping":  Float(d.damping),
	}
}

func (d *Delay) ensureRate(sampleRate int) {
	if sampleRate == d.sampleRate {
		return
	}

	d.sampleRate = sampleRate
	d.resizeLine()
}

// Process runs the delay over the buffer into a new one.
func (d *Delay) Process(buf *audio.Buffer) (*audio.Buffer, error) {
	if err := validateInput(buf); err != nil {
		return nil, err
	}
	d.ensureRate(buf.SampleRate)

	delaySamples := d.timeMs * 0.001 * float64(d.sampleRate)
	out := buf.Clone()
	for i, x := range buf.Data {
		wet := d.line.ReadLinear(delaySamples)
		damped := d.damper.Process(wet)
		d.line.Write(core.Clamp(x+damped*d.feedback, -1, 1))
		out.Data[i] = x*(1-d.mix) + wet*d.mix
	}

	return out, nil
}

// Reset clears the delay line and the damping filter.
func (d *Delay) Reset() {
	d.line.Reset()
	d.damper.Reset()
}

// SupportsFormat reports whether the format can be processed.
func (d *Delay) SupportsFormat(sampleRate, channels int) bool {
	return supportsFormat(sampleRate, channels, 8)
}
