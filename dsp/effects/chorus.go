package effects

import (
	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/delay"
	"github.com/cwbudde/algo-audiofx/dsp/lfo"
)

const (
	defaultChorusRate     = 0.5
	minChorusRate         = 0.1
	maxChorusRate         = 10.0
	defaultChorusDepth    = 2.0
	minChorusDepth        = 0.1
	maxChorusDepth        = 10.0
	defaultChorusMix      = 0.5
	defaultChorusFeedback = 0.0
	maxModulationFeedback = 0.9

	// 100 ms at 44.1 kHz; shared by the modulated-delay family.
	modulationLineCapacity = 4410
)

// ChorusOption overrides a chorus construction default.
type ChorusOption func(*Chorus)

// WithChorusRate sets the LFO rate in Hz, clamped to [0.1, 10].
func WithChorusRate(rate float64) ChorusOption {
	return func(c *Chorus) { c.setRate(rate) }
}

// WithChorusDepth sets the modulation depth in ms, clamped to [0.1, 10].
func WithChorusDepth(depth float64) ChorusOption {
	return func(c *Chorus) { c.setDepth(depth) }
}

// WithChorusMix sets the dry/wet mix, clamped to [0, 1].
func WithChorusMix(mix float64) ChorusOption {
	return func(c *Chorus) { c.setMix(mix) }
}

// WithChorusFeedback sets the feedback amount, clamped to [0, 0.9].
func WithChorusFeedback(feedback float64) ChorusOption {
	return func(c *Chorus) { c.setFeedback(feedback) }
}

// Chorus thickens the input with a sine-modulated fractional delay
// blended against the dry signal. The modulated tap swings around the
// depth-derived base delay; feedback recirculates the wet signal into
// the line.
type Chorus struct {
	sampleRate int
	rate       float64
	depth      float64
	mix        float64
	feedback   float64

	line *delay.Line
	osc  *lfo.Oscillator
}

// NewChorus creates a chorus at 44.1 kHz defaults.
func NewChorus(opts ...ChorusOption) *Chorus {
	c := &Chorus{
		sampleRate: defaultSampleRate,
		rate:       defaultChorusRate,
		depth:      defaultChorusDepth,
		mix:        defaultChorusMix,
		feedback:   defaultChorusFeedback,
		line:       newLine(modulationLineCapacity),
	}
	c.osc = lfo.NewOscillator(lfo.Sine, c.rate, float64(c.sampleRate))

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// Name returns the display name.
func (c *Chorus) Name() string { return "Chorus" }

// Definitions describes the configurable parameters.
func (c *Chorus) Definitions() []Def {
	return []Def{
		floatDef("rate", "LFO rate in Hz", defaultChorusRate, minChorusRate, maxChorusRate),
		floatDef("depth", "Modulation depth in milliseconds", defaultChorusDepth, minChorusDepth, maxChorusDepth),
		floatDef("mix", "Wet/dry mix (0.0 = dry, 1.0 = wet)", defaultChorusMix, 0, 1),
		floatDef("feedback", "Feedback amount", defaultChorusFeedback, 0, maxModulationFeedback),
	}
}

// Configure applies the given parameter set.
func (c *Chorus) Configure(set Set) error {
	return applySet(set, c.setParam)
}

func (c *Chorus) setParam(name string, value Value) error {
	v, err := floatArg(name, value)
	if err != nil {
		return err
	}

	switch name {
	case "rate":
		c.setRate(v)
	case "depth":
		c.setDepth(v)
	case "mix":
		c.setMix(v)
	case "feedback":
		c.setFeedback(v)
	default:
		return errUnknownParam(name)
	}

	return nil
}

func (c *Chorus) setRate(rate float64) {
	c.rate = core.Clamp(rate, minChorusRate, maxChorusRate)
	c.osc.SetRate(c.rate)
}

// setDepth stores the depth without resizing the line; the line is only
// recreated when the sample rate changes.
func (c *Chorus) setDepth(depth float64) {
	c.depth = core.Clamp(depth, minChorusDepth, maxChorusDepth)
}

func (c *Chorus) setMix(mix float64) {
	c.mix = core.Clamp(mix, 0, 1)
}

func (c *Chorus) setFeedback(feedback float64) {
	c.feedback = core.Clamp(feedback, 0, maxModulationFeedback)
}

// Parameters reports the current values.
func (c *Chorus) Parameters() Set {
	return Set{
		"rate":     Float(c.rate),
		"depth":    Float(c.depth),
		"mix":      Float(c.mix),
		"feedback": Float(c.feedback),
	}
}

func (c *Chorus) ensureRate(sampleRate int) {
	if sampleRate == c.sampleRate {
		return
	}

	c.sampleRate = sampleRate
	c.osc.SetSampleRate(float64(sampleRate))
	c.line = newLine(int(c.depth * 2 * 0.001 * float64(sampleRate)))
}

// Process runs the chorus over the buffer into a new one.
func (c *Chorus) Process(buf *audio.Buffer) (*audio.Buffer, error) {
	if err := validateInput(buf); err != nil {
		return nil, err
	}
	c.ensureRate(buf.SampleRate)

	base := c.depth * 0.001 * float64(c.sampleRate)
	out := buf.Clone()
	for i, x := range buf.Data {
		wet := c.line.ReadLinear(base * (1 + 0.5*c.osc.Next()))
		c.line.Write(x + wet*c.feedback)
		out.Data[i] = x*(1-c.mix) + wet*c.mix
	}

	return out, nil
}

// Reset clears the delay line and the LFO phase.
func (c *Chorus) Reset() {
	c.line.Reset()
	c.osc.Reset()
}

// SupportsFormat reports whether the format can be processed.
func (c *Chorus) SupportsFormat(sampleRate, channels int) bool {
	return supportsFormat(sampleRate, channels, 2)
}
