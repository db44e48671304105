package effects

import (
	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/envelope"
)

const (
	defaultCompThreshold = 0.5
	defaultCompRatio     = 4.0
	minCompRatio         = 1.0
	maxCompRatio         = 20.0
	defaultCompAttackMs  = 10.0
	minCompAttackMs      = 0.1
	maxCompAttackMs      = 100.0
	defaultCompReleaseMs = 100.0
	minCompReleaseMs     = 10.0
	maxCompReleaseMs     = 1000.0
	defaultCompMakeup    = 1.0
	minCompMakeup        = 0.1
	maxCompMakeup        = 4.0
)

// CompressionOption overrides a compressor construction default.
type CompressionOption func(*Compression)

// WithCompressionThreshold sets the threshold, clamped to [0, 1].
func WithCompressionThreshold(threshold float64) CompressionOption {
	return func(c *Compression) { c.setThreshold(threshold) }
}

// WithCompressionRatio sets the ratio, clamped to [1, 20].
func WithCompressionRatio(ratio float64) CompressionOption {
	return func(c *Compression) { c.setRatio(ratio) }
}

// WithCompressionTimes sets attack and release in ms, clamped to
// [0.1, 100] and [10, 1000].
func WithCompressionTimes(attackMs, releaseMs float64) CompressionOption {
	return func(c *Compression) {
		c.setAttack(attackMs)
		c.setRelease(releaseMs)
		c.updateTimes()
	}
}

// Compression is a feed-forward downward compressor. An envelope
// follower tracks the rectified signal level; above the threshold the
// excess is divided by the ratio and the sample scaled so its level
// lands on the compressed curve. Makeup gain is applied last and the
// result clamped to [-1, 1].
type Compression struct {
	sampleRate int
	threshold  float64
	ratio      float64
	attackMs   float64
	releaseMs  float64
	makeup     float64

	env *envelope.Follower
}

// NewCompression creates a compressor at 44.1 kHz defaults.
func NewCompression(opts ...CompressionOption) *Compression {
	c := &Compression{
		sampleRate: defaultSampleRate,
		threshold:  defaultCompThreshold,
		ratio:      defaultCompRatio,
		attackMs:   defaultCompAttackMs,
		releaseMs:  defaultCompReleaseMs,
		makeup:     defaultCompMakeup,
	}
	c.env = newFollower(c.sampleRate, c.attackMs, c.releaseMs)

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// Name returns the display name.
func (c *Compression) Name() string { return "Compression" }

// Definitions describes the configurable parameters.
func (c *Compression) Definitions() []Def {
	return []Def{
		floatDef("threshold", "Compression threshold (0.0 to 1.0)", defaultCompThreshold, 0, 1),
		floatDef("ratio", "Compression ratio", defaultCompRatio, minCompRatio, maxCompRatio),
		floatDef("attack", "Attack time in milliseconds", defaultCompAttackMs, minCompAttackMs, maxCompAttackMs),
		floatDef("release", "Release time in milliseconds", defaultCompReleaseMs, minCompReleaseMs, maxCompReleaseMs),
		floatDef("makeup", "Makeup gain", defaultCompMakeup, minCompMakeup, maxCompMakeup),
	}
}

// Configure applies the given parameter set. The follower coefficients
// are recomputed once after all entries are applied; a failure part way
// through keeps the entries already applied but skips the recompute.
func (c *Compression) Configure(set Set) error {
	update := false
	for name, value := range set {
		v, err := floatArg(name, value)
		if err != nil {
			return err
		}

		switch name {
		case "threshold":
			c.setThreshold(v)
		case "ratio":
			c.setRatio(v)
		case "attack":
			c.setAttack(v)
			update = true
		case "release":
			c.setRelease(v)
			update = true
		case "makeup":
			c.setMakeup(v)
		default:
			return errUnknownParam(name)
		}
	}

	if update {
		c.updateTimes()
	}

	return nil
}

func (c *Compression) setThreshold(threshold float64) {
	c.threshold = core.Clamp(threshold, 0, 1)
}

func (c *Compression) setRatio(ratio float64) {
	c.ratio = core.Clamp(ratio, minCompRatio, maxCompRatio)
}

func (c *Compression) setAttack(ms float64) {
	c.attackMs = core.Clamp(ms, minCompAttackMs, maxCompAttackMs)
}

func (c *Compression) setRelease(ms float64) {
	c.releaseMs = core.Clamp(ms, minCompReleaseMs, maxCompReleaseMs)
}

func (c *Compression) setMakeup(makeup float64) {
	c.makeup = core.Clamp(makeup, minCompMakeup, maxCompMakeup)
}

func (c *Compression) updateTimes() {
	_ = c.env.SetTimes(c.attackMs, c.releaseMs)
}

// Parameters reports the current values.
func (c *Compression) Parameters() Set {
	return Set{
		"threshold": Float(c.threshold),
		"ratio":     Float(c.ratio),
		"attack":    Float(c.attackMs),
		"release":   Float(c.releaseMs),
		"makeup":    Float(c.makeup),
	}
}

func (c *Compression) ensureRate(sampleRate int) {
	if sampleRate == c.sampleRate {
		return
	}

	c.sampleRate = sampleRate
	_ = c.env.SetSampleRate(float64(sampleRate))
}

// Process runs the compressor over the buffer into a new one.
func (c *Compression) Process(buf *audio.Buffer) (*audio.Buffer, error) {
	if err := validateInput(buf); err != nil {
		return nil, err
	}
	c.ensureRate(buf.SampleRate)

	out := buf.Clone()
	for i, x := range buf.Data {
		level := c.env.Process(x)

		gain := 1.0
		if level > c.threshold {
			target := c.threshold + (level-c.threshold)/c.ratio
			if level > 0 {
				gain = target / level
			}
		}

		out.Data[i] = core.Clamp(x*gain*c.makeup, -1, 1)
	}

	return out, nil
}

// Reset clears the envelope follower.
func (c *Compression) Reset() {
	c.env.Reset()
}

// SupportsFormat reports whether the format can be processed.
func (c *Compression) SupportsFormat(sampleRate, channels int) bool {
	return supportsFormat(sampleRate, channels, 8)
}
