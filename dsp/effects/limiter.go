package effects

import (
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/envelope"
)

const (
	defaultLimiterThreshold = 0.8
	minLimiterThreshold     = 0.1
	defaultLimiterAttackMs  = 1.0
	minLimiterAttackMs      = 0.1
	maxLimiterAttackMs      = 10.0
	defaultLimiterReleaseMs = 50.0
	minLimiterReleaseMs     = 1.0
	maxLimiterReleaseMs     = 500.0
	defaultLimiterOutput    = 1.0
	minLimiterOutput        = 0.1
	maxLimiterOutput        = 2.0

	// Floor for the detected level when computing the reduction target,
	// so the division stays bounded near silence.
	limiterLevelFloor = 0.001
)

// LimiterOption overrides a limiter construction default.
type LimiterOption func(*Limiter)

// WithLimiterThreshold sets the threshold, clamped to [0.1, 1].
func WithLimiterThreshold(threshold float64) LimiterOption {
	return func(l *Limiter) { l.setThreshold(threshold) }
}

// WithLimiterTimes sets attack and release in ms, clamped to [0.1, 10]
// and [1, 500].
func WithLimiterTimes(attackMs, releaseMs float64) LimiterOption {
	return func(l *Limiter) {
		l.setAttack(attackMs)
		l.setRelease(releaseMs)
		l.updateTimes()
	}
}

// WithLimiterOutput sets the output gain, clamped to [0.1, 2].
func WithLimiterOutput(output float64) LimiterOption {
	return func(l *Limiter) { l.setOutput(output) }
}

// Limiter holds peaks under a threshold. An envelope follower tracks
// the signal level; whenever it exceeds the threshold the target gain
// drops to threshold/level, and the applied reduction glides toward the
// target with separate attack and release smoothing so the clamp-down
// is fast and the recovery gradual.
type Limiter struct {
	sampleRate int
	threshold  float64
	attackMs   float64
	releaseMs  float64
	output     float64

	env          *envelope.Follower
	attackCoeff  float64
	releaseCoeff float64
	reduction    float64
}

// NewLimiter creates a limiter at 44.1 kHz defaults.
func NewLimiter(opts ...LimiterOption) *Limiter {
	l := &Limiter{
		sampleRate: defaultSampleRate,
		threshold:  defaultLimiterThreshold,
		attackMs:   defaultLimiterAttackMs,
		releaseMs:  defaultLimiterReleaseMs,
		output:     defaultLimiterOutput,
		reduction:  1,
	}
	l.env = newFollower(l.sampleRate, l.attackMs, l.releaseMs)
	l.updateCoeffs()

	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}

	return l
}

// Name returns the display name.
func (l *Limiter) Name() string { return "Limiter" }

// Definitions describes the configurable parameters.
func (l *Limiter) Definitions() []Def {
	return []Def{
		floatDef("threshold", "Limiting threshold (0.0 to 1.0)", defaultLimiterThreshold, minLimiterThreshold, 1),
		floatDef("attack", "Attack time in milliseconds", defaultLimiterAttackMs, minLimiterAttackMs, maxLimiterAttackMs),
		floatDef("release", "Release time in milliseconds", defaultLimiterReleaseMs, minLimiterReleaseMs, maxLimiterReleaseMs),
		floatDef("output", "Output gain", defaultLimiterOutput, minLimiterOutput, maxLimiterOutput),
	}
}

// Configure applies the given parameter set. Time constants are
// recomputed once after all entries are applied; a failure part way
// through keeps the entries already applied but skips the recompute.
func (l *Limiter) Configure(set Set) error {
	update := false
	for name, value := range set {
		v, err := floatArg(name, value)
		if err != nil {
			return err
		}

		switch name {
		case "threshold":
			l.setThreshold(v)
		case "attack":
			l.setAttack(v)
			update = true
		case "release":
			l.setRelease(v)
			update = true
		case "output":
			l.setOutput(v)
		default:
			return errUnknownParam(name)
		}
	}

	if update {
		l.updateTimes()
	}

	return nil
}

func (l *Limiter) setThreshold(threshold float64) {
	l.threshold = core.Clamp(threshold, minLimiterThreshold, 1)
}

func (l *Limiter) setAttack(ms float64) {
	l.attackMs = core.Clamp(ms, minLimiterAttackMs, maxLimiterAttackMs)
}

func (l *Limiter) setRelease(ms float64) {
	l.releaseMs = core.Clamp(ms, minLimiterReleaseMs, maxLimiterReleaseMs)
}

func (l *Limiter) setOutput(output float64) {
	l.output = core.Clamp(output, minLimiterOutput, maxLimiterOutput)
}

func (l *Limiter) updateTimes() {
	_ = l.env.SetTimes(l.attackMs, l.releaseMs)
	l.updateCoeffs()
}

func (l *Limiter) updateCoeffs() {
	sr := float64(l.sampleRate)
	l.attackCoeff = envelope.Coefficient(l.attackMs, sr)
	l.releaseCoeff = envelope.Coefficient(l.releaseMs, sr)
}

// Parameters reports the current values.
func (l *Limiter) Parameters() Set {
	return Set{
		"threshold": Float(l.threshold),
		"attack":    Float(l.attackMs),
		"release":   Float(l.releaseMs),
		"output":    Float(l.output),
	}
}

func (l *Limiter) ensureRate(sampleRate int) {
	if sampleRate == l.sampleRate {
		return
	}

	l.sampleRate = sampleRate
	_ = l.env.SetSampleRate(float64(sampleRate))
	l.updateCoeffs()
}

// Process runs the limiter over the buffer into a new one.
func (l *Limiter) Process(buf *audio.Buffer) (*audio.Buffer, error) {
	if err := validateInput(buf); err != nil {
		return nil, err
	}
	l.ensureRate(buf.SampleRate)

	out := buf.Clone()
	for i, x := range buf.Data {
		level := l.env.Process(x)

		target := 1.0
		if level > l.threshold {
			target = l.threshold / math.Max(level, limiterLevelFloor)
		}

		coeff := l.releaseCoeff
		if target < l.reduction {
			coeff = l.attackCoeff
		}
		l.reduction = target + (l.reduction-target)*coeff

		out.Data[i] = core.Clamp(x*l.reduction*l.output, -1, 1)
	}

	return out, nil
}

// Reset clears the envelope follower and restores unity reduction.
func (l *Limiter) Reset() {
	l.env.Reset()
	l.reduction = 1
}

// SupportsFormat reports whether the format can be processed.
func (l *Limiter) SupportsFormat(sampleRate, channels int) bool {
	return supportsFormat(sampleRate, channels, 8)
}
