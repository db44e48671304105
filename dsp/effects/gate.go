package effects

import (
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/envelope"
)

const (
	defaultGateThreshold = 0.1
	minGateThreshold     = 0.001
	defaultGateAttackMs  = 1.0
	minGateAttackMs      = 0.1
	maxGateAttackMs      = 100.0
	defaultGateHoldMs    = 10.0
	maxGateHoldMs        = 1000.0
	defaultGateReleaseMs = 100.0
	minGateReleaseMs     = 1.0
	maxGateReleaseMs     = 5000.0
	defaultGateRatio     = 1.0

	// Detector smoothing, fixed fast rise and slow fall.
	gateRiseCoeff = 0.99
	gateFallCoeff = 0.999
)

// GateOption overrides a gate construction default.
type GateOption func(*Gate)

// WithGateThreshold sets the threshold, clamped to [0.001, 1].
func WithGateThreshold(threshold float64) GateOption {
	return func(g *Gate) { g.setThreshold(threshold) }
}

// WithGateHold sets the hold time in ms, clamped to [0, 1000].
func WithGateHold(holdMs float64) GateOption {
	return func(g *Gate) { g.setHold(holdMs) }
}

// WithGateRatio sets the ratio, clamped to [0, 1].
func WithGateRatio(ratio float64) GateOption {
	return func(g *Gate) { g.setRatio(ratio) }
}

// Gate attenuates the signal whenever its level stays under a
// threshold. A smoothed magnitude detector drives an open/closed state
// with a hold counter, so brief dips do not chatter the gate; the gain
// then glides between unity and 1-ratio with separate attack and
// release smoothing.
//
// The gain starts at zero, so the gate fades in on signal rather than
// passing a leading transient of noise.
type Gate struct {
	sampleRate int
	threshold  float64
	attackMs   float64
	holdMs     float64
	releaseMs  float64
	ratio      float64

	attackCoeff  float64
	releaseCoeff float64
	env          float64
	gain         float64
	holdCounter  float64
	open         bool
}

// NewGate creates a gate at 44.1 kHz defaults.
func NewGate(opts ...GateOption) *Gate {
	g := &Gate{
		sampleRate: defaultSampleRate,
		threshold:  defaultGateThreshold,
		attackMs:   defaultGateAttackMs,
		holdMs:     defaultGateHoldMs,
		releaseMs:  defaultGateReleaseMs,
		ratio:      defaultGateRatio,
	}
	g.updateCoeffs()

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// Name returns the display name.
func (g *Gate) Name() string { return "Gate" }

// Definitions describes the configurable parameters.
func (g *Gate) Definitions() []Def {
	return []Def{
		floatDef("threshold", "Gate threshold (0.0 to 1.0)", defaultGateThreshold, minGateThreshold, 1),
		floatDef("attack", "Attack time in milliseconds", defaultGateAttackMs, minGateAttackMs, maxGateAttackMs),
		floatDef("hold", "Hold time in milliseconds", defaultGateHoldMs, 0, maxGateHoldMs),
		floatDef("release", "Release time in milliseconds", defaultGateReleaseMs, minGateReleaseMs, maxGateReleaseMs),
		floatDef("ratio", "Gate ratio (1.0 = full gate, 0.0 = no gate)", defaultGateRatio, 0, 1),
	}
}

// Configure applies the given parameter set. Smoothing coefficients are
// recomputed once after all entries are applied; a failure part way
// through keeps the entries already applied but skips the recompute.
func (g *Gate) Configure(set Set) error {
	update := false
	for name, value := range set {
		v, err := floatArg(name, value)
		if err != nil {
			return err
		}

		switch name {
		case "threshold":
			g.setThreshold(v)
		case "attack":
			g.setAttack(v)
			update = true
		case "hold":
			g.setHold(v)
		case "release":
			g.setRelease(v)
			update = true
		case "ratio":
			g.setRatio(v)
		default:
			return errUnknownParam(name)
		}
	}

	if update {
		g.updateCoeffs()
	}

	return nil
}

func (g *Gate) setThreshold(threshold float64) {
	g.threshold = core.Clamp(threshold, minGateThreshold, 1)
}

func (g *Gate) setAttack(ms float64) {
	g.attackMs = core.Clamp(ms, minGateAttackMs, maxGateAttackMs)
}

func (g *Gate) setHold(ms float64) {
	g.holdMs = core.Clamp(ms, 0, maxGateHoldMs)
}

func (g *Gate) setRelease(ms float64) {
	g.releaseMs = core.Clamp(ms, minGateReleaseMs, maxGateReleaseMs)
}

func (g *Gate) setRatio(ratio float64) {
	g.ratio = core.Clamp(ratio, 0, 1)
}

func (g *Gate) updateCoeffs() {
	sr := float64(g.sampleRate)
	g.attackCoeff = envelope.Coefficient(g.attackMs, sr)
	g.releaseCoeff = envelope.Coefficient(g.releaseMs, sr)
}

// Parameters reports the current values.
func (g *Gate) Parameters() Set {
	return Set{
		"threshold": Float(g.threshold),
		"attack":    Float(g.attackMs),
		"hold":      Float(g.holdMs),
		"release":   Float(g.releaseMs),
		"ratio":     Float(g.ratio),
	}
}

func (g *Gate) ensureRate(sampleRate int) {
	if sampleRate == g.sampleRate {
		return
	}

	g.sampleRate = sampleRate
	g.updateCoeffs()
}

// Process runs the gate over the buffer into a new one.
func (g *Gate) Process(buf *audio.Buffer) (*audio.Buffer, error) {
	if err := validateInput(buf); err != nil {
		return nil, err
	}
	g.ensureRate(buf.SampleRate)

	holdSamples := g.holdMs * 0.001 * float64(g.sampleRate)
	out := buf.Clone()
	for i, x := range buf.Data {
		mag := math.Abs(x)
		coeff := gateFallCoeff
		if mag > g.env {
			coeff = gateRiseCoeff
		}
		g.env = mag + (g.env-mag)*coeff

		if g.env > g.threshold {
			g.open = true
			g.holdCounter = holdSamples
		} else if g.open {
			g.holdCounter--
			if g.holdCounter <= 0 {
				g.open = false
			}
		}

		target := 1 - g.ratio
		if g.open {
			target = 1
		}
		smooth := g.releaseCoeff
		if target > g.gain {
			smooth = g.attackCoeff
		}
		g.gain = target + (g.gain-target)*smooth

		out.Data[i] = core.Clamp(x*g.gain, -1, 1)
	}

	return out, nil
}

// Reset closes the gate and clears the detector.
func (g *Gate) Reset() {
	g.env = 0
	g.gain = 0
	g.holdCounter = 0
	g.open = false
}

// SupportsFormat reports whether the format can be processed.
func (g *Gate) SupportsFormat(sampleRate, channels int) bool {
	return supportsFormat(sampleRate, channels, 8)
}
