package effects

import (
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/envelope"
	"github.com/cwbudde/algo-audiofx/dsp/filter"
)

const (
	defaultWahSensitivity = 0.5
	maxWahSensitivity     = 2.0
	defaultWahRange       = 1000.0
	minWahRange           = 100.0
	maxWahRange           = 3000.0
	defaultWahBaseFreq    = 200.0
	minWahBaseFreq        = 50.0
	maxWahBaseFreq        = 800.0
	defaultWahResonance   = 2.0
	minWahResonance       = 0.1
	maxWahResonance       = 10.0
	defaultWahAttackMs    = 10.0
	minWahAttackMs        = 1.0
	maxWahAttackMs        = 100.0
	defaultWahReleaseMs   = 100.0
	minWahReleaseMs       = 10.0
	maxWahReleaseMs       = 1000.0

	// Fixed blend of the filtered signal against the dry input.
	wahDryMix = 0.3
	wahWetMix = 0.7
)

// AutoWahOption overrides an auto-wah construction default.
type AutoWahOption func(*AutoWah)

// WithAutoWahSensitivity sets the envelope sensitivity, clamped to [0, 2].
func WithAutoWahSensitivity(sensitivity float64) AutoWahOption {
	return func(w *AutoWah) { w.setSensitivity(sensitivity) }
}

// WithAutoWahResonance sets the filter Q, clamped to [0.1, 10].
func WithAutoWahResonance(resonance float64) AutoWahOption {
	return func(w *AutoWah) { w.setResonance(resonance) }
}

// AutoWah sweeps a resonant bandpass filter with the input's own
// envelope: louder playing pushes the center frequency further above
// the base frequency. The filter is retuned on every sample.
type AutoWah struct {
	sampleRate  int
	sensitivity float64
	freqRange   float64
	baseFreq    float64
	resonance   float64
	attackMs    float64
	releaseMs   float64

	env *envelope.Follower
	bp  *filter.BandPass
}

// NewAutoWah creates an auto-wah at 44.1 kHz defaults.
func NewAutoWah(opts ...AutoWahOption) *AutoWah {
	w := &AutoWah{
		sampleRate:  defaultSampleRate,
		sensitivity: defaultWahSensitivity,
		freqRange:   defaultWahRange,
		baseFreq:    defaultWahBaseFreq,
		resonance:   defaultWahResonance,
		attackMs:    defaultWahAttackMs,
		releaseMs:   defaultWahReleaseMs,
	}
	w.env = newFollower(w.sampleRate, w.attackMs, w.releaseMs)
	w.bp = newBandPass(w.sampleRate)

	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}

	return w
}

// Name returns the display name.
func (w *AutoWah) Name() string { return "Auto-Wah" }

// Definitions describes the configurable parameters.
func (w *AutoWah) Definitions() []Def {
	return []Def{
		floatDef("sensitivity", "Envelope sensitivity (0.0-2.0)",
			defaultWahSensitivity, 0, maxWahSensitivity),
		floatDef("frequency_range", "Filter frequency range in Hz (100-3000)",
			defaultWahRange, minWahRange, maxWahRange),
		floatDef("base_frequency", "Base filter frequency in Hz (50-800)",
			defaultWahBaseFreq, minWahBaseFreq, maxWahBaseFreq),
		floatDef("resonance", "Filter resonance/Q factor (0.1-10.0)",
			defaultWahResonance, minWahResonance, maxWahResonance),
		floatDef("attack_time", "Envelope attack time in ms (1.0-100.0)",
			defaultWahAttackMs, minWahAttackMs, maxWahAttackMs),
		floatDef("release_time", "Envelope release time in ms (10.0-1000.0)",
			defaultWahReleaseMs, minWahReleaseMs, maxWahReleaseMs),
	}
}

// Configure applies the given parameter set.
func (w *AutoWah) Configure(set Set) error {
	return applySet(set, w.setParam)
}

func (w *AutoWah) setParam(name string, value Value) error {
	v, err := floatArg(name, value)
	if err != nil {
		return err
	}

	switch name {
	case "sensitivity":
		w.setSensitivity(v)
	case "frequency_range":
		w.freqRange = core.Clamp(v, minWahRange, maxWahRange)
	case "base_frequency":
		w.baseFreq = core.Clamp(v, minWahBaseFreq, maxWahBaseFreq)
	case "resonance":
		w.setResonance(v)
	case "attack_time":
		w.setAttack(v)
	case "release_time":
		w.setRelease(v)
	default:
		return errUnknownParam(name)
	}

	return nil
}

func (w *AutoWah) setSensitivity(sensitivity float64) {
	w.sensitivity = core.Clamp(sensitivity, 0, maxWahSensitivity)
}

func (w *AutoWah) setResonance(resonance float64) {
	w.resonance = core.Clamp(resonance, minWahResonance, maxWahResonance)
}

// setAttack updates the envelope only when the clamped value actually
// changes, so repeated identical assignments skip the recompute.
func (w *AutoWah) setAttack(attackMs float64) {
	attackMs = core.Clamp(attackMs, minWahAttackMs, maxWahAttackMs)
	if attackMs == w.attackMs {
		return
	}

	w.attackMs = attackMs
	_ = w.env.SetTimes(w.attackMs, w.releaseMs)
}

func (w *AutoWah) setRelease(releaseMs float64) {
	releaseMs = core.Clamp(releaseMs, minWahReleaseMs, maxWahReleaseMs)
	if releaseMs == w.releaseMs {
		return
	}

	w.releaseMs = releaseMs
	_ = w.env.SetTimes(w.attackMs, w.releaseMs)
}

// Parameters reports the current values.
func (w *AutoWah) Parameters() Set {
	return Set{
		"sensitivity":     Float(w.sensitivity),
		"frequency_range": Float(w.freqRange),
		"base_frequency":  Float(w.baseFreq),
		"resonance":       Float(w.resonance),
		"attack_time":     Float(w.attackMs),
		"release_time":    Float(w.releaseMs),
	}
}

func (w *AutoWah) ensureRate(sampleRate int) {
	if sampleRate == w.sampleRate {
		return
	}

	w.sampleRate = sampleRate
	_ = w.env.SetSampleRate(float64(sampleRate))
	_ = w.bp.SetSampleRate(sampleRate)
}

// Process runs the auto-wah over the buffer into a new one.
func (w *AutoWah) Process(buf *audio.Buffer) (*audio.Buffer, error) {
	if err := validateInput(buf); err != nil {
		return nil, err
	}
	w.ensureRate(buf.SampleRate)

	out := buf.Clone()
	for i, x := range buf.Data {
		level := w.env.Process(x)
		center := w.baseFreq + math.Min(level*w.sensitivity, 1)*w.freqRange
		w.bp.Tune(center, w.resonance)

		out.Data[i] = wahDryMix*x + wahWetMix*w.bp.ProcessSample(x)
	}

	return out, nil
}

// Reset clears the envelope and the filter history.
func (w *AutoWah) Reset() {
	w.env.Reset()
	w.bp.Reset()
}

// SupportsFormat reports whether the format can be processed.
func (w *AutoWah) SupportsFormat(sampleRate, channels int) bool {
	return supportsFormat(sampleRate, channels, 8)
}
