package effects

import (
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/filter"
)

const (
	defaultEQGainDB   = 0.0
	minEQGainDB       = -12.0
	maxEQGainDB       = 12.0
	defaultEQLowFreq  = 300.0
	minEQLowFreq      = 100.0
	maxEQLowFreq      = 1000.0
	defaultEQHighFreq = 3000.0
	minEQHighFreq     = 1000.0
	maxEQHighFreq     = 8000.0
)

// EQOption overrides an equalizer construction default.
type EQOption func(*EQ)

// WithEQGains sets the low, mid, and high band gains in dB, each
// clamped to [-12, 12].
func WithEQGains(lowDB, midDB, highDB float64) EQOption {
	return func(e *EQ) {
		e.setLowGain(lowDB)
		e.setMidGain(midDB)
		e.setHighGain(highDB)
	}
}

// WithEQCrossovers sets the low/mid and mid/high crossover frequencies
// in Hz, clamped to [100, 1000] and [1000, 8000].
func WithEQCrossovers(lowHz, highHz float64) EQOption {
	return func(e *EQ) {
		e.setLowFreq(lowHz)
		e.setHighFreq(highHz)
	}
}

// EQ is a three band equalizer built from two one-pole splitters. The
// low band is the low-pass at the low crossover, the high band is the
// input minus the low-pass at the high crossover, and the mid band is
// the residue, so the three bands sum back to the input at unity gains.
type EQ struct {
	sampleRate int
	lowGainDB  float64
	midGainDB  float64
	highGainDB float64
	lowFreq    float64
	highFreq   float64

	lowPole  *filter.OnePole
	highPole *filter.OnePole
}

// NewEQ creates an equalizer at 44.1 kHz defaults.
func NewEQ(opts ...EQOption) *EQ {
	e := &EQ{
		sampleRate: defaultSampleRate,
		lowGainDB:  defaultEQGainDB,
		midGainDB:  defaultEQGainDB,
		highGainDB: defaultEQGainDB,
		lowFreq:    defaultEQLowFreq,
		highFreq:   defaultEQHighFreq,
		lowPole:    filter.NewOnePole(0),
		highPole:   filter.NewOnePole(0),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	return e
}

// Name returns the display name.
func (e *EQ) Name() string { return "EQ" }

// Definitions describes the configurable parameters.
func (e *EQ) Definitions() []Def {
	return []Def{
		floatDef("low_gain", "Low frequency gain in dB", defaultEQGainDB, minEQGainDB, maxEQGainDB),
		floatDef("mid_gain", "Mid frequency gain in dB", defaultEQGainDB, minEQGainDB, maxEQGainDB),
		floatDef("high_gain", "High frequency gain in dB", defaultEQGainDB, minEQGainDB, maxEQGainDB),
		floatDef("low_freq", "Low/mid crossover frequency", defaultEQLowFreq, minEQLowFreq, maxEQLowFreq),
		floatDef("high_freq", "Mid/high crossover frequency", defaultEQHighFreq, minEQHighFreq, maxEQHighFreq),
	}
}

// Configure applies the given parameter set.
func (e *EQ) Configure(set Set) error {
	return applySet(set, func(name string, value Value) error {
		v, err := floatArg(name, value)
		if err != nil {
			return err
		}

		switch name {
		case "low_gain":
			e.setLowGain(v)
		case "mid_gain":
			e.setMidGain(v)
		case "high_gain":
			e.setHighGain(v)
		case "low_freq":
			e.setLowFreq(v)
		case "high_freq":
			e.setHighFreq(v)
		default:
			return errUnknownParam(name)
		}

		return nil
	})
}

func (e *EQ) setLowGain(db float64) {
	e.lowGainDB = core.Clamp(db, minEQGainDB, maxEQGainDB)
}

func (e *EQ) setMidGain(db float64) {
	e.midGainDB = core.Clamp(db, minEQGainDB, maxEQGainDB)
}

func (e *EQ) setHighGain(db float64) {
	e.highGainDB = core.Clamp(db, minEQGainDB, maxEQGainDB)
}

func (e *EQ) setLowFreq(hz float64) {
	e.lowFreq = core.Clamp(hz, minEQLowFreq, maxEQLowFreq)
}

func (e *EQ) setHighFreq(hz float64) {
	e.highFreq = core.Clamp(hz, minEQHighFreq, maxEQHighFreq)
}

// Parameters reports the current values.
func (e *EQ) Parameters() Set {
	return Set{
		"low_gain":  Float(e.lowGainDB),
		"mid_gain":  Float(e.midGainDB),
		"high_gain": Float(e.highGainDB),
		"low_freq":  Float(e.lowFreq),
		"high_freq": Float(e.highFreq),
	}
}

func (e *EQ) ensureRate(sampleRate int) {
	if sampleRate != e.sampleRate {
		e.sampleRate = sampleRate
	}
}

// Process runs the equalizer over the buffer into a new one. Splitter
// coefficients are derived from the crossover frequencies at the start
// of each call, so frequency changes take effect on the next buffer.
func (e *EQ) Process(buf *audio.Buffer) (*audio.Buffer, error) {
	if err := validateInput(buf); err != nil {
		return nil, err
	}
	e.ensureRate(buf.SampleRate)

	sr := float64(e.sampleRate)
	e.lowPole.SetAlpha((1 - math.Cos(2*math.Pi*e.lowFreq/sr)) / 2)
	e.highPole.SetAlpha((1 - math.Cos(2*math.Pi*e.highFreq/sr)) / 2)

	lowGain := core.DBToLinear(e.lowGainDB)
	midGain := core.DBToLinear(e.midGainDB)
	highGain := core.DBToLinear(e.highGainDB)

	out := buf.Clone()
	for i, x := range buf.Data {
		low := e.lowPole.Process(x)
		high := x - e.highPole.Process(x)
		mid := x - low - high

		out.Data[i] = core.Clamp(low*lowGain+mid*midGain+high*highGain, -1, 1)
	}

	return out, nil
}

// Reset clears the splitter filters.
func (e *EQ) Reset() {
	e.lowPole.Reset()
	e.highPole.Reset()
}

// SupportsFormat reports whether the format can be processed.
func (e *EQ) SupportsFormat(sampleRate, channels int) bool {
	return supportsFormat(sampleRate, channels, 8)
}
