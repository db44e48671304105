package effects

import (
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/dsp/core"
)

const (
	defaultBitCrusherBitDepth = 8.0
	minBitCrusherBitDepth     = 1.0
	maxBitCrusherBitDepth     = 16.0
	defaultBitCrusherRateRed  = 1.0
	minBitCrusherRateRed      = 1.0
	maxBitCrusherRateRed      = 100.0
	defaultBitCrusherMix      = 1.0
)

// BitCrusherOption overrides a bit crusher construction default.
type BitCrusherOption func(*BitCrusher)

// WithBitCrusherBitDepth sets the quantization depth in bits, clamped to
// [1, 16]. Fractional depths are allowed for smooth sweeps.
func WithBitCrusherBitDepth(bits float64) BitCrusherOption {
	return func(bc *BitCrusher) { bc.setBitDepth(bits) }
}

// WithBitCrusherRateReduction sets the sample rate reduction factor,
// clamped to [1, 100]. A value of 4 holds each crushed sample for four
// output samples.
func WithBitCrusherRateReduction(factor float64) BitCrusherOption {
	return func(bc *BitCrusher) { bc.setRateReduction(factor) }
}

// WithBitCrusherMix sets the dry/wet mix, clamped to [0, 1].
func WithBitCrusherMix(mix float64) BitCrusherOption {
	return func(bc *BitCrusher) { bc.setMix(mix) }
}

// BitCrusher reduces bit depth and effective sample rate for lo-fi
// aesthetics. Quantization snaps samples onto a 2^bitDepth level grid
// over (-1, 1) that keeps zero at exactly zero; rate reduction holds
// each crushed value for round(factor) samples.
type BitCrusher struct {
	bitDepth float64
	rateRed  float64
	mix      float64

	// Precomputed from bitDepth and rateRed.
	levels float64
	skip   int

	// Sample-and-hold state.
	holdCounter int
	holdValue   float64
}

// NewBitCrusher creates a bit crusher at its defaults.
func NewBitCrusher(opts ...BitCrusherOption) *BitCrusher {
	bc := &BitCrusher{
		bitDepth: defaultBitCrusherBitDepth,
		rateRed:  defaultBitCrusherRateRed,
		mix:      defaultBitCrusherMix,
	}
	bc.levels = math.Exp2(bc.bitDepth)
	bc.skip = 1

	for _, opt := range opts {
		if opt != nil {
			opt(bc)
		}
	}

	return bc
}

// Name returns the display name.
func (bc *BitCrusher) Name() string { return "Bitcrusher" }

// Definitions describes the configurable parameters.
func (bc *BitCrusher) Definitions() []Def {
	return []Def{
		floatDef("bit_depth", "Bit depth reduction (1-16 bits)",
			defaultBitCrusherBitDepth, minBitCrusherBitDepth, maxBitCrusherBitDepth),
		floatDef("sample_rate_reduction", "Sample rate reduction factor (1-100)",
			defaultBitCrusherRateRed, minBitCrusherRateRed, maxBitCrusherRateRed),
		floatDef("mix", "Dry/Wet mix (0.0 = dry, 1.0 = wet)",
			defaultBitCrusherMix, 0, 1),
	}
}

// Configure applies the given parameter set.
func (bc *BitCrusher) Configure(set Set) error {
	return applySet(set, bc.setParam)
}

func (bc *BitCrusher) setParam(name string, value Value) error {
	v, err := floatArg(name, value)
	if err != nil {
		return err
	}

	switch name {
	case "bit_depth":
		bc.setBitDepth(v)
	case "sample_rate_reduction":
		bc.setRateReduction(v)
	case "mix":
		bc.setMix(v)
	default:
		return errUnknownParam(name)
	}

	return nil
}

func (bc *BitCrusher) setBitDepth(bits float64) {
	bc.bitDepth = core.Clamp(bits, minBitCrusherBitDepth, maxBitCrusherBitDepth)
	bc.levels = math.Exp2(bc.bitDepth)
}

func (bc *BitCrusher) setRateReduction(factor float64) {
	bc.rateRed = core.Clamp(factor, minBitCrusherRateRed, maxBitCrusherRateRed)
	bc.skip = int(math.Round(bc.rateRed))
}

func (bc *BitCrusher) setMix(mix float64) {
	bc.mix = core.Clamp(mix, 0, 1)
}

// Parameters reports the current values.
func (bc *BitCrusher) Parameters() Set {
	return Set{
		"bit_depth":             Float(bc.bitDepth),
		"sample_rate_reduction": Float(bc.rateRed),
		"mix":                   Float(bc.mix),
	}
}

// Process crushes the buffer into a new one.
func (bc *BitCrusher) Process(buf *audio.Buffer) (*audio.Buffer, error) {
	if err := validateInput(buf); err != nil {
		return nil, err
	}

	out := buf.Clone()
	for i, x := range buf.Data {
		bc.holdCounter++
		if bc.holdCounter >= bc.skip {
			bc.holdCounter = 0
			bc.holdValue = bc.quantize(x)
		}

		out.Data[i] = x*(1-bc.mix) + bc.holdValue*bc.mix
	}

	return out, nil
}

// quantize snaps a sample onto the level grid. Zero maps to zero for
// integer bit depths.
func (bc *BitCrusher) quantize(x float64) float64 {
	return math.Floor((x*0.5+0.5)*bc.levels)/bc.levels*2 - 1
}

// Reset clears the sample-and-hold state.
func (bc *BitCrusher) Reset() {
	bc.holdCounter = 0
	bc.holdValue = 0
}

// SupportsFormat reports whether the format can be processed.
func (bc *BitCrusher) SupportsFormat(sampleRate, channels int) bool {
	return supportsFormat(sampleRate, channels, 8)
}
