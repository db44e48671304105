package effects

import (
	"errors"
	"fmt"
)

// ErrUnknownEffect reports a lookup for a name the catalog does not
// carry.
var ErrUnknownEffect = errors.New("effects: unknown effect")

// New constructs the effect registered under name. The catalog is
// closed: the set of identifiers is fixed at compile time.
func New(name string) (Effect, error) {
	switch name {
	case "auto_wah":
		return NewAutoWah(), nil
	case "bitcrusher":
		return NewBitCrusher(), nil
	case "chorus":
		return NewChorus(), nil
	case "compression":
		return NewCompression(), nil
	case "delay":
		return NewDelay(), nil
	case "distortion":
		return NewDistortion(), nil
	case "eq":
		return NewEQ(), nil
	case "flanger":
		return NewFlanger(), nil
	case "gate":
		return NewGate(), nil
	case "limiter":
		return NewLimiter(), nil
	case "phaser":
		return NewPhaser(), nil
	case "pitch_shift":
		return NewPitchShift(), nil
	case "reverb":
		return NewReverb(), nil
	case "time_stretch":
		return NewTimeStretch(), nil
	case "tremolo":
		return NewTremolo(), nil
	case "vibrato":
		return NewVibrato(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEffect, name)
	}
}

// Names lists the catalog identifiers in sorted order.
func Names() []string {
	return []string{
		"auto_wah",
		"bitcrusher",
		"chorus",
		"compression",
		"delay",
		"distortion",
		"eq",
		"flanger",
		"gate",
		"limiter",
		"phaser",
		"pitch_shift",
		"reverb",
		"time_stretch",
		"tremolo",
		"vibrato",
	}
}
