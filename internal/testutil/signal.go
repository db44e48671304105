// Package testutil provides deterministic audio fixtures and slice
// assertions shared by the effect, filter, and file round-trip tests.
// Generators return raw sample slices; wrap them in an audio.Buffer at
// the call site when an effect input is needed.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine returns length samples of a sine wave starting at
// phase zero. The same arguments always produce the same samples.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// DeterministicNoise returns seeded uniform noise in
// [-amplitude, amplitude]. Tests that only need a broadband input use
// this instead of sine sweeps.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Impulse returns a unit impulse at pos, the standard probe for delay
// and reverb tap positions. An out-of-range pos yields silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// DC returns a constant signal, useful for exercising gain staging and
// envelope followers without zero crossings.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}

	return out
}
