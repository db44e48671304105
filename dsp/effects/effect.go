package effects

import (
	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/dsp/delay"
	"github.com/cwbudde/algo-audiofx/dsp/envelope"
	"github.com/cwbudde/algo-audiofx/dsp/filter"
)

const (
	minSupportedRate = 8000
	maxSupportedRate = 192000

	defaultSampleRate = 44100
)

// Effect is the uniform surface of every catalog entry.
//
// Process returns a freshly allocated buffer and never mutates its
// input. Output length, sample rate, and channel count always match the
// input's. Effects holding sample-rate-derived state pick up a changed
// rate from the buffer before touching the first sample.
//
// Configure applies entries in map order and stops at the first unknown
// name or mismatched variant; entries applied before the failure stay
// applied. Out-of-range numeric values clamp to the declared bounds and
// never fail.
//
// Reset restores the freshly constructed processing state (delay lines,
// envelopes, filter histories, phase accumulators) without touching
// parameters.
type Effect interface {
	Name() string
	Definitions() []Def
	Configure(Set) error
	Parameters() Set
	Process(*audio.Buffer) (*audio.Buffer, error)
	Reset()
	SupportsFormat(sampleRate, channels int) bool
}

// supportsFormat is the shared SupportsFormat predicate. Every effect
// accepts 8 kHz to 192 kHz; maxChannels is 8 for effects that tolerate
// interleaved processing at any width and 2 for the delay-modulation
// family, where shared state across wider frames would smear channels.
func supportsFormat(sampleRate, channels, maxChannels int) bool {
	return sampleRate >= minSupportedRate && sampleRate <= maxSupportedRate &&
		channels >= 1 && channels <= maxChannels
}

// validateInput rejects buffers Process cannot work on.
func validateInput(buf *audio.Buffer) error {
	return buf.Validate()
}

// newLine builds a delay line, clamping the capacity to at least one
// sample so construction cannot fail.
func newLine(capacity int) *delay.Line {
	if capacity < 1 {
		capacity = 1
	}

	line, err := delay.New(capacity)
	if err != nil {
		panic(err)
	}

	return line
}

// newFollower builds an envelope follower; callers pass times already
// clamped to positive ranges, so construction cannot fail.
func newFollower(sampleRate int, attackMs, releaseMs float64) *envelope.Follower {
	f, err := envelope.New(float64(sampleRate), attackMs, releaseMs)
	if err != nil {
		panic(err)
	}

	return f
}

// newBandPass builds a bandpass filter; callers pass a validated sample
// rate, so construction cannot fail.
func newBandPass(sampleRate int) *filter.BandPass {
	f, err := filter.NewBandPass(sampleRate)
	if err != nil {
		panic(err)
	}

	return f
}
