// Package delay implements the circular delay line shared by the echo,
// reverb, and modulation effects.
package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// Line is a circular delay line with a fixed capacity.
//
// A read at delay d returns the sample written d writes ago; d is clamped to
// [0, Cap()-1], so requesting more history than the line holds yields the
// oldest stored sample rather than an error.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a delay line of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// Cap returns the line capacity in samples.
func (d *Line) Cap() int {
	return len(d.buffer)
}

// Write stores one sample and advances the write cursor.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read returns the sample written delay writes ago.
// Read(0) is the most recently written sample.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}
	if delay < 0 {
		delay = 0
	}
	if delay > size-1 {
		delay = size - 1
	}
	readPos := (d.writePos - 1 - delay + size) % size
	return d.buffer[readPos]
}

// ReadLinear reads a fractional delay by linear interpolation between the two
// nearest stored samples. At integer delays it equals Read.
func (d *Line) ReadLinear(delay float64) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}
	if delay < 0 {
		delay = 0
	}
	maxDelay := float64(size - 1)
	if delay > maxDelay {
		delay = maxDelay
	}

	p := int(math.Floor(delay))
	t := delay - float64(p)

	return core.Lerp(d.Read(p), d.Read(p+1), t)
}

// Reset clears line state.
func (d *Line) Reset() {
	core.Zero(d.buffer)
	d.writePos = 0
}
