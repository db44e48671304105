// Package audio defines the sample buffer exchanged between file I/O,
// effects, and chains.
//
// Samples are float64 values nominally in [-1, 1], interleaved by frame when
// Channels > 1. Format metadata is fixed for the lifetime of one processing
// call; effects that cache rate-derived state recompute it when a buffer with
// a different sample rate arrives.
package audio

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNilBuffer is returned when an operation receives a nil buffer.
	ErrNilBuffer = errors.New("audio: nil buffer")
	// ErrEmptyBuffer is returned when an operation receives a buffer with no samples.
	ErrEmptyBuffer = errors.New("audio: empty buffer")
)

// Buffer holds interleaved samples together with their format.
type Buffer struct {
	Data       []float64
	SampleRate int
	Channels   int
}

// New returns a zero-filled buffer for the given format and length.
func New(sampleRate, channels, length int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("audio: sample rate must be positive: %d", sampleRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("audio: channel count must be positive: %d", channels)
	}
	if length < 0 {
		length = 0
	}

	return &Buffer{
		Data:       make([]float64, length),
		SampleRate: sampleRate,
		Channels:   channels,
	}, nil
}

// FromSamples wraps an existing slice without copying.
func FromSamples(data []float64, sampleRate, channels int) *Buffer {
	return &Buffer{Data: data, SampleRate: sampleRate, Channels: channels}
}

// Validate reports whether the buffer is usable for processing.
func (b *Buffer) Validate() error {
	if b == nil {
		return ErrNilBuffer
	}
	if b.SampleRate <= 0 {
		return fmt.Errorf("audio: sample rate must be positive: %d", b.SampleRate)
	}
	if b.Channels <= 0 {
		return fmt.Errorf("audio: channel count must be positive: %d", b.Channels)
	}
	if len(b.Data) == 0 {
		return ErrEmptyBuffer
	}

	return nil
}

// Len returns the total number of samples across all channels.
func (b *Buffer) Len() int {
	return len(b.Data)
}

// Frames returns the number of sample frames (samples per channel).
func (b *Buffer) Frames() int {
	if b.Channels <= 0 {
		return 0
	}

	return len(b.Data) / b.Channels
}

// Duration returns the playback time represented by the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}

	seconds := float64(b.Frames()) / float64(b.SampleRate)

	return time.Duration(seconds * float64(time.Second))
}

// Clone returns a deep copy sharing no memory with the receiver.
func (b *Buffer) Clone() *Buffer {
	data := make([]float64, len(b.Data))
	copy(data, b.Data)

	return &Buffer{Data: data, SampleRate: b.SampleRate, Channels: b.Channels}
}

// SameFormat reports whether other carries the same sample rate and channel count.
func (b *Buffer) SameFormat(other *Buffer) bool {
	return other != nil && b.SampleRate == other.SampleRate && b.Channels == other.Channels
}
