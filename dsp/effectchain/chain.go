// Package effectchain composes catalog effects into linear processing
// chains described by presets.
package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/dsp/effects"
)

type stage struct {
	name string
	fx   effects.Effect
}

// Chain runs a fixed sequence of configured effects. Each stage receives
// the previous stage's output; the input buffer is never mutated.
type Chain struct {
	name   string
	stages []stage
}

// New builds a chain from a preset against the effect catalog. Every
// stage is constructed and configured up front, so a returned chain is
// ready to process.
func New(preset Preset) (*Chain, error) {
	if len(preset.Stages) == 0 {
		return nil, ErrEmptyPreset
	}

	c := &Chain{
		name:   preset.Name,
		stages: make([]stage, 0, len(preset.Stages)),
	}

	for i, st := range preset.Stages {
		fx, err := effects.New(st.Effect)
		if err != nil {
			return nil, fmt.Errorf("effectchain: stage %d: %w", i, err)
		}

		set, err := st.paramSet()
		if err != nil {
			return nil, fmt.Errorf("effectchain: stage %d (%s): %w", i, st.Effect, err)
		}
		if err := fx.Configure(set); err != nil {
			return nil, fmt.Errorf("effectchain: stage %d (%s): %w", i, st.Effect, err)
		}

		c.stages = append(c.stages, stage{name: st.Effect, fx: fx})
	}

	return c, nil
}

// Name returns the preset name the chain was built from.
func (c *Chain) Name() string {
	return c.name
}

// Len returns the number of stages.
func (c *Chain) Len() int {
	return len(c.stages)
}

// Stages returns the effect identifiers in processing order.
func (c *Chain) Stages() []string {
	names := make([]string, len(c.stages))
	for i, st := range c.stages {
		names[i] = st.name
	}

	return names
}

// Process runs the buffer through every stage in order. The format is
// checked against each stage before it runs; a stage that cannot handle
// the buffer's sample rate or channel count fails the whole call.
func (c *Chain) Process(buf *audio.Buffer) (*audio.Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	cur := buf
	for i, st := range c.stages {
		if !st.fx.SupportsFormat(cur.SampleRate, cur.Channels) {
			return nil, fmt.Errorf("effectchain: stage %d (%s) does not support %d Hz / %d channel(s)",
				i, st.name, cur.SampleRate, cur.Channels)
		}

		out, err := st.fx.Process(cur)
		if err != nil {
			return nil, fmt.Errorf("effectchain: stage %d (%s): %w", i, st.name, err)
		}
		cur = out
	}

	return cur, nil
}

// Reset clears the processing state of every stage.
func (c *Chain) Reset() {
	for _, st := range c.stages {
		st.fx.Reset()
	}
}
