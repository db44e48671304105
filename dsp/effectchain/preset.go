package effectchain

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-audiofx/dsp/effects"
)

// ErrEmptyPreset is returned when a preset declares no stages.
var ErrEmptyPreset = errors.New("effectchain: preset has no stages")

// Stage names one catalog effect and the parameters to apply to it.
// Parameter values hold the YAML scalar types (int, float64, bool,
// string) and are converted when a chain is built.
type Stage struct {
	Effect string         `yaml:"effect"`
	Params map[string]any `yaml:"params"`
}

// Preset is an ordered list of stages, usually loaded from a YAML file:
//
//	name: warm-lead
//	stages:
//	  - effect: distortion
//	    params:
//	      gain: 3.5
//	      type: 2
//	  - effect: delay
//	    params:
//	      delay: 250
//	      mix: 0.25
type Preset struct {
	Name   string  `yaml:"name"`
	Stages []Stage `yaml:"stages"`
}

// LoadPreset reads and parses a preset file.
func LoadPreset(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("effectchain: read preset: %w", err)
	}

	p, err := ParsePreset(data)
	if err != nil {
		return Preset{}, fmt.Errorf("effectchain: preset %s: %w", path, err)
	}

	return p, nil
}

// ParsePreset parses YAML preset data. Unknown fields are rejected.
func ParsePreset(data []byte) (Preset, error) {
	var p Preset

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return Preset{}, ErrEmptyPreset
		}

		return Preset{}, fmt.Errorf("parse: %w", err)
	}

	if len(p.Stages) == 0 {
		return Preset{}, ErrEmptyPreset
	}
	for i, st := range p.Stages {
		if st.Effect == "" {
			return Preset{}, fmt.Errorf("stage %d: missing effect name", i)
		}
	}

	return p, nil
}

// paramSet converts the YAML scalars of one stage to effect parameters.
func (s Stage) paramSet() (effects.Set, error) {
	if len(s.Params) == 0 {
		return nil, nil
	}

	set := make(effects.Set, len(s.Params))
	for name, raw := range s.Params {
		v, err := scalarValue(raw)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", name, err)
		}
		set[name] = v
	}

	return set, nil
}

func scalarValue(raw any) (effects.Value, error) {
	switch x := raw.(type) {
	case int:
		return effects.Int(x), nil
	case int64:
		return effects.Int(int(x)), nil
	case float64:
		return effects.Float(x), nil
	case bool:
		return effects.Bool(x), nil
	case string:
		return effects.String(x), nil
	default:
		return effects.Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}
