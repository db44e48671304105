package effectchain

import (
	"errors"
	"strings"
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/dsp/effects"
	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

func impulseBuffer(length int) *audio.Buffer {
	return audio.FromSamples(testutil.Impulse(length, 0), 44100, 1)
}

func TestNewBuildsStagesInOrder(t *testing.T) {
	p, err := ParsePreset([]byte(presetYAML))
	if err != nil {
		t.Fatalf("ParsePreset: %v", err)
	}

	chain, err := New(p)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if chain.Name() != "warm-lead" {
		t.Errorf("Name = %q, want %q", chain.Name(), "warm-lead")
	}
	if chain.Len() != 2 {
		t.Errorf("Len = %d, want 2", chain.Len())
	}
	got := chain.Stages()
	if len(got) != 2 || got[0] != "distortion" || got[1] != "delay" {
		t.Errorf("Stages = %v, want [distortion delay]", got)
	}
}

func TestNewRejectsUnknownEffect(t *testing.T) {
	_, err := New(Preset{Stages: []Stage{{Effect: "echo"}}})
	if !errors.Is(err, effects.ErrUnknownEffect) {
		t.Fatalf("error = %v, want ErrUnknownEffect", err)
	}
}

func TestNewRejectsBadParams(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]any
	}{
		{"unknown name", map[string]any{"wobble": 1.0}},
		{"wrong type", map[string]any{"mix": true}},
		{"non-scalar", map[string]any{"mix": []any{1, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Preset{Stages: []Stage{{Effect: "delay", Params: tt.params}}})
			if err == nil {
				t.Fatal("New accepted the preset")
			}
		})
	}
}

func TestNewRejectsEmptyPreset(t *testing.T) {
	if _, err := New(Preset{Name: "hollow"}); !errors.Is(err, ErrEmptyPreset) {
		t.Fatalf("error = %v, want ErrEmptyPreset", err)
	}
}

// A fully dry chain must hand the input through bit for bit.
func TestChainDryPassthrough(t *testing.T) {
	chain, err := New(Preset{Stages: []Stage{
		{Effect: "delay", Params: map[string]any{"mix": 0.0}},
		{Effect: "tremolo", Params: map[string]any{"depth": 0.0}},
	}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	in := audio.FromSamples(testutil.DeterministicSine(440, 44100, 0.5, 2048), 44100, 1)
	inCopy := append([]float64(nil), in.Data...)

	out, err := chain.Process(in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out == in {
		t.Fatal("Process returned the input buffer")
	}
	testutil.RequireSliceNearlyEqual(t, out.Data, in.Data, 0)
	testutil.RequireSliceNearlyEqual(t, in.Data, inCopy, 0)
}

func TestChainAppliesStagesSequentially(t *testing.T) {
	echo := Stage{Effect: "delay", Params: map[string]any{"delay": 10, "mix": 1.0, "feedback": 0.0}}

	chain, err := New(Preset{Stages: []Stage{echo}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := chain.Process(impulseBuffer(2048))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got := out.Data[441]; got != 1 {
		t.Errorf("out[441] = %v, want 1 (10 ms echo)", got)
	}

	// The same stage twice doubles the delay end to end.
	chain, err = New(Preset{Stages: []Stage{echo, echo}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err = chain.Process(impulseBuffer(2048))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got := out.Data[882]; got != 1 {
		t.Errorf("out[882] = %v, want 1 (two 10 ms echoes)", got)
	}
	if got := out.Data[441]; got != 0 {
		t.Errorf("out[441] = %v, want 0", got)
	}
}

func TestChainOrderMatters(t *testing.T) {
	in := audio.FromSamples(testutil.DeterministicSine(440, 44100, 0.5, 4096), 44100, 1)

	forward, err := New(Preset{Stages: []Stage{{Effect: "distortion"}, {Effect: "tremolo"}}})
	if err != nil {
		t.Fatalf("New forward: %v", err)
	}
	reverse, err := New(Preset{Stages: []Stage{{Effect: "tremolo"}, {Effect: "distortion"}}})
	if err != nil {
		t.Fatalf("New reverse: %v", err)
	}

	outF, err := forward.Process(in)
	if err != nil {
		t.Fatalf("Process forward: %v", err)
	}
	outR, err := reverse.Process(in)
	if err != nil {
		t.Fatalf("Process reverse: %v", err)
	}

	diff, err := testutil.MaxAbsDiff(outF.Data, outR.Data)
	if err != nil {
		t.Fatalf("MaxAbsDiff: %v", err)
	}
	if diff < 1e-6 {
		t.Errorf("stage order had no effect (max diff %v)", diff)
	}
}

func TestChainChecksFormatPerStage(t *testing.T) {
	chain, err := New(Preset{Stages: []Stage{{Effect: "chorus"}}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	quad := audio.FromSamples(make([]float64, 4096), 44100, 4)
	if _, err := chain.Process(quad); err == nil {
		t.Fatal("Process accepted 4 channels through a 2-channel stage")
	} else if !strings.Contains(err.Error(), "chorus") {
		t.Errorf("error %q does not name the failing stage", err)
	}
}

func TestChainResetRestoresState(t *testing.T) {
	chain, err := New(Preset{Stages: []Stage{
		{Effect: "delay", Params: map[string]any{"delay": 10, "mix": 1.0, "feedback": 0.5}},
	}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	first, err := chain.Process(impulseBuffer(2048))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	chain.Reset()

	second, err := chain.Process(impulseBuffer(2048))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, second.Data, first.Data, 0)
}

func TestChainRejectsInvalidBuffer(t *testing.T) {
	chain, err := New(Preset{Stages: []Stage{{Effect: "delay"}}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := chain.Process(nil); err == nil {
		t.Error("Process(nil) succeeded")
	}
	if _, err := chain.Process(audio.FromSamples([]float64{0}, 0, 1)); err == nil {
		t.Error("Process with zero sample rate succeeded")
	}
}
