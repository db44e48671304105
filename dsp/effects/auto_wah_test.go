package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

func TestAutoWahStableOnNoise(t *testing.T) {
	w := NewAutoWah()

	in := audio.FromSamples(testutil.DeterministicNoise(1, 0.5, 4096), 44100, 1)
	out, err := w.Process(in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	testutil.RequireFinite(t, out.Data)
	for i, v := range out.Data {
		if math.Abs(v) > 2 {
			t.Fatalf("out[%d] = %v, far outside the input scale", i, v)
		}
	}
}

// The filter center follows the input envelope, so the wah is not a
// linear system: scaling the input does not just scale the output.
func TestAutoWahRespondsToLevel(t *testing.T) {
	w := NewAutoWah()

	quiet := audio.FromSamples(testutil.DeterministicSine(440, 44100, 0.1, 4410), 44100, 1)
	outQuiet, err := w.Process(quiet)
	if err != nil {
		t.Fatalf("Process quiet: %v", err)
	}

	w.Reset()

	loud := audio.FromSamples(testutil.DeterministicSine(440, 44100, 0.8, 4410), 44100, 1)
	outLoud, err := w.Process(loud)
	if err != nil {
		t.Fatalf("Process loud: %v", err)
	}

	scaled := make([]float64, len(outQuiet.Data))
	for i, v := range outQuiet.Data {
		scaled[i] = v * 8
	}

	diff, err := testutil.MaxAbsDiff(outLoud.Data, scaled)
	if err != nil {
		t.Fatalf("MaxAbsDiff: %v", err)
	}
	if diff < 0.01 {
		t.Errorf("loud output tracks the quiet one linearly (max diff %v)", diff)
	}
}

func TestAutoWahAdaptsSampleRate(t *testing.T) {
	w := NewAutoWah()

	if _, err := w.Process(sineBuffer(1024)); err != nil {
		t.Fatalf("Process at 44.1 kHz: %v", err)
	}

	in := audio.FromSamples(testutil.DeterministicSine(440, 96000, 0.5, 1024), 96000, 1)
	out, err := w.Process(in)
	if err != nil {
		t.Fatalf("Process at 96 kHz: %v", err)
	}
	testutil.RequireFinite(t, out.Data)
}

func TestAutoWahConfigureClamps(t *testing.T) {
	w := NewAutoWah()

	err := w.Configure(Set{
		"sensitivity":     Float(99),
		"frequency_range": Float(1),
		"base_frequency":  Float(10000),
		"resonance":       Float(0),
		"attack_time":     Float(0),
		"release_time":    Float(1e9),
	})
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}

	params := w.Parameters()
	want := map[string]float64{
		"sensitivity":     2,
		"frequency_range": 100,
		"base_frequency":  800,
		"resonance":       0.1,
		"attack_time":     1,
		"release_time":    1000,
	}
	for name, v := range want {
		if got := params[name]; got != Float(v) {
			t.Errorf("%s = %s, want %v", name, got, v)
		}
	}

	if err := w.Configure(Set{"resonance": String("high")}); err == nil {
		t.Fatal("Configure accepted a string resonance")
	}
}
