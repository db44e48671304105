package effects

import (
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

func sineBuffer(length int) *audio.Buffer {
	return audio.FromSamples(testutil.DeterministicSine(440, 44100, 0.5, length), 44100, 2)
}

func mustNew(t *testing.T, name string) Effect {
	t.Helper()
	fx, err := New(name)
	if err != nil {
		t.Fatalf("New(%q): %v", name, err)
	}
	return fx
}

func TestEffectsProcessBasics(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			fx := mustNew(t, name)

			in := sineBuffer(1024)
			ref := in.Clone()

			out, err := fx.Process(in)
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			if out == in {
				t.Fatal("Process returned the input buffer")
			}
			if out.Len() != in.Len() {
				t.Fatalf("output length = %d, want %d", out.Len(), in.Len())
			}
			if !out.SameFormat(in) {
				t.Fatalf("output format = %d Hz/%d ch, want %d Hz/%d ch",
					out.SampleRate, out.Channels, in.SampleRate, in.Channels)
			}
			testutil.RequireFinite(t, out.Data)
			testutil.RequireSliceNearlyEqual(t, in.Data, ref.Data, 0)
		})
	}
}

func TestEffectsZeroInZeroOut(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			fx := mustNew(t, name)

			// Load internal state first, then reset and feed silence.
			if _, err := fx.Process(sineBuffer(512)); err != nil {
				t.Fatalf("warmup Process: %v", err)
			}
			fx.Reset()

			out, err := fx.Process(audio.FromSamples(make([]float64, 512), 44100, 2))
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			for i, v := range out.Data {
				if v != 0 {
					t.Fatalf("output[%d] = %v, want 0", i, v)
				}
			}
		})
	}
}

func TestEffectsResetRestoresInitialOutput(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			fx := mustNew(t, name)
			in := sineBuffer(512)

			first, err := fx.Process(in)
			if err != nil {
				t.Fatalf("first Process: %v", err)
			}

			fx.Reset()

			second, err := fx.Process(in)
			if err != nil {
				t.Fatalf("second Process: %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, second.Data, first.Data, 0)
		})
	}
}

func TestEffectsRejectBadInput(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			fx := mustNew(t, name)

			if _, err := fx.Process(nil); err == nil {
				t.Fatal("Process(nil) did not fail")
			}
			if _, err := fx.Process(&audio.Buffer{SampleRate: 44100, Channels: 1}); err == nil {
				t.Fatal("Process(empty) did not fail")
			}
			if _, err := fx.Process(audio.FromSamples([]float64{0}, 0, 1)); err == nil {
				t.Fatal("Process with zero sample rate did not fail")
			}
		})
	}
}

func TestEffectsUnknownParameter(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			fx := mustNew(t, name)
			if err := fx.Configure(Set{"no_such_parameter": Float(1)}); err == nil {
				t.Fatal("Configure with unknown parameter did not fail")
			}
		})
	}
}

func TestEffectsDefaultsMatchDefinitions(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			fx := mustNew(t, name)

			defs := fx.Definitions()
			if len(defs) == 0 {
				t.Fatal("no parameter definitions")
			}

			params := fx.Parameters()
			if len(params) != len(defs) {
				t.Fatalf("Parameters reports %d entries, Definitions %d", len(params), len(defs))
			}

			for _, def := range defs {
				if def.Name == "" || def.Description == "" {
					t.Fatalf("definition %+v missing name or description", def)
				}

				got, ok := params[def.Name]
				if !ok {
					t.Fatalf("parameter %q not reported", def.Name)
				}
				if got != def.Default {
					t.Fatalf("parameter %q = %s, want default %s", def.Name, got, def.Default)
				}

				// Reapplying the default must hold.
				if err := fx.Configure(Set{def.Name: def.Default}); err != nil {
					t.Fatalf("Configure(%q, default): %v", def.Name, err)
				}
				if after := fx.Parameters()[def.Name]; after != def.Default {
					t.Fatalf("parameter %q drifted to %s after reapplying default", def.Name, after)
				}
			}
		})
	}
}

func TestEffectsSupportsFormat(t *testing.T) {
	maxChannels := map[string]int{
		"auto_wah":     8,
		"bitcrusher":   8,
		"chorus":       2,
		"compression":  8,
		"delay":        8,
		"distortion":   8,
		"eq":           8,
		"flanger":      2,
		"gate":         8,
		"limiter":      8,
		"phaser":       2,
		"pitch_shift":  2,
		"reverb":       2,
		"time_stretch": 2,
		"tremolo":      8,
		"vibrato":      2,
	}

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			fx := mustNew(t, name)
			maxCh := maxChannels[name]

			for _, rate := range []int{8000, 44100, 48000, 192000} {
				if !fx.SupportsFormat(rate, 1) {
					t.Errorf("SupportsFormat(%d, 1) = false", rate)
				}
			}
			if !fx.SupportsFormat(44100, 2) {
				t.Error("SupportsFormat(44100, 2) = false")
			}
			if !fx.SupportsFormat(44100, maxCh) {
				t.Errorf("SupportsFormat(44100, %d) = false", maxCh)
			}

			if fx.SupportsFormat(7999, 1) {
				t.Error("SupportsFormat(7999, 1) = true")
			}
			if fx.SupportsFormat(192001, 1) {
				t.Error("SupportsFormat(192001, 1) = true")
			}
			if fx.SupportsFormat(44100, 0) {
				t.Error("SupportsFormat(44100, 0) = true")
			}
			if fx.SupportsFormat(44100, maxCh+1) {
				t.Errorf("SupportsFormat(44100, %d) = true", maxCh+1)
			}
		})
	}
}

func BenchmarkEffects(b *testing.B) {
	for _, name := range []string{"delay", "reverb", "compression", "eq", "distortion", "chorus"} {
		b.Run(name, func(b *testing.B) {
			fx, err := New(name)
			if err != nil {
				b.Fatalf("New(%q): %v", name, err)
			}
			in := audio.FromSamples(testutil.DeterministicSine(440, 44100, 0.5, 44100), 44100, 1)

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := fx.Process(in); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
