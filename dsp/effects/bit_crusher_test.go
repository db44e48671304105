package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

func TestBitCrusherQuantizationGrid(t *testing.T) {
	bc := NewBitCrusher(WithBitCrusherBitDepth(4))

	// 4 bits span 16 levels across (-1, 1).
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{0.5, 0.5},
		{-0.3, -0.375},
		{1, 1},
		{-1, -1},
	}

	data := make([]float64, len(tests))
	for i, tt := range tests {
		data[i] = tt.in
	}

	out, err := bc.Process(audio.FromSamples(data, 44100, 1))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	for i, tt := range tests {
		if math.Abs(out.Data[i]-tt.want) > 1e-12 {
			t.Errorf("quantize(%v) = %v, want %v", tt.in, out.Data[i], tt.want)
		}
	}
}

func TestBitCrusherZeroStaysZero(t *testing.T) {
	for _, bits := range []float64{1, 4, 8, 16} {
		bc := NewBitCrusher(WithBitCrusherBitDepth(bits))
		out, err := bc.Process(audio.FromSamples(make([]float64, 8), 44100, 1))
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		for i, v := range out.Data {
			if v != 0 {
				t.Fatalf("bits=%v: out[%d] = %v, want 0", bits, i, v)
			}
		}
	}
}

func TestBitCrusherSampleRateReduction(t *testing.T) {
	bc := NewBitCrusher(
		WithBitCrusherBitDepth(16),
		WithBitCrusherRateReduction(4),
	)

	data := make([]float64, 16)
	for i := range data {
		data[i] = float64(i) / 100
	}

	out, err := bc.Process(audio.FromSamples(data, 44100, 1))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	// The hold counter fires every fourth sample, so values stay flat in
	// groups of four while the input ramps.
	for i := 4; i <= 6; i++ {
		if out.Data[i] != out.Data[3] {
			t.Errorf("out[%d] = %v, want held value %v", i, out.Data[i], out.Data[3])
		}
	}
	if out.Data[7] == out.Data[3] {
		t.Error("hold value did not refresh after the skip interval")
	}
}

func TestBitCrusherDryAtZeroMix(t *testing.T) {
	bc := NewBitCrusher(WithBitCrusherBitDepth(2), WithBitCrusherMix(0))

	in := audio.FromSamples(testutil.DeterministicSine(440, 44100, 0.5, 512), 44100, 1)
	out, err := bc.Process(in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, out.Data, in.Data, 0)
}

func TestBitCrusherConfigureClamps(t *testing.T) {
	bc := NewBitCrusher()
	if err := bc.Configure(Set{
		"bit_depth":             Float(0),
		"sample_rate_reduction": Float(1000),
		"mix":                   Float(1.5),
	}); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	params := bc.Parameters()
	checks := map[string]float64{
		"bit_depth":             minBitCrusherBitDepth,
		"sample_rate_reduction": maxBitCrusherRateRed,
		"mix":                   1,
	}
	for name, want := range checks {
		if got, _ := params[name].AsFloat(); got != want {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
}
