package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

func TestPhaserDryAtZeroMix(t *testing.T) {
	p := NewPhaser(WithPhaserMix(0))

	in := sineBuffer(1024)
	out, err := p.Process(in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, out.Data, in.Data, 0)
}

func TestPhaserOutputBounded(t *testing.T) {
	p := NewPhaser(WithPhaserFeedback(0.9), WithPhaserDepth(2))

	in := sineBuffer(8192)
	out, err := p.Process(in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	for i, v := range out.Data {
		if math.Abs(v) > 1 {
			t.Fatalf("out[%d] = %v, exceeds [-1, 1]", i, v)
		}
	}
}

func TestPhaserColorsTheSignal(t *testing.T) {
	p := NewPhaser()

	in := sineBuffer(4410)
	out, err := p.Process(in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	diff, err := testutil.MaxAbsDiff(out.Data, in.Data)
	if err != nil {
		t.Fatal(err)
	}
	if diff == 0 {
		t.Fatal("phaser left the signal untouched")
	}
}

func TestPhaserConfigureClamps(t *testing.T) {
	p := NewPhaser()
	if err := p.Configure(Set{
		"rate":     Float(1000),
		"depth":    Float(-1),
		"feedback": Float(5),
		"mix":      Float(0.25),
	}); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	params := p.Parameters()
	checks := map[string]float64{
		"rate":     maxPhaserRate,
		"depth":    0,
		"feedback": maxModulationFeedback,
		"mix":      0.25,
	}
	for name, want := range checks {
		if got, _ := params[name].AsFloat(); got != want {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
}
