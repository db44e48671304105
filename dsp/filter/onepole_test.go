package filter

import (
	"math"
	"testing"
)

func TestOnePoleAlphaClamped(t *testing.T) {
	tests := []struct {
		name  string
		alpha float64
		want  float64
	}{
		{"below range", -0.5, 0},
		{"lower bound", 0, 0},
		{"in range", 0.25, 0.25},
		{"upper bound", 1, 1},
		{"above range", 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewOnePole(tt.alpha)
			if got := f.Alpha(); got != tt.want {
				t.Fatalf("Alpha() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOnePolePassThrough(t *testing.T) {
	f := NewOnePole(1)

	for _, x := range []float64{0.5, -0.25, 1, 0} {
		if got := f.Process(x); got != x {
			t.Fatalf("Process(%v) with alpha=1 = %v, want %v", x, got, x)
		}
	}
}

func TestOnePoleFrozen(t *testing.T) {
	f := NewOnePole(0)

	for i := 0; i < 8; i++ {
		if got := f.Process(1); got != 0 {
			t.Fatalf("Process with alpha=0 = %v, want 0", got)
		}
	}
}

func TestOnePoleConverges(t *testing.T) {
	f := NewOnePole(0.1)

	var y float64
	for i := 0; i < 500; i++ {
		y = f.Process(1)
	}

	if math.Abs(y-1) > 1e-9 {
		t.Fatalf("output after 500 samples = %v, want ~1", y)
	}
}

func TestOnePoleMonotoneStep(t *testing.T) {
	f := NewOnePole(0.3)

	prev := 0.0
	for i := 0; i < 50; i++ {
		y := f.Process(1)
		if y <= prev {
			t.Fatalf("sample %d: output %v not strictly rising from %v", i, y, prev)
		}
		if y > 1 {
			t.Fatalf("sample %d: output %v overshoots step input", i, y)
		}
		prev = y
	}
}

func TestOnePoleReset(t *testing.T) {
	f := NewOnePole(0.5)
	f.Process(1)
	f.Process(1)

	f.Reset()

	if got := f.State(); got != 0 {
		t.Fatalf("State() after Reset = %v, want 0", got)
	}
}

func BenchmarkOnePoleProcess(b *testing.B) {
	f := NewOnePole(0.2)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		f.Process(0.5)
	}
}
