package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	a := []float64{1.0, 2.0, 3.0}
	b := []float64{1.0, 2.1, 3.0}

	d, err := MaxAbsDiff(a, b)
	if err != nil {
		t.Fatalf("MaxAbsDiff: %v", err)
	}
	if math.Abs(d-0.1) > 1e-15 {
		t.Errorf("MaxAbsDiff = %v, want 0.1", d)
	}

	d, err = MaxAbsDiff(a, a)
	if err != nil {
		t.Fatalf("MaxAbsDiff: %v", err)
	}
	if d != 0 {
		t.Errorf("MaxAbsDiff(a, a) = %v, want 0", d)
	}
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	if _, err := MaxAbsDiff([]float64{1}, []float64{1, 2}); err == nil {
		t.Error("MaxAbsDiff accepted mismatched lengths")
	}
}
