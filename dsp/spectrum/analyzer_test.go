package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

func TestNewAnalyzerSizes(t *testing.T) {
	a, err := NewAnalyzer(0)
	if err != nil {
		t.Fatalf("NewAnalyzer(0): %v", err)
	}
	if got := a.FFTSize(); got != 4096 {
		t.Fatalf("default FFTSize = %d, want 4096", got)
	}

	if _, err := NewAnalyzer(1024); err != nil {
		t.Fatalf("NewAnalyzer(1024): %v", err)
	}

	for _, n := range []int{1000, 8, -4, 3} {
		if _, err := NewAnalyzer(n); err == nil {
			t.Errorf("NewAnalyzer(%d) accepted an invalid size", n)
		}
	}
}

func TestAnalyzerPureTone(t *testing.T) {
	a, err := NewAnalyzer(4096)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	// Bin 64 of a 4096-point transform at 44.1 kHz.
	freq := 64.0 * 44100.0 / 4096.0
	buf := audio.FromSamples(testutil.DeterministicSine(freq, 44100, 0.5, 8192), 44100, 1)

	sum, err := a.Analyze(buf)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if math.Abs(sum.PeakFrequency-freq) > 1e-9 {
		t.Errorf("PeakFrequency = %g, want %g", sum.PeakFrequency, freq)
	}
	if want := 20 * math.Log10(0.5); math.Abs(sum.PeakMagnitudeDB-want) > 1e-3 {
		t.Errorf("PeakMagnitudeDB = %g, want %g", sum.PeakMagnitudeDB, want)
	}
	if want := 20 * math.Log10(0.5/math.Sqrt2); math.Abs(sum.RMSDB-want) > 1e-3 {
		t.Errorf("RMSDB = %g, want %g", sum.RMSDB, want)
	}
	if want := 20 * math.Log10(0.5); math.Abs(sum.PeakSampleDB-want) > 1e-9 {
		t.Errorf("PeakSampleDB = %g, want %g", sum.PeakSampleDB, want)
	}
}

func TestAnalyzerSilenceFloors(t *testing.T) {
	a, err := NewAnalyzer(1024)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	sum, err := a.Analyze(audio.FromSamples(make([]float64, 4096), 44100, 1))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if sum.PeakMagnitudeDB != summaryFloorDB {
		t.Errorf("PeakMagnitudeDB = %g, want floor %g", sum.PeakMagnitudeDB, summaryFloorDB)
	}
	if sum.RMSDB != summaryFloorDB {
		t.Errorf("RMSDB = %g, want floor %g", sum.RMSDB, summaryFloorDB)
	}
	if sum.PeakSampleDB != summaryFloorDB {
		t.Errorf("PeakSampleDB = %g, want floor %g", sum.PeakSampleDB, summaryFloorDB)
	}
	if sum.PeakFrequency != 0 {
		t.Errorf("PeakFrequency = %g, want 0", sum.PeakFrequency)
	}
}

// Out-of-phase stereo cancels in the mono mixdown while the per-sample
// levels still see both channels.
func TestAnalyzerStereoCancellation(t *testing.T) {
	a, err := NewAnalyzer(1024)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	mono := testutil.DeterministicSine(64.0*44100.0/1024.0, 44100, 0.5, 4096)
	data := make([]float64, 2*len(mono))
	for i, v := range mono {
		data[2*i] = v
		data[2*i+1] = -v
	}

	sum, err := a.Analyze(audio.FromSamples(data, 44100, 2))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if sum.PeakMagnitudeDB != summaryFloorDB {
		t.Errorf("PeakMagnitudeDB = %g, want floor %g", sum.PeakMagnitudeDB, summaryFloorDB)
	}
	if want := 20 * math.Log10(0.5); math.Abs(sum.PeakSampleDB-want) > 1e-9 {
		t.Errorf("PeakSampleDB = %g, want %g", sum.PeakSampleDB, want)
	}
}

func TestAnalyzerZeroPadsShortBuffers(t *testing.T) {
	a, err := NewAnalyzer(4096)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	sum, err := a.Analyze(audio.FromSamples(testutil.DC(0.5, 100), 44100, 1))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if sum.PeakFrequency != 0 {
		t.Errorf("PeakFrequency = %g, want 0 for a DC burst", sum.PeakFrequency)
	}
	if math.IsNaN(sum.PeakMagnitudeDB) || math.IsInf(sum.PeakMagnitudeDB, 0) {
		t.Errorf("PeakMagnitudeDB = %g, want finite", sum.PeakMagnitudeDB)
	}
}

func TestAnalyzerRejectsInvalidBuffers(t *testing.T) {
	a, err := NewAnalyzer(1024)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	if _, err := a.Analyze(nil); err == nil {
		t.Error("Analyze(nil) succeeded")
	}
	if _, err := a.Analyze(audio.FromSamples(nil, 44100, 1)); err == nil {
		t.Error("Analyze(empty) succeeded")
	}
	if _, err := a.Analyze(audio.FromSamples([]float64{0.1}, 0, 1)); err == nil {
		t.Error("Analyze with zero sample rate succeeded")
	}
}
