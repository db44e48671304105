package filter

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

const (
	minBandPassFrequency = 20.0
	maxBandPassFraction  = 0.45
	minBandPassQ         = 0.1
	maxBandPassQ         = 20.0
)

// BandPass is a second-order bandpass filter with 0 dB peak gain after
// the Audio EQ Cookbook, evaluated in direct form 1 so it stays well
// behaved when retuned on every sample.
type BandPass struct {
	sampleRate int

	b0, b1, b2 float64
	a1, a2     float64

	x1, x2 float64
	y1, y2 float64
}

// NewBandPass returns a bandpass for the given sample rate, tuned to a
// neutral 1 kHz with Q 1 until Tune is called.
func NewBandPass(sampleRate int) (*BandPass, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive: %d", sampleRate)
	}

	f := &BandPass{sampleRate: sampleRate}
	f.Tune(1000, 1)

	return f, nil
}

// SetSampleRate changes the sample rate. The caller is expected to Tune
// again afterwards; coefficients are not retuned automatically.
func (f *BandPass) SetSampleRate(sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive: %d", sampleRate)
	}

	f.sampleRate = sampleRate

	return nil
}

// SampleRate returns the configured sample rate.
func (f *BandPass) SampleRate() int {
	return f.sampleRate
}

// Tune recomputes the coefficients for the given center frequency in Hz
// and quality factor. The frequency is clamped below the Nyquist limit
// and Q is clamped to a stable range, so Tune is safe to drive from a
// modulation source.
func (f *BandPass) Tune(centerHz, q float64) {
	centerHz = core.Clamp(centerHz, minBandPassFrequency, maxBandPassFraction*float64(f.sampleRate))
	q = core.Clamp(q, minBandPassQ, maxBandPassQ)

	w := 2 * math.Pi * centerHz / float64(f.sampleRate)
	alpha := math.Sin(w) / (2 * q)
	norm := 1 + alpha

	f.b0 = alpha / norm
	f.b1 = 0
	f.b2 = -alpha / norm
	f.a1 = -2 * math.Cos(w) / norm
	f.a2 = (1 - alpha) / norm
}

// ProcessSample filters a single sample.
func (f *BandPass) ProcessSample(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2

	f.x2 = f.x1
	f.x1 = x
	f.y2 = f.y1
	f.y1 = y

	return y
}

// Reset clears the filter history without touching the coefficients.
func (f *BandPass) Reset() {
	f.x1, f.x2 = 0, 0
	f.y1, f.y2 = 0, 0
}
