package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/dsp/core"
)

const (
	defaultFFTSize = 4096
	minAnalyzerFFT = 16

	// Levels below the floor report as the floor; silence never produces
	// -Inf in a Summary.
	summaryFloorDB = -130.0
	summaryEps     = 1e-12
)

// Summary condenses a buffer to its dominant spectral peak and overall
// levels. All levels are dBFS relative to a full-scale sample of 1.0.
type Summary struct {
	PeakFrequency   float64
	PeakMagnitudeDB float64
	RMSDB           float64
	PeakSampleDB    float64
}

// Analyzer reduces buffers to spectral summaries with a Hann-windowed FFT.
// Multichannel input is averaged to mono before the transform; half-
// overlapped frames across the buffer are averaged in the power domain.
// An Analyzer reuses internal scratch and is not safe for concurrent use.
type Analyzer struct {
	fftSize    int
	plan       *algofft.Plan[complex128]
	window     []float64
	windowGain float64

	in  []complex128
	out []complex128
}

// NewAnalyzer creates an analyzer for the given FFT size, which must be a
// power of two of at least 16. Size 0 selects the 4096 default.
func NewAnalyzer(fftSize int) (*Analyzer, error) {
	if fftSize == 0 {
		fftSize = defaultFFTSize
	}
	if fftSize < minAnalyzerFFT || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("fft size must be a power of two >= %d: %d", minAnalyzerFFT, fftSize)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("create fft plan: %w", err)
	}

	win := hannWindow(fftSize)
	gain := 0.0
	for _, w := range win {
		gain += w
	}

	return &Analyzer{
		fftSize:    fftSize,
		plan:       plan,
		window:     win,
		windowGain: gain / float64(fftSize),
		in:         make([]complex128, fftSize),
		out:        make([]complex128, fftSize),
	}, nil
}

// FFTSize returns the configured transform size.
func (a *Analyzer) FFTSize() int {
	return a.fftSize
}

// Analyze summarizes the buffer. Buffers shorter than the FFT size are
// zero-padded; the tail past the last full frame is ignored by the
// spectral part but still counts toward the sample levels.
func (a *Analyzer) Analyze(buf *audio.Buffer) (Summary, error) {
	if err := buf.Validate(); err != nil {
		return Summary{}, fmt.Errorf("analyze: %w", err)
	}

	peak := 0.0
	sumSq := 0.0
	for _, v := range buf.Data {
		if av := math.Abs(v); av > peak {
			peak = av
		}
		sumSq += v * v
	}

	power, err := a.averagePower(monoMix(buf))
	if err != nil {
		return Summary{}, err
	}

	last := len(power) - 1
	peakBin := 0
	peakPower := -1.0
	for k, p := range power {
		if p > peakPower {
			peakPower = p
			peakBin = k
		}
	}

	// Undo the window loss and fold the mirrored half back in, so a
	// bin-centered full-scale sine reads as 0 dBFS.
	mag := math.Sqrt(peakPower) / (float64(a.fftSize) * a.windowGain)
	if peakBin > 0 && peakBin < last {
		mag *= 2
	}

	return Summary{
		PeakFrequency:   float64(peakBin) * float64(buf.SampleRate) / float64(a.fftSize),
		PeakMagnitudeDB: dbOrFloor(mag),
		RMSDB:           dbOrFloor(math.Sqrt(sumSq / float64(len(buf.Data)))),
		PeakSampleDB:    dbOrFloor(peak),
	}, nil
}

// averagePower accumulates single-sided power spectra over half-overlapped
// frames. A buffer shorter than one frame is analyzed zero-padded.
func (a *Analyzer) averagePower(mono []float64) ([]float64, error) {
	half := a.fftSize/2 + 1
	acc := make([]float64, half)

	hop := a.fftSize / 2
	frames := 0
	for start := 0; start == 0 || start+a.fftSize <= len(mono); start += hop {
		for i := range a.in {
			s := 0.0
			if start+i < len(mono) {
				s = mono[start+i]
			}
			a.in[i] = complex(s*a.window[i], 0)
		}

		if err := a.plan.Forward(a.out, a.in); err != nil {
			return nil, fmt.Errorf("fft forward: %w", err)
		}

		for k, p := range Power(a.out[:half]) {
			acc[k] += p
		}
		frames++
	}

	if frames > 1 {
		inv := 1 / float64(frames)
		for k := range acc {
			acc[k] *= inv
		}
	}
	return acc, nil
}

func monoMix(buf *audio.Buffer) []float64 {
	if buf.Channels == 1 {
		return buf.Data
	}

	frames := buf.Frames()
	mono := make([]float64, frames)
	scale := 1 / float64(buf.Channels)
	for f := 0; f < frames; f++ {
		sum := 0.0
		base := f * buf.Channels
		for c := 0; c < buf.Channels; c++ {
			sum += buf.Data[base+c]
		}
		mono[f] = sum * scale
	}
	return mono
}

// hannWindow returns the periodic Hann taper, which keeps a bin-centered
// tone confined to three bins.
func hannWindow(n int) []float64 {
	win := make([]float64, n)
	for i := range win {
		win[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n)))
	}
	return win
}

func dbOrFloor(v float64) float64 {
	db := core.LinearToDB(math.Max(summaryEps, v))
	if db < summaryFloorDB {
		return summaryFloorDB
	}
	return db
}
