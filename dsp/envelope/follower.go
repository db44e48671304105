// Package envelope implements the smoothed magnitude detector shared by the
// dynamics effects and the auto-wah.
package envelope

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// Coefficient returns the one-pole smoothing coefficient for a time constant
// in milliseconds at the given sample rate. Non-positive times collapse to 0
// (instant response).
func Coefficient(ms, sampleRate float64) float64 {
	samples := ms * 0.001 * sampleRate
	if samples <= 0 {
		return 0
	}

	return math.Exp(-1.0 / samples)
}

// Follower tracks a smoothed estimate of input magnitude with asymmetric
// attack and release behavior: rising input is followed with the (fast)
// attack coefficient, falling input with the (slow) release coefficient.
type Follower struct {
	sampleRate float64
	attackMs   float64
	releaseMs  float64

	attackCoeff  float64
	releaseCoeff float64
	level        float64
}

// New returns a follower with coefficients derived from the attack and
// release times.
func New(sampleRate, attackMs, releaseMs float64) (*Follower, error) {
	f := &Follower{
		sampleRate: sampleRate,
		attackMs:   attackMs,
		releaseMs:  releaseMs,
	}

	err := f.recalculate()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// SetSampleRate updates the sample rate and rederives both coefficients.
func (f *Follower) SetSampleRate(sampleRate float64) error {
	prev := f.sampleRate
	f.sampleRate = sampleRate

	err := f.recalculate()
	if err != nil {
		f.sampleRate = prev
		_ = f.recalculate()

		return err
	}

	return nil
}

// SetTimes updates the attack and release times in milliseconds.
func (f *Follower) SetTimes(attackMs, releaseMs float64) error {
	prevAttack, prevRelease := f.attackMs, f.releaseMs
	f.attackMs = attackMs
	f.releaseMs = releaseMs

	err := f.recalculate()
	if err != nil {
		f.attackMs, f.releaseMs = prevAttack, prevRelease
		_ = f.recalculate()

		return err
	}

	return nil
}

// Process feeds one sample and returns the updated envelope level.
func (f *Follower) Process(x float64) float64 {
	magnitude := math.Abs(x)

	coeff := f.releaseCoeff
	if magnitude > f.level {
		coeff = f.attackCoeff
	}

	f.level = magnitude + (f.level-magnitude)*coeff

	return f.level
}

// Level returns the current envelope level without advancing it.
func (f *Follower) Level() float64 {
	return f.level
}

// AttackMs returns the configured attack time.
func (f *Follower) AttackMs() float64 { return f.attackMs }

// ReleaseMs returns the configured release time.
func (f *Follower) ReleaseMs() float64 { return f.releaseMs }

// Reset zeroes the envelope level.
func (f *Follower) Reset() {
	f.level = 0
}

func (f *Follower) recalculate() error {
	if f.sampleRate <= 0 || !core.IsFinite(f.sampleRate) {
		return fmt.Errorf("sample rate must be positive and finite: %f", f.sampleRate)
	}
	if f.attackMs <= 0 || !core.IsFinite(f.attackMs) {
		return fmt.Errorf("attack must be positive and finite: %f", f.attackMs)
	}
	if f.releaseMs <= 0 || !core.IsFinite(f.releaseMs) {
		return fmt.Errorf("release must be positive and finite: %f", f.releaseMs)
	}

	f.attackCoeff = Coefficient(f.attackMs, f.sampleRate)
	f.releaseCoeff = Coefficient(f.releaseMs, f.sampleRate)

	return nil
}
