// Package effects implements the effect catalog: sixteen audio effects
// behind one uniform interface, a tagged parameter system with
// introspection, and a by-name construction entry point for callers such
// as the CLI and preset chains.
//
// Effects in this package:
//   - BitCrusher: bit depth and sample rate reduction for lo-fi aesthetics.
//   - Chorus, Flanger, Vibrato: modulated fractional delay lines.
//   - Phaser: four-stage modulated all-pass cascade.
//   - Tremolo: LFO amplitude modulation with selectable waveform.
//   - AutoWah: envelope-driven resonant bandpass sweep.
//   - Delay: feedback delay with damped feedback path.
//   - Reverb: six staggered comb lines with per-line damping and pre-delay.
//   - Compression, Limiter, Gate: envelope-based dynamics.
//   - EQ: three-band gain via one-pole splitters.
//   - Distortion: four waveshaping curves.
//   - PitchShift, TimeStretch: declared pass-throughs.
//
// Effects are configured through Set maps of tagged Values. Numeric values
// outside a parameter's range are clamped, never rejected; unknown names
// and mismatched variants abort the call, leaving any entries applied
// before the failure in place. Process never mutates its input and
// returns a new buffer of the same length, sample rate, and channel
// count. Buffers are processed as one interleaved stream with shared
// state; effects where that is only tolerable at narrow widths cap their
// channel count in SupportsFormat.
package effects
