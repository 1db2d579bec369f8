// ABOUTME: Ready-made sample sources for the mixer
// ABOUTME: Provides sine tone, silence and go-audio buffer sources
// Package sources provides ready-made mixer.SampleSource implementations.
//
//   - Sine: an endless test tone
//   - Silence: a finite run of zero samples
//   - Buffer: one-shot playback of go-audio PCM buffers
//
// Example:
//
//	tone := sources.NewSine(440.0, 0.5, 48000, 2)
//	sound, err := eng.NewSound(tone, nil)
package sources
