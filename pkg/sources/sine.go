// ABOUTME: Sine wave sample source
// ABOUTME: Generates an endless tone for playback and testing
package sources

import "math"

// Sine is an endless sine tone.
type Sine struct {
	frequency   float64
	amplitude   float64
	sampleRate  int
	channels    int
	sampleIndex uint64
}

// NewSine creates a sine tone source. Amplitude is normalized gain in (0, 1].
func NewSine(frequency float64, amplitude float64, sampleRate, channels int) *Sine {
	return &Sine{
		frequency:  frequency,
		amplitude:  amplitude,
		sampleRate: sampleRate,
		channels:   channels,
	}
}

// SampleRate returns the tone's sample rate.
func (s *Sine) SampleRate() int { return s.sampleRate }

// Channels returns the tone's channel count.
func (s *Sine) Channels() int { return s.channels }

// ReadSamples fills dst with the tone, duplicated across channels. Never
// returns a short read; the tone does not end.
func (s *Sine) ReadSamples(dst []float32) int {
	frames := len(dst) / s.channels

	for i := 0; i < frames; i++ {
		t := float64(s.sampleIndex+uint64(i)) / float64(s.sampleRate)
		sample := float32(math.Sin(2*math.Pi*s.frequency*t) * s.amplitude)

		base := i * s.channels
		for ch := 0; ch < s.channels; ch++ {
			dst[base+ch] = sample
		}
	}

	s.sampleIndex += uint64(frames)
	return frames * s.channels
}
