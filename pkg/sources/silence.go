// ABOUTME: Finite silence sample source
// ABOUTME: Emits zero samples for a fixed number of frames then ends
package sources

// Silence emits zeros for a fixed number of frames, then ends. Useful for
// padding and for exercising source-exhaustion paths in tests.
type Silence struct {
	sampleRate int
	channels   int
	remaining  int // frames
}

// NewSilence creates a silence source lasting the given number of frames.
func NewSilence(sampleRate, channels, frames int) *Silence {
	return &Silence{
		sampleRate: sampleRate,
		channels:   channels,
		remaining:  frames,
	}
}

// SampleRate returns the source's sample rate.
func (s *Silence) SampleRate() int { return s.sampleRate }

// Channels returns the source's channel count.
func (s *Silence) Channels() int { return s.channels }

// ReadSamples fills dst with zeros until the duration is spent.
func (s *Silence) ReadSamples(dst []float32) int {
	frames := len(dst) / s.channels
	if frames > s.remaining {
		frames = s.remaining
	}

	n := frames * s.channels
	for i := 0; i < n; i++ {
		dst[i] = 0
	}

	s.remaining -= frames
	return n
}
