// ABOUTME: Tests for ready-made sample sources
// ABOUTME: Verifies sine generation, silence exhaustion and buffer bridging
package sources

import (
	"math"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixdown-audio/mixdown-go/pkg/mixer"
)

func TestSourcesImplementSampleSource(t *testing.T) {
	var _ mixer.SampleSource = (*Sine)(nil)
	var _ mixer.SampleSource = (*Silence)(nil)
	var _ mixer.SampleSource = (*Buffer)(nil)
}

func TestSineGeneratesTone(t *testing.T) {
	s := NewSine(440.0, 0.5, 48000, 2)

	assert.Equal(t, 48000, s.SampleRate())
	assert.Equal(t, 2, s.Channels())

	dst := make([]float32, 96)
	n := s.ReadSamples(dst)
	require.Equal(t, 96, n)

	// Both channels carry the same value.
	for i := 0; i < n; i += 2 {
		assert.Equal(t, dst[i], dst[i+1])
	}

	// Second frame matches the analytic sine.
	want := 0.5 * math.Sin(2*math.Pi*440.0/48000.0)
	assert.InDelta(t, want, float64(dst[2]), 1e-6)
}

func TestSineIsContinuousAcrossReads(t *testing.T) {
	a := NewSine(440.0, 1.0, 48000, 1)
	b := NewSine(440.0, 1.0, 48000, 1)

	whole := make([]float32, 64)
	require.Equal(t, 64, a.ReadSamples(whole))

	split := make([]float32, 64)
	require.Equal(t, 32, b.ReadSamples(split[:32]))
	require.Equal(t, 32, b.ReadSamples(split[32:]))

	for i := range whole {
		assert.InDelta(t, whole[i], split[i], 1e-6)
	}
}

func TestSilenceEnds(t *testing.T) {
	s := NewSilence(48000, 2, 4)

	dst := make([]float32, 16)
	n := s.ReadSamples(dst)
	assert.Equal(t, 8, n)

	n = s.ReadSamples(dst)
	assert.Zero(t, n)
}

func TestFromIntBuffer(t *testing.T) {
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: 44100},
		Data:           []int{16384, -16384, 32767, 0},
		SourceBitDepth: 16,
	}

	src, err := FromIntBuffer(buf)
	require.NoError(t, err)

	assert.Equal(t, 44100, src.SampleRate())
	assert.Equal(t, 2, src.Channels())

	dst := make([]float32, 4)
	n := src.ReadSamples(dst)
	require.Equal(t, 4, n)

	assert.InDelta(t, 0.5, dst[0], 1e-4)
	assert.InDelta(t, -0.5, dst[1], 1e-4)
	assert.InDelta(t, 1.0, dst[2], 1e-4)
	assert.InDelta(t, 0.0, dst[3], 1e-4)

	// One-shot: the buffer ends after its data.
	assert.Zero(t, src.ReadSamples(dst))
}

func TestFromFloatBuffer(t *testing.T) {
	buf := &goaudio.FloatBuffer{
		Format: &goaudio.Format{NumChannels: 1, SampleRate: 22050},
		Data:   []float64{0.1, -0.2, 0.3},
	}

	src, err := FromFloatBuffer(buf)
	require.NoError(t, err)

	dst := make([]float32, 8)
	n := src.ReadSamples(dst)
	require.Equal(t, 3, n)
	assert.InDelta(t, 0.1, dst[0], 1e-6)
	assert.InDelta(t, -0.2, dst[1], 1e-6)
	assert.InDelta(t, 0.3, dst[2], 1e-6)
}

func TestBufferRejectsBadInput(t *testing.T) {
	_, err := FromIntBuffer(nil)
	assert.ErrorIs(t, err, ErrNilBuffer)

	_, err = FromIntBuffer(&goaudio.IntBuffer{Format: &goaudio.Format{NumChannels: 1, SampleRate: 48000}})
	assert.ErrorIs(t, err, ErrEmptyBuffer)

	_, err = FromFloatBuffer(&goaudio.FloatBuffer{Data: []float64{0.5}})
	assert.ErrorIs(t, err, ErrNilBuffer)
}
