// ABOUTME: Tests for device negotiation and configuration selection
// ABOUTME: Verifies preference ordering, rate clamping and open retry
package engine

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixdown-audio/mixdown-go/internal/devicetest"
	"github.com/mixdown-audio/mixdown-go/pkg/audio"
	"github.com/mixdown-audio/mixdown-go/pkg/audio/device"
	"github.com/mixdown-audio/mixdown-go/pkg/mixer"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func defaultMixer() *mixer.Mixer {
	return mixer.New(audio.Format{
		SampleRate: DefaultSampleRate,
		Channels:   DefaultChannels,
		Encoding:   audio.FormatInt16,
	})
}

func discrete(rate, channels int, enc audio.SampleFormat) device.Candidate {
	return device.Candidate{
		MinSampleRate: rate,
		MaxSampleRate: rate,
		Channels:      channels,
		Encoding:      enc,
	}
}

func noError(error) {}

func TestNegotiateSelectsPreferredConfiguration(t *testing.T) {
	rt := devicetest.New(
		discrete(44100, 1, audio.FormatInt16),
		discrete(48000, 2, audio.FormatFloat32),
		discrete(48000, 1, audio.FormatInt16),
	)
	mix := defaultMixer()

	stream, err := negotiate(rt, mix, testLogger(), noError)
	require.NoError(t, err)

	want := device.StreamConfig{SampleRate: 48000, Channels: 2, Encoding: audio.FormatFloat32}
	assert.Equal(t, want, stream.(*devicetest.Stream).Config)

	// The winner is tried first.
	attempts := rt.Attempts()
	require.NotEmpty(t, attempts)
	assert.Equal(t, want, attempts[0])
}

func TestNegotiateSetsFormatBeforeOpen(t *testing.T) {
	rt := devicetest.New(discrete(44100, 1, audio.FormatFloat32))
	mix := defaultMixer()

	stream, err := negotiate(rt, mix, testLogger(), noError)
	require.NoError(t, err)

	cfg := stream.(*devicetest.Stream).Config
	assert.Equal(t, cfg.Format(), mix.Format())
}

func TestNegotiateRetriesNextCandidate(t *testing.T) {
	rt := devicetest.New(
		discrete(48000, 2, audio.FormatInt16),
		discrete(44100, 2, audio.FormatInt16),
	)
	rt.RejectOpens(func(cfg device.StreamConfig) bool {
		return cfg.SampleRate == 48000
	})
	mix := defaultMixer()

	stream, err := negotiate(rt, mix, testLogger(), noError)
	require.NoError(t, err)

	attempts := rt.Attempts()
	require.Len(t, attempts, 2)
	assert.Equal(t, 48000, attempts[0].SampleRate)
	assert.Equal(t, 44100, stream.(*devicetest.Stream).Config.SampleRate)

	// The format tracks the configuration that actually opened.
	assert.Equal(t, 44100, mix.Format().SampleRate)
}

func TestNegotiateExhaustionFails(t *testing.T) {
	rt := devicetest.New(
		discrete(48000, 2, audio.FormatInt16),
		discrete(44100, 2, audio.FormatInt16),
		discrete(22050, 1, audio.FormatFloat32),
	)
	rt.RejectOpens(func(device.StreamConfig) bool { return true })

	_, err := negotiate(rt, defaultMixer(), testLogger(), noError)
	assert.ErrorIs(t, err, ErrNoSupportedConfig)

	// Every candidate is tried exactly once.
	assert.Len(t, rt.Attempts(), 3)
}

func TestNegotiateCandidatesFailure(t *testing.T) {
	rt := devicetest.New()
	rt.SetCandidatesErr(device.ErrNoDevice)

	_, err := negotiate(rt, defaultMixer(), testLogger(), noError)
	assert.ErrorIs(t, err, device.ErrNoDevice)
}

func TestClampRate(t *testing.T) {
	cases := []struct {
		min, max, want int
	}{
		{8000, 192000, 48000}, // wide range prefers 48000
		{30000, 45000, 44100}, // contains 44100 but not 48000
		{8000, 22050, 22050},  // neither: use the range maximum
		{96000, 192000, 192000},
	}

	for _, tc := range cases {
		c := device.Candidate{MinSampleRate: tc.min, MaxSampleRate: tc.max}
		assert.Equal(t, tc.want, clampRate(c), "range %d..%d", tc.min, tc.max)
	}
}

func TestPreferKeyOrdering(t *testing.T) {
	cfg := func(rate, channels int, enc audio.SampleFormat) device.StreamConfig {
		return device.StreamConfig{SampleRate: rate, Channels: channels, Encoding: enc}
	}

	// 48000 beats 44100 regardless of the rest.
	assert.True(t, preferKey(cfg(44100, 2, audio.FormatInt16)).less(preferKey(cfg(48000, 6, audio.FormatFloat32))))

	// At equal rates, stereo beats mono.
	assert.True(t, preferKey(cfg(48000, 1, audio.FormatInt16)).less(preferKey(cfg(48000, 2, audio.FormatFloat32))))

	// At equal rate and channels, int16 is preferred.
	assert.True(t, preferKey(cfg(48000, 2, audio.FormatFloat32)).less(preferKey(cfg(48000, 2, audio.FormatInt16))))

	// Raw rate is the final tie-break, higher preferred.
	assert.True(t, preferKey(cfg(88200, 2, audio.FormatInt16)).less(preferKey(cfg(96000, 2, audio.FormatInt16))))
}
