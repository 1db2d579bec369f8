// ABOUTME: Public playback engine facade
// ABOUTME: Starts the supervisor and registers format-adapted sources
package engine

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mixdown-audio/mixdown-go/pkg/audio"
	"github.com/mixdown-audio/mixdown-go/pkg/audio/device"
	"github.com/mixdown-audio/mixdown-go/pkg/mixer"
)

// Default output format used until the first device negotiation completes.
const (
	DefaultSampleRate = 48000
	DefaultChannels   = 2
)

// Config holds engine configuration. The zero value selects the malgo
// runtime and the standard logrus logger.
type Config struct {
	// Runtime is the platform audio runtime. Defaults to device.NewMalgo.
	Runtime device.Runtime

	// Logger receives engine lifecycle and device logs.
	Logger *logrus.Logger
}

// Engine is the public entry point: it owns the shared mixer and the stream
// supervisor. Safe for concurrent use from any goroutine.
type Engine struct {
	mix     *mixer.Mixer
	backend *backend
	rt      device.Runtime
	log     *logrus.Logger

	closeOnce sync.Once
}

// New starts a playback engine. The supervisor begins device negotiation
// immediately in the background; New fails only if the platform runtime
// cannot be constructed.
func New(cfg Config) (*Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	rt := cfg.Runtime
	if rt == nil {
		m, err := device.NewMalgo(log)
		if err != nil {
			return nil, fmt.Errorf("failed to start platform audio runtime: %w", err)
		}
		rt = m
	}

	mix := mixer.New(audio.Format{
		SampleRate: DefaultSampleRate,
		Channels:   DefaultChannels,
		Encoding:   audio.FormatInt16,
	})

	return &Engine{
		mix:     mix,
		backend: startBackend(rt, mix, log),
		rt:      rt,
		log:     log,
	}, nil
}

// SampleRate returns the sample rate currently being output to the device.
// It may change when the device changes.
func (e *Engine) SampleRate() int {
	return e.mix.Format().SampleRate
}

// ChannelCount returns the channel count of the current output device.
// It may change when the device changes.
func (e *Engine) ChannelCount() int {
	return e.mix.Format().Channels
}

// NewSound registers a source with the mixer, adapting its sample rate and
// channel count to the output format as needed:
//
//   - matching rate and channels: the source is used directly
//   - mismatched rate: wrapped in a SampleRateConverter
//   - mismatched channels with either side mono: wrapped in a
//     ChannelConverter (after the rate converter, if both apply)
//   - mismatched channels with neither side mono: ErrChannelMismatch
//
// effect is applied to every mixed sample; nil means identity.
func (e *Engine) NewSound(source mixer.SampleSource, effect mixer.EffectFunc) (*mixer.Sound, error) {
	return e.mix.Admit(func(out audio.Format) (mixer.SampleSource, error) {
		return adaptSource(source, out)
	}, effect)
}

// Close shuts the supervisor down and releases the platform runtime. It
// blocks until the supervisor goroutine has exited; no background activity
// survives Close. Safe to call more than once.
func (e *Engine) Close() error {
	e.closeOnce.Do(func() {
		e.backend.stop()
		if err := e.rt.Close(); err != nil {
			e.log.WithError(err).Warn("platform runtime close error")
		}
	})
	return nil
}

// adaptSource wraps source so its format matches out, per the decision
// table above. Rate adaptation is applied before channel adaptation so the
// channel converter operates at the output rate.
func adaptSource(source mixer.SampleSource, out audio.Format) (mixer.SampleSource, error) {
	if source.SampleRate() != out.SampleRate {
		if source.Channels() == out.Channels {
			return mixer.NewSampleRateConverter(source, out.SampleRate), nil
		}
		if out.Channels == 1 || source.Channels() == 1 {
			return mixer.NewChannelConverter(
				mixer.NewSampleRateConverter(source, out.SampleRate),
				out.Channels,
			), nil
		}
		return nil, ErrChannelMismatch
	}

	if source.Channels() == out.Channels {
		return source, nil
	}
	if out.Channels == 1 || source.Channels() == 1 {
		return mixer.NewChannelConverter(source, out.Channels), nil
	}
	return nil, ErrChannelMismatch
}
