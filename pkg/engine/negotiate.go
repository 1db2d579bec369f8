// ABOUTME: Output device negotiation and configuration selection
// ABOUTME: Clamps candidate rates, orders by preference, retries opens
package engine

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/mixdown-audio/mixdown-go/pkg/audio"
	"github.com/mixdown-audio/mixdown-go/pkg/audio/device"
	"github.com/mixdown-audio/mixdown-go/pkg/mixer"
)

// negotiate opens an output stream against the best configuration the
// device supports. Candidates are clamped and ordered most-preferred last,
// then popped and tried until one opens; drivers commonly reject
// configurations they advertised, so open failure is a normal retry path.
//
// The mixer's format is set before each open attempt so the callback never
// observes a format that disagrees with the hardware buffer shape.
func negotiate(rt device.Runtime, mix *mixer.Mixer, log *logrus.Logger, onError device.ErrorFunc) (device.Stream, error) {
	candidates, err := rt.Candidates()
	if err != nil {
		return nil, err
	}

	configs := make([]device.StreamConfig, 0, len(candidates))
	for _, c := range candidates {
		configs = append(configs, device.StreamConfig{
			SampleRate: clampRate(c),
			Channels:   c.Channels,
			Encoding:   c.Encoding,
		})
	}

	sort.SliceStable(configs, func(i, j int) bool {
		return preferKey(configs[i]).less(preferKey(configs[j]))
	})

	if log.IsLevelEnabled(logrus.TraceLevel) {
		for _, cfg := range configs {
			log.WithField("config", cfg.Format().String()).Trace("candidate configuration")
		}
	}

	for len(configs) > 0 {
		cfg := configs[len(configs)-1]
		configs = configs[:len(configs)-1]

		mix.SetFormat(cfg.Format())

		writer := newStreamWriter(mix, cfg)
		stream, err := rt.OpenStream(cfg, writer.fill, onError)
		if err != nil {
			log.WithError(err).WithField("config", cfg.Format().String()).Error("failed to open stream")
			continue
		}

		log.WithField("config", cfg.Format().String()).Info("opened output stream")
		return stream, nil
	}

	return nil, ErrNoSupportedConfig
}

// clampRate picks the sample rate to request from a candidate's supported
// range: 48000 if the range contains it, else 44100, else the range maximum.
func clampRate(c device.Candidate) int {
	if c.SupportsRate(48000) {
		return 48000
	}
	if c.SupportsRate(44100) {
		return 44100
	}
	return c.MaxSampleRate
}

// prefKey is the lexicographic preference key for candidate ordering; a
// larger key is more preferred.
type prefKey [6]int

func preferKey(cfg device.StreamConfig) prefKey {
	return prefKey{
		b2i(cfg.SampleRate == 48000),
		b2i(cfg.SampleRate == 44100),
		b2i(cfg.Channels == 2),
		b2i(cfg.Channels == 1),
		b2i(cfg.Encoding == audio.FormatInt16),
		cfg.SampleRate,
	}
}

func (k prefKey) less(other prefKey) bool {
	for i := range k {
		if k[i] != other[i] {
			return k[i] < other[i]
		}
	}
	return false
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
