// ABOUTME: Malgo-based platform runtime implementation
// ABOUTME: Uses miniaudio via malgo for device enumeration and callback streams
package device

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gen2brain/malgo"
	"github.com/sirupsen/logrus"

	"github.com/mixdown-audio/mixdown-go/pkg/audio"
)

// Rates assumed when a driver reports 0 ("any rate") for a native format.
const (
	anyRateMin = 8000
	anyRateMax = 192000
)

// Malgo is a Runtime backed by the miniaudio library.
type Malgo struct {
	ctx *malgo.AllocatedContext
	log *logrus.Logger
}

// NewMalgo initializes a miniaudio context for the default playback device.
func NewMalgo(logger *logrus.Logger) (*Malgo, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		logger.WithField("backend", "malgo").Trace(message)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize malgo context: %w", err)
	}

	return &Malgo{ctx: ctx, log: logger}, nil
}

// Candidates returns the default playback device's native data formats.
func (m *Malgo) Candidates() ([]Candidate, error) {
	infos, err := m.ctx.Devices(malgo.Playback)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapabilityQuery, err)
	}
	if len(infos) == 0 {
		return nil, ErrNoDevice
	}

	// Prefer the device the OS marks as default.
	chosen := infos[0]
	for _, info := range infos {
		if info.IsDefault != 0 {
			chosen = info
			break
		}
	}

	full, err := m.ctx.DeviceInfo(malgo.Playback, chosen.ID, malgo.Shared)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapabilityQuery, err)
	}

	var candidates []Candidate
	for i := 0; i < int(full.FormatCount) && i < len(full.Formats); i++ {
		df := full.Formats[i]

		encoding, ok := encodingFromMalgo(df.Format)
		if !ok {
			m.log.WithFields(logrus.Fields{
				"format":   df.Format,
				"channels": df.Channels,
			}).Trace("skipping unsupported native format")
			continue
		}

		minRate := int(df.SampleRate)
		maxRate := minRate
		if minRate == 0 {
			minRate, maxRate = anyRateMin, anyRateMax
		}

		channels := int(df.Channels)
		if channels == 0 {
			channels = 2
		}

		candidates = append(candidates, Candidate{
			MinSampleRate: minRate,
			MaxSampleRate: maxRate,
			Channels:      channels,
			Encoding:      encoding,
		})
	}

	return candidates, nil
}

// OpenStream opens and starts a playback stream on the default device.
func (m *Malgo) OpenStream(cfg StreamConfig, data DataFunc, onError ErrorFunc) (Stream, error) {
	format, err := malgoFormat(cfg.Encoding)
	if err != nil {
		return nil, err
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = format
	deviceConfig.Playback.Channels = uint32(cfg.Channels)
	deviceConfig.SampleRate = uint32(cfg.SampleRate)
	deviceConfig.Alsa.NoMMap = 1

	stream := &malgoStream{log: m.log}

	callbacks := malgo.DeviceCallbacks{
		Data: func(pOutput, pInput []byte, frameCount uint32) {
			data(pOutput, int(frameCount))
		},
		Stop: func() {
			// A stop we did not request means the device died under us.
			if !stream.closing.Load() {
				onError(errors.New("playback device stopped unexpectedly"))
			}
		},
	}

	dev, err := malgo.InitDevice(m.ctx.Context, deviceConfig, callbacks)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize playback device: %w", err)
	}

	if err := dev.Start(); err != nil {
		dev.Uninit()
		return nil, fmt.Errorf("failed to start playback device: %w", err)
	}

	stream.device = dev
	return stream, nil
}

// Close releases the miniaudio context.
func (m *Malgo) Close() error {
	if m.ctx == nil {
		return nil
	}
	if err := m.ctx.Uninit(); err != nil {
		m.log.WithError(err).Warn("malgo context uninit error")
	}
	m.ctx.Free()
	m.ctx = nil
	return nil
}

type malgoStream struct {
	device  *malgo.Device
	log     *logrus.Logger
	closing atomic.Bool
}

func (s *malgoStream) Close() error {
	s.closing.Store(true)
	if err := s.device.Stop(); err != nil {
		s.log.WithError(err).Warn("device stop error")
	}
	s.device.Uninit()
	return nil
}

func encodingFromMalgo(f malgo.FormatType) (audio.SampleFormat, bool) {
	switch f {
	case malgo.FormatS16:
		return audio.FormatInt16, true
	case malgo.FormatF32:
		return audio.FormatFloat32, true
	default:
		return 0, false
	}
}

func malgoFormat(f audio.SampleFormat) (malgo.FormatType, error) {
	switch f {
	case audio.FormatInt16:
		return malgo.FormatS16, nil
	case audio.FormatFloat32:
		return malgo.FormatF32, nil
	default:
		return malgo.FormatUnknown, fmt.Errorf("sample format %s not supported by miniaudio backend", f)
	}
}
