// ABOUTME: Oto-based platform runtime implementation
// ABOUTME: Adapts oto's pull-model player to the callback Runtime contract
package device

import (
	"fmt"

	"github.com/ebitengine/oto/v3"
	"github.com/sirupsen/logrus"

	"github.com/mixdown-audio/mixdown-go/pkg/audio"
)

// Oto is a Runtime backed by the oto library. Oto performs no device
// enumeration and accepts any reasonable rate, so candidates are synthetic
// wide ranges. It also reports no asynchronous device errors.
//
// Oto allows only one context per process; after the first successful open,
// only the configuration of that context can be opened again.
type Oto struct {
	log    *logrus.Logger
	otoCtx *oto.Context
	opened StreamConfig
}

// NewOto creates an oto-backed runtime.
func NewOto(logger *logrus.Logger) *Oto {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Oto{log: logger}
}

// Candidates returns the configurations this backend can open. Before the
// process-wide oto context exists these are wide synthetic ranges; after,
// only the bound configuration remains available.
func (o *Oto) Candidates() ([]Candidate, error) {
	if o.otoCtx != nil {
		return []Candidate{{
			MinSampleRate: o.opened.SampleRate,
			MaxSampleRate: o.opened.SampleRate,
			Channels:      o.opened.Channels,
			Encoding:      o.opened.Encoding,
		}}, nil
	}

	var candidates []Candidate
	for _, channels := range []int{1, 2} {
		for _, encoding := range []audio.SampleFormat{audio.FormatFloat32, audio.FormatInt16} {
			candidates = append(candidates, Candidate{
				MinSampleRate: anyRateMin,
				MaxSampleRate: anyRateMax,
				Channels:      channels,
				Encoding:      encoding,
			})
		}
	}
	return candidates, nil
}

// OpenStream starts an oto player whose reads pull from data.
func (o *Oto) OpenStream(cfg StreamConfig, data DataFunc, onError ErrorFunc) (Stream, error) {
	format, err := otoFormat(cfg.Encoding)
	if err != nil {
		return nil, err
	}

	if o.otoCtx != nil && cfg != o.opened {
		return nil, fmt.Errorf("oto context already bound to %s", o.opened.Format())
	}

	if o.otoCtx == nil {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   cfg.SampleRate,
			ChannelCount: cfg.Channels,
			Format:       format,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create oto context: %w", err)
		}
		<-ready

		o.otoCtx = ctx
		o.opened = cfg
	}

	player := o.otoCtx.NewPlayer(&pullReader{data: data, frameBytes: cfg.Format().BytesPerFrame()})
	player.Play()

	return &otoStream{player: player}, nil
}

// Close suspends the process-wide oto context.
func (o *Oto) Close() error {
	if o.otoCtx != nil {
		if err := o.otoCtx.Suspend(); err != nil {
			o.log.WithError(err).Warn("oto context suspend error")
		}
	}
	return nil
}

// pullReader turns oto's io.Reader pull into DataFunc invocations.
type pullReader struct {
	data       DataFunc
	frameBytes int
}

func (r *pullReader) Read(p []byte) (int, error) {
	frames := len(p) / r.frameBytes
	if frames == 0 {
		return 0, nil
	}
	n := frames * r.frameBytes
	r.data(p[:n], frames)
	return n, nil
}

type otoStream struct {
	player *oto.Player
}

func (s *otoStream) Close() error {
	if err := s.player.Close(); err != nil {
		return fmt.Errorf("failed to close oto player: %w", err)
	}
	return nil
}

func otoFormat(f audio.SampleFormat) (oto.Format, error) {
	switch f {
	case audio.FormatInt16:
		return oto.FormatSignedInt16LE, nil
	case audio.FormatFloat32:
		return oto.FormatFloat32LE, nil
	default:
		return 0, fmt.Errorf("sample format %s not supported by oto backend", f)
	}
}
