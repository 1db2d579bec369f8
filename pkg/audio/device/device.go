// ABOUTME: Platform audio runtime abstraction
// ABOUTME: Defines Runtime, Candidate and Stream consumed by the engine
package device

import (
	"errors"

	"github.com/mixdown-audio/mixdown-go/pkg/audio"
)

var (
	// ErrNoDevice is returned when the host has no playback device.
	ErrNoDevice = errors.New("no output device available")

	// ErrCapabilityQuery is returned when the device's supported
	// configurations cannot be read.
	ErrCapabilityQuery = errors.New("error while querying output configurations")
)

// Candidate is one supported output configuration of a playback device,
// expressed as a sample-rate range. Backends that report discrete rates use
// MinSampleRate == MaxSampleRate.
type Candidate struct {
	MinSampleRate int
	MaxSampleRate int
	Channels      int
	Encoding      audio.SampleFormat
}

// SupportsRate reports whether the candidate's range contains rate.
func (c Candidate) SupportsRate(rate int) bool {
	return c.MinSampleRate <= rate && rate <= c.MaxSampleRate
}

// StreamConfig is a concrete configuration to open a stream with.
type StreamConfig struct {
	SampleRate int
	Channels   int
	Encoding   audio.SampleFormat
}

// Format returns the stream configuration as an audio.Format.
func (c StreamConfig) Format() audio.Format {
	return audio.Format{
		SampleRate: c.SampleRate,
		Channels:   c.Channels,
		Encoding:   c.Encoding,
	}
}

// DataFunc fills dst with interleaved samples in the stream's native
// encoding. frames is the number of interleaved frames requested; dst is
// sized frames * channels * bytes-per-sample. Invoked on the platform
// runtime's own goroutine.
type DataFunc func(dst []byte, frames int)

// ErrorFunc receives asynchronous device failures (disconnects, driver
// faults). It may be invoked more than once for a single failure.
type ErrorFunc func(err error)

// Stream is an open, running output stream.
type Stream interface {
	// Close stops the stream and releases the device handle.
	Close() error
}

// Runtime is the platform audio runtime: it enumerates the default playback
// device's supported configurations and opens callback-driven output
// streams against it.
type Runtime interface {
	// Candidates returns the supported output configurations of the
	// default playback device.
	Candidates() ([]Candidate, error)

	// OpenStream opens and starts an output stream. data is invoked on
	// every buffer tick; onError on asynchronous device failure. Open
	// failures are normal for configurations a driver advertised but
	// rejects.
	OpenStream(cfg StreamConfig, data DataFunc, onError ErrorFunc) (Stream, error)

	// Close releases the runtime.
	Close() error
}
