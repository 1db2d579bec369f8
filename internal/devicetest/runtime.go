// ABOUTME: Scriptable fake platform runtime for engine tests
// ABOUTME: Records opened configs and lets tests inject device errors
package devicetest

import (
	"errors"
	"sync"

	"github.com/mixdown-audio/mixdown-go/pkg/audio/device"
)

// ErrOpenRejected is returned by scripted open failures.
var ErrOpenRejected = errors.New("open rejected by test script")

// Runtime is a fake device.Runtime. Tests script its candidate list and
// open behavior, observe opened streams on the Opens channel, and drive
// data/error callbacks by hand.
type Runtime struct {
	mu            sync.Mutex
	candidates    []device.Candidate
	candidatesErr error
	reject        func(cfg device.StreamConfig) bool
	attempts      []device.StreamConfig
	streams       []*Stream
	closed        bool

	// Opens receives every successfully opened stream.
	Opens chan *Stream
}

// New creates a fake runtime advertising the given candidates.
func New(candidates ...device.Candidate) *Runtime {
	return &Runtime{
		candidates: candidates,
		Opens:      make(chan *Stream, 16),
	}
}

// SetCandidatesErr makes Candidates fail with err.
func (r *Runtime) SetCandidatesErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.candidatesErr = err
}

// RejectOpens makes OpenStream fail for every config matched by reject.
// A nil reject accepts everything again.
func (r *Runtime) RejectOpens(reject func(cfg device.StreamConfig) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reject = reject
}

// Candidates returns the scripted candidate list.
func (r *Runtime) Candidates() ([]device.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.candidatesErr != nil {
		return nil, r.candidatesErr
	}
	out := make([]device.Candidate, len(r.candidates))
	copy(out, r.candidates)
	return out, nil
}

// OpenStream records the attempt and returns a controllable fake stream.
func (r *Runtime) OpenStream(cfg device.StreamConfig, data device.DataFunc, onError device.ErrorFunc) (device.Stream, error) {
	r.mu.Lock()
	r.attempts = append(r.attempts, cfg)
	reject := r.reject
	r.mu.Unlock()

	if reject != nil && reject(cfg) {
		return nil, ErrOpenRejected
	}

	s := &Stream{Config: cfg, data: data, onError: onError}

	r.mu.Lock()
	r.streams = append(r.streams, s)
	r.mu.Unlock()

	r.Opens <- s
	return s, nil
}

// Close marks the runtime closed.
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// Closed reports whether Close was called.
func (r *Runtime) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Attempts returns every open attempt in order, rejected ones included.
func (r *Runtime) Attempts() []device.StreamConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]device.StreamConfig, len(r.attempts))
	copy(out, r.attempts)
	return out
}

// OpenCount returns how many streams were opened.
func (r *Runtime) OpenCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.streams)
}

// Streams returns all opened streams in order.
func (r *Runtime) Streams() []*Stream {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Stream, len(r.streams))
	copy(out, r.streams)
	return out
}

// Stream is a fake open stream. Tests drive its callbacks directly.
type Stream struct {
	Config device.StreamConfig

	mu      sync.Mutex
	data    device.DataFunc
	onError device.ErrorFunc
	closed  bool
}

// Pump invokes the data callback as the hardware would on a buffer tick.
func (s *Stream) Pump(dst []byte, frames int) {
	s.data(dst, frames)
}

// FireError invokes the stream's error handler, as a device fault would.
func (s *Stream) FireError(err error) {
	s.onError(err)
}

// Close marks the stream closed.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// IsClosed reports whether Close was called.
func (s *Stream) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
