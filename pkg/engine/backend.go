// ABOUTME: Stream supervisor goroutine owning the output stream lifecycle
// ABOUTME: Rebuilds the stream on device errors, joins cleanly on shutdown
package engine

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/mixdown-audio/mixdown-go/pkg/audio/device"
	"github.com/mixdown-audio/mixdown-go/pkg/mixer"
)

type streamEvent int

const (
	eventRecreate streamEvent = iota
	eventShutdown
)

// backend is the stream supervisor. Its goroutine is the exclusive owner of
// the open stream handle and the only writer of the mixer's output format.
type backend struct {
	rt  device.Runtime
	mix *mixer.Mixer
	log *logrus.Logger

	events chan streamEvent
	done   chan struct{}
}

// startBackend spawns the supervisor goroutine.
func startBackend(rt device.Runtime, mix *mixer.Mixer, log *logrus.Logger) *backend {
	b := &backend{
		rt:     rt,
		mix:    mix,
		log:    log,
		events: make(chan streamEvent, 4),
		done:   make(chan struct{}),
	}
	go b.run()
	return b
}

func (b *backend) run() {
	defer close(b.done)

	b.log.Debug("stream supervisor starting")

	// Trigger the initial device acquisition.
	b.events <- eventRecreate

	var stream device.Stream
	for event := range b.events {
		switch event {
		case eventRecreate:
			b.log.Debug("recreating output stream")

			if stream != nil {
				releaseStream(stream, b.log)
				stream = nil
			}

			// One latch per bound handler: the device may report a single
			// failure more than once (seen on Android, once before the
			// stream closes and once after), and only the first report may
			// trigger a recreate.
			var handled atomic.Bool
			onError := func(err error) {
				b.log.WithError(err).Error("stream error")
				if handled.CompareAndSwap(false, true) {
					b.requestRecreate()
				}
			}

			s, err := negotiate(b.rt, b.mix, b.log, onError)
			if err != nil {
				b.log.WithError(err).Error("output stream negotiation failed")
				return
			}
			stream = s

		case eventShutdown:
			if stream != nil {
				releaseStream(stream, b.log)
			}
			b.log.Debug("stream supervisor stopping")
			return
		}
	}
}

// requestRecreate enqueues a recreate without blocking the caller, which
// runs on the platform runtime's goroutine. The error-handler latch bounds
// pending recreates, so a full buffer means one is already queued.
func (b *backend) requestRecreate() {
	select {
	case b.events <- eventRecreate:
	default:
	}
}

// stop requests shutdown and joins the supervisor goroutine. The join has
// no timeout: prompt termination on shutdown is part of the supervisor's
// contract, and every state it can occupy reaches the shutdown check in
// bounded time.
func (b *backend) stop() {
	select {
	case b.events <- eventShutdown:
	case <-b.done:
	}
	<-b.done
}
