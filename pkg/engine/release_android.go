//go:build android

// ABOUTME: Stream release policy for Android
// ABOUTME: Leaks the stream handle; synchronous close crashes in oboe
package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/mixdown-audio/mixdown-go/pkg/audio/device"
)

// releaseStream intentionally leaks the stream handle. Closing a stream
// from the supervisor's own goroutine is unsafe on Android (oboe aborts,
// see https://github.com/katyo/oboe-rs/issues/41), so the handle is never
// released.
func releaseStream(s device.Stream, log *logrus.Logger) {
	log.Debug("leaking stream handle (android release policy)")
}
