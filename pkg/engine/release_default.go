//go:build !android

// ABOUTME: Stream release policy for platforms with safe synchronous close
// ABOUTME: Default behavior closes the stream handle on teardown
package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/mixdown-audio/mixdown-go/pkg/audio/device"
)

// releaseStream closes the stream handle synchronously.
func releaseStream(s device.Stream, log *logrus.Logger) {
	if err := s.Close(); err != nil {
		log.WithError(err).Warn("stream close error")
	}
}
