// ABOUTME: Error values surfaced by the playback engine
// ABOUTME: Negotiation exhaustion and source registration failures
package engine

import "errors"

var (
	// ErrNoSupportedConfig is reported when every candidate output
	// configuration fails to open. Terminal for the device attempt.
	ErrNoSupportedConfig = errors.New("no supported output configuration")

	// ErrChannelMismatch is returned by NewSound when the source's channel
	// count differs from the output and neither side is mono.
	ErrChannelMismatch = errors.New("source channel count does not match the output, and neither is mono")
)
