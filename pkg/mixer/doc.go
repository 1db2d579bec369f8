// ABOUTME: Mixing engine package shared between control and callback contexts
// ABOUTME: Provides Mixer, Sound handles and format-adaptation converters
// Package mixer provides the shared mixing engine of the mixdown library.
//
// A Mixer holds the active output format and a set of playing sources, each
// with an optional per-sample effect. The real-time callback pulls mixed
// samples with ReadSamples while the control side adds sources and the
// stream supervisor rewrites the format; all three serialize on the mixer's
// internal mutex.
//
// SampleRateConverter and ChannelConverter adapt sources whose native format
// differs from the output:
//
//	src := mixer.NewChannelConverter(
//	    mixer.NewSampleRateConverter(monoSource, 48000), 2)
//	sound := m.Add(src, nil)
package mixer
