// ABOUTME: Playback engine package with device supervision
// ABOUTME: Provides Engine facade, stream supervisor and device negotiation
// Package engine provides programmatic playback of multiple simultaneous
// audio sources mixed into one hardware output stream.
//
// A background supervisor owns the output stream: it negotiates a device
// configuration, installs the real-time callback, and rebuilds the stream
// when the device reports an error. Sources whose sample rate or channel
// count differs from the active output format are adapted automatically at
// registration.
//
// Example:
//
//	eng, err := engine.New(engine.Config{})
//	defer eng.Close()
//
//	tone := sources.NewSine(440.0, 0.5, eng.SampleRate(), eng.ChannelCount())
//	sound, err := eng.NewSound(tone, nil)
//	sound.SetVolume(0.8)
//
// Device-level failures are not surfaced to callers: open failures are
// retried with the next candidate configuration, and when every candidate
// fails the supervisor stops and playback goes silent.
package engine
