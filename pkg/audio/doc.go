// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, SampleFormat and sample conversion functions
// Package audio provides fundamental audio types for the mixdown library.
//
// This package defines core types used throughout the library:
//   - Format: the active output format (sample rate, channels, encoding)
//   - SampleFormat: the native sample representation of a stream
//
// It also provides utilities for converting the mixer's normalized float32
// samples to native PCM encodings:
//
//	pcm := audio.Int16FromFloat(sample)
//
// Device-facing abstractions live in the audio/device subpackage.
package audio
