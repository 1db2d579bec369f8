// ABOUTME: Platform audio runtime package
// ABOUTME: Provides Runtime interface with malgo and oto implementations
// Package device abstracts the platform audio runtime.
//
// A Runtime enumerates the default playback device's supported output
// configurations and opens callback-driven streams against it. Two backends
// are provided:
//   - Malgo: miniaudio bindings; real enumeration, capability ranges and
//     device-loss notification (the default)
//   - Oto: pull-model playback; synthetic candidates, no error notification
//
// Example:
//
//	rt, err := device.NewMalgo(nil)
//	candidates, err := rt.Candidates()
//	stream, err := rt.OpenStream(cfg, fill, onError)
package device
