// ABOUTME: Output format model for the playback engine
// ABOUTME: Defines SampleFormat encodings and the Format triple
package audio

import "fmt"

// SampleFormat identifies the native sample representation of an output
// stream.
type SampleFormat int

const (
	// FormatInt16 is 16-bit signed integer PCM.
	FormatInt16 SampleFormat = iota

	// FormatUint16 is 16-bit unsigned integer PCM (zero point at 32768).
	FormatUint16

	// FormatFloat32 is 32-bit IEEE float PCM in [-1, 1].
	FormatFloat32
)

// String returns the human-readable name of the sample format.
func (f SampleFormat) String() string {
	switch f {
	case FormatInt16:
		return "int16"
	case FormatUint16:
		return "uint16"
	case FormatFloat32:
		return "float32"
	default:
		return fmt.Sprintf("unknown(%d)", int(f))
	}
}

// BytesPerSample returns the size of one sample in this format.
func (f SampleFormat) BytesPerSample() int {
	switch f {
	case FormatInt16, FormatUint16:
		return 2
	case FormatFloat32:
		return 4
	default:
		return 0
	}
}

// Format describes the active output format. Exactly one Format is active
// system-wide; it is owned by the mixer and rewritten only during device
// (re)negotiation.
type Format struct {
	SampleRate int
	Channels   int
	Encoding   SampleFormat
}

// BytesPerFrame returns the size of one interleaved frame.
func (f Format) BytesPerFrame() int {
	return f.Channels * f.Encoding.BytesPerSample()
}

// String returns a compact description like "48000Hz 2ch float32".
func (f Format) String() string {
	return fmt.Sprintf("%dHz %dch %s", f.SampleRate, f.Channels, f.Encoding)
}
