// ABOUTME: One-shot PCM buffer source bridging the go-audio ecosystem
// ABOUTME: Plays go-audio Int/Float buffers through the mixer once
package sources

import (
	"errors"
	"math"

	goaudio "github.com/go-audio/audio"
)

var (
	// ErrNilBuffer is returned when the buffer or its format is missing.
	ErrNilBuffer = errors.New("nil audio buffer")

	// ErrEmptyBuffer is returned when the buffer holds no samples.
	ErrEmptyBuffer = errors.New("empty audio buffer")
)

// Buffer is a one-shot source over in-memory PCM. It ends when the data is
// spent.
type Buffer struct {
	sampleRate int
	channels   int
	data       []float32
	pos        int
}

// FromIntBuffer creates a Buffer from a go-audio integer PCM buffer. The
// buffer's SourceBitDepth determines normalization; a zero bit depth is
// treated as 16-bit.
func FromIntBuffer(buf *goaudio.IntBuffer) (*Buffer, error) {
	if buf == nil || buf.Format == nil {
		return nil, ErrNilBuffer
	}
	if len(buf.Data) == 0 {
		return nil, ErrEmptyBuffer
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := 1.0 / math.Pow(2, float64(bitDepth-1))

	data := make([]float32, len(buf.Data))
	for i, s := range buf.Data {
		data[i] = float32(float64(s) * scale)
	}

	return &Buffer{
		sampleRate: buf.Format.SampleRate,
		channels:   buf.Format.NumChannels,
		data:       data,
	}, nil
}

// FromFloatBuffer creates a Buffer from a go-audio float PCM buffer, whose
// samples are already normalized.
func FromFloatBuffer(buf *goaudio.FloatBuffer) (*Buffer, error) {
	if buf == nil || buf.Format == nil {
		return nil, ErrNilBuffer
	}
	if len(buf.Data) == 0 {
		return nil, ErrEmptyBuffer
	}

	data := make([]float32, len(buf.Data))
	for i, s := range buf.Data {
		data[i] = float32(s)
	}

	return &Buffer{
		sampleRate: buf.Format.SampleRate,
		channels:   buf.Format.NumChannels,
		data:       data,
	}, nil
}

// SampleRate returns the buffer's sample rate.
func (b *Buffer) SampleRate() int { return b.sampleRate }

// Channels returns the buffer's channel count.
func (b *Buffer) Channels() int { return b.channels }

// ReadSamples copies remaining buffer data into dst. Returns a short read
// at the end of the data.
func (b *Buffer) ReadSamples(dst []float32) int {
	n := copy(dst, b.data[b.pos:])
	b.pos += n
	return n
}
