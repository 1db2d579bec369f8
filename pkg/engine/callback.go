// ABOUTME: Real-time callback adapter between mixer and hardware buffer
// ABOUTME: Converts normalized float samples to the stream's native encoding
package engine

import (
	"encoding/binary"
	"math"

	"github.com/mixdown-audio/mixdown-go/pkg/audio"
	"github.com/mixdown-audio/mixdown-go/pkg/audio/device"
	"github.com/mixdown-audio/mixdown-go/pkg/mixer"
)

// streamWriter fills hardware buffers from the mixer. One instance is bound
// per opened stream; its scratch buffer grows once to the callback's block
// size and is reused on every tick, so the steady state does not allocate.
type streamWriter struct {
	mix     *mixer.Mixer
	cfg     device.StreamConfig
	scratch []float32
}

func newStreamWriter(mix *mixer.Mixer, cfg device.StreamConfig) *streamWriter {
	return &streamWriter{mix: mix, cfg: cfg}
}

// fill is the DataFunc installed into the stream. It pulls mixed samples
// (the only point where the real-time context takes the mixer lock) and
// writes them in the stream's native encoding, little-endian.
func (w *streamWriter) fill(dst []byte, frames int) {
	n := frames * w.cfg.Channels
	if cap(w.scratch) < n {
		w.scratch = make([]float32, n)
	}
	buf := w.scratch[:n]

	w.mix.ReadSamples(buf)

	switch w.cfg.Encoding {
	case audio.FormatInt16:
		for i, s := range buf {
			binary.LittleEndian.PutUint16(dst[i*2:], uint16(audio.Int16FromFloat(s)))
		}
	case audio.FormatUint16:
		for i, s := range buf {
			binary.LittleEndian.PutUint16(dst[i*2:], audio.Uint16FromFloat(s))
		}
	case audio.FormatFloat32:
		for i, s := range buf {
			binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(audio.ClampFloat(s)))
		}
	}
}
