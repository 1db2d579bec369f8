// ABOUTME: Shared mixing engine pulling from registered sample sources
// ABOUTME: Single mutex serializes control, supervisor and callback access
package mixer

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mixdown-audio/mixdown-go/pkg/audio"
)

// EffectFunc transforms one normalized sample. A nil effect is identity.
type EffectFunc func(sample float32) float32

// SampleSource produces normalized interleaved float32 samples in [-1, 1].
//
// ReadSamples fills dst and returns the number of samples written. A short
// read means the source is exhausted; the mixer removes it from the mix.
type SampleSource interface {
	SampleRate() int
	Channels() int
	ReadSamples(dst []float32) int
}

type playing struct {
	source SampleSource
	effect EffectFunc
	volume float32
	paused bool
}

// Mixer holds the active output format and the set of playing sources.
//
// One instance is shared between the control context, the stream supervisor
// and the real-time callback; its mutex is the sole serialization point
// between them. The callback holds it only for the duration of one pull, so
// control-side operations should keep their critical sections short.
type Mixer struct {
	mu      sync.Mutex
	format  audio.Format
	sources map[uuid.UUID]*playing
	scratch []float32
}

// New creates a mixer with the given initial output format.
func New(format audio.Format) *Mixer {
	return &Mixer{
		format:  format,
		sources: make(map[uuid.UUID]*playing),
	}
}

// Format returns the active output format. It may change across a device
// recreation.
func (m *Mixer) Format() audio.Format {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.format
}

// SetFormat installs a new output format. Called by the stream supervisor
// during device negotiation, before the stream delivers callbacks.
func (m *Mixer) SetFormat(format audio.Format) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.format = format
}

// Admit registers the source produced by adapt, which is invoked with the
// live output format while the mixer lock is held. This closes the race
// between source adaptation and a concurrent device recreation changing the
// format.
func (m *Mixer) Admit(adapt func(audio.Format) (SampleSource, error), effect EffectFunc) (*Sound, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	source, err := adapt(m.format)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	m.sources[id] = &playing{source: source, effect: effect, volume: 1.0}

	return &Sound{mixer: m, id: id}, nil
}

// Add registers a source that already matches the output format.
func (m *Mixer) Add(source SampleSource, effect EffectFunc) *Sound {
	sound, _ := m.Admit(func(audio.Format) (SampleSource, error) {
		return source, nil
	}, effect)
	return sound
}

// Len returns the number of sources currently in the mix.
func (m *Mixer) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sources)
}

// ReadSamples mixes all playing sources into dst. This is the real-time
// pull: it reuses one scratch buffer and allocates only when the requested
// block grows. Exhausted sources are removed.
func (m *Mixer) ReadSamples(dst []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range dst {
		dst[i] = 0
	}

	if cap(m.scratch) < len(dst) {
		m.scratch = make([]float32, len(dst))
	}
	scratch := m.scratch[:len(dst)]

	for id, p := range m.sources {
		if p.paused {
			continue
		}

		n := p.source.ReadSamples(scratch)

		if p.effect != nil {
			for i := 0; i < n; i++ {
				scratch[i] = p.effect(scratch[i])
			}
		}

		for i := 0; i < n; i++ {
			dst[i] += scratch[i] * p.volume
		}

		if n < len(scratch) {
			delete(m.sources, id)
		}
	}
}

// remove drops a source by id.
func (m *Mixer) remove(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sources, id)
}

// setVolume adjusts a source's gain; missing ids are ignored.
func (m *Mixer) setVolume(id uuid.UUID, volume float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.sources[id]; ok {
		p.volume = volume
	}
}

// setPaused pauses or resumes a source; missing ids are ignored.
func (m *Mixer) setPaused(id uuid.UUID, paused bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.sources[id]; ok {
		p.paused = paused
	}
}

// contains reports whether a source is still in the mix.
func (m *Mixer) contains(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sources[id]
	return ok
}
