// ABOUTME: Sound handle referencing a registered source by id
// ABOUTME: Forwards stop/volume/pause operations to the shared mixer
package mixer

import "github.com/google/uuid"

// Sound is a handle to a source registered with a Mixer. It forwards
// operations to the mixer by id and owns no playback state itself; dropping
// the handle does not stop playback.
type Sound struct {
	mixer *Mixer
	id    uuid.UUID
}

// ID returns the source's identifier.
func (s *Sound) ID() uuid.UUID {
	return s.id
}

// Stop removes the source from the mix. Safe to call more than once.
func (s *Sound) Stop() {
	s.mixer.remove(s.id)
}

// SetVolume sets the source's gain. 1.0 is unity; values above 1 amplify.
func (s *Sound) SetVolume(volume float32) {
	s.mixer.setVolume(s.id, volume)
}

// SetPaused pauses or resumes the source without removing it.
func (s *Sound) SetPaused(paused bool) {
	s.mixer.setPaused(s.id, paused)
}

// Done reports whether the source has finished or been stopped.
func (s *Sound) Done() bool {
	return !s.mixer.contains(s.id)
}
