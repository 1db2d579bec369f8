// ABOUTME: Sample conversion helpers between normalized floats and PCM
// ABOUTME: Converts mixer-internal [-1,1] float32 samples to native encodings
package audio

// ClampFloat limits a normalized sample to [-1, 1]. Mixed samples can exceed
// the range when several loud sources overlap.
func ClampFloat(s float32) float32 {
	if s > 1.0 {
		return 1.0
	}
	if s < -1.0 {
		return -1.0
	}
	return s
}

// Int16FromFloat converts a normalized sample to 16-bit signed PCM. The
// scale is 32768 on both conversion directions, with +1.0 pinned to 32767.
func Int16FromFloat(s float32) int16 {
	v := int32(ClampFloat(s) * 32768.0)
	if v > 32767 {
		v = 32767
	}
	return int16(v)
}

// Uint16FromFloat converts a normalized sample to 16-bit unsigned PCM,
// with silence at 32768 and full-scale negative at 0.
func Uint16FromFloat(s float32) uint16 {
	return uint16(int32(Int16FromFloat(s)) + 32768)
}

// FloatFromInt16 converts 16-bit signed PCM to a normalized sample.
func FloatFromInt16(s int16) float32 {
	return float32(s) / 32768.0
}
