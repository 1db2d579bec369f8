// ABOUTME: Tests for the Format and SampleFormat types
// ABOUTME: Verifies sizes and string representations
package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleFormatBytesPerSample(t *testing.T) {
	assert.Equal(t, 2, FormatInt16.BytesPerSample())
	assert.Equal(t, 2, FormatUint16.BytesPerSample())
	assert.Equal(t, 4, FormatFloat32.BytesPerSample())
	assert.Equal(t, 0, SampleFormat(99).BytesPerSample())
}

func TestSampleFormatString(t *testing.T) {
	assert.Equal(t, "int16", FormatInt16.String())
	assert.Equal(t, "uint16", FormatUint16.String())
	assert.Equal(t, "float32", FormatFloat32.String())
}

func TestFormatBytesPerFrame(t *testing.T) {
	f := Format{SampleRate: 48000, Channels: 2, Encoding: FormatFloat32}
	assert.Equal(t, 8, f.BytesPerFrame())

	f = Format{SampleRate: 44100, Channels: 1, Encoding: FormatInt16}
	assert.Equal(t, 2, f.BytesPerFrame())
}

func TestFormatString(t *testing.T) {
	f := Format{SampleRate: 48000, Channels: 2, Encoding: FormatFloat32}
	assert.Equal(t, "48000Hz 2ch float32", f.String())
}
