// ABOUTME: Source adapters for sample-rate and channel-count conversion
// ABOUTME: Linear interpolation resampling and mono duplication/averaging
package mixer

// Input chunk size for the rate converter, in frames.
const convertChunkFrames = 512

// SampleRateConverter adapts a source to a different output sample rate
// using linear interpolation. Channel count is preserved.
type SampleRateConverter struct {
	source   SampleSource
	outRate  int
	channels int
	ratio    float64 // input frames consumed per output frame

	position float64
	prev     []float32
	cur      []float32

	in       []float32
	inFrames int
	inPos    int

	primed    bool
	exhausted bool
}

// NewSampleRateConverter wraps source so it produces samples at outRate.
func NewSampleRateConverter(source SampleSource, outRate int) *SampleRateConverter {
	channels := source.Channels()
	return &SampleRateConverter{
		source:   source,
		outRate:  outRate,
		channels: channels,
		ratio:    float64(source.SampleRate()) / float64(outRate),
		prev:     make([]float32, channels),
		cur:      make([]float32, channels),
		in:       make([]float32, convertChunkFrames*channels),
	}
}

// SampleRate returns the converted output rate.
func (c *SampleRateConverter) SampleRate() int { return c.outRate }

// Channels returns the source's channel count, unchanged.
func (c *SampleRateConverter) Channels() int { return c.channels }

// ReadSamples fills dst with resampled output. A short read means the
// wrapped source is exhausted.
func (c *SampleRateConverter) ReadSamples(dst []float32) int {
	frames := len(dst) / c.channels

	if !c.primed {
		if !c.advance() {
			return 0
		}
		// Start flat on the first input frame.
		copy(c.prev, c.cur)
		c.advance()
		c.primed = true
	}

	out := 0
	for out < frames {
		for c.position >= 1.0 {
			if !c.advance() {
				return out * c.channels
			}
			c.position -= 1.0
		}

		t := float32(c.position)
		base := out * c.channels
		for ch := 0; ch < c.channels; ch++ {
			dst[base+ch] = c.prev[ch] + (c.cur[ch]-c.prev[ch])*t
		}

		out++
		c.position += c.ratio
	}

	return out * c.channels
}

// advance shifts cur into prev and pulls the next input frame into cur,
// refilling the input chunk from the source as needed.
func (c *SampleRateConverter) advance() bool {
	if c.inPos >= c.inFrames {
		if c.exhausted {
			return false
		}
		n := c.source.ReadSamples(c.in)
		c.inFrames = n / c.channels
		c.inPos = 0
		if n < len(c.in) {
			c.exhausted = true
		}
		if c.inFrames == 0 {
			return false
		}
	}

	copy(c.prev, c.cur)
	copy(c.cur, c.in[c.inPos*c.channels:(c.inPos+1)*c.channels])
	c.inPos++
	return true
}

// ChannelConverter adapts a source to a different channel count. One side
// must be mono: a mono source is duplicated across all output channels, and
// a multi-channel source is averaged down to mono. Sample rate is preserved.
type ChannelConverter struct {
	source      SampleSource
	outChannels int
	in          []float32
}

// NewChannelConverter wraps source so it produces outChannels channels.
func NewChannelConverter(source SampleSource, outChannels int) *ChannelConverter {
	return &ChannelConverter{
		source:      source,
		outChannels: outChannels,
	}
}

// SampleRate returns the source's sample rate, unchanged.
func (c *ChannelConverter) SampleRate() int { return c.source.SampleRate() }

// Channels returns the converted channel count.
func (c *ChannelConverter) Channels() int { return c.outChannels }

// ReadSamples fills dst with channel-converted output.
func (c *ChannelConverter) ReadSamples(dst []float32) int {
	inChannels := c.source.Channels()
	if inChannels == c.outChannels {
		return c.source.ReadSamples(dst)
	}

	frames := len(dst) / c.outChannels
	needed := frames * inChannels

	if cap(c.in) < needed {
		c.in = make([]float32, needed)
	}
	in := c.in[:needed]

	n := c.source.ReadSamples(in)
	gotFrames := n / inChannels

	for f := 0; f < gotFrames; f++ {
		var sum float32
		for ch := 0; ch < inChannels; ch++ {
			sum += in[f*inChannels+ch]
		}
		mono := sum / float32(inChannels)

		base := f * c.outChannels
		for ch := 0; ch < c.outChannels; ch++ {
			dst[base+ch] = mono
		}
	}

	return gotFrames * c.outChannels
}
