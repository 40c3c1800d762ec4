package audio

// SampleBuffer holds mono float32 PCM samples tagged with their sample rate.
// Buffers are created once per analysis call and are not mutated after
// construction; pipeline stages that need a different rate allocate a new
// buffer instead of rewriting this one.
type SampleBuffer struct {
	data []float32
	rate int
}

// NewSampleBuffer wraps the given samples at the given rate.
func NewSampleBuffer(data []float32, rate int) *SampleBuffer {
	return &SampleBuffer{data: data, rate: rate}
}

// Samples returns the underlying sample slice.
func (b *SampleBuffer) Samples() []float32 {
	return b.data
}

// SampleRate returns the sample rate in Hz.
func (b *SampleBuffer) SampleRate() int {
	return b.rate
}

// Len returns the number of samples.
func (b *SampleBuffer) Len() int {
	return len(b.data)
}

// Duration returns the logical duration in seconds.
func (b *SampleBuffer) Duration() float64 {
	if b.rate <= 0 {
		return 0
	}
	return float64(len(b.data)) / float64(b.rate)
}
