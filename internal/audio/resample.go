package audio

// TargetSampleRate is the fixed rate the analysis estimators operate at.
const TargetSampleRate = 44100

// Resample converts buf to targetRate using linear interpolation and
// returns a new buffer. When the rates already match, buf is returned
// unchanged.
//
// For each output index i the source position is i*(R/T); the two
// neighboring input samples are blended by the fractional part. The upper
// neighbor is clamped to the last valid input index so the final output
// sample never extrapolates past the end. The interpolation is not
// band-limited; the downstream estimators only need coarse spectral and
// temporal structure.
func Resample(buf *SampleBuffer, targetRate int) *SampleBuffer {
	srcRate := buf.SampleRate()
	if srcRate == targetRate || buf.Len() == 0 {
		return buf
	}

	src := buf.Samples()
	ratio := float64(srcRate) / float64(targetRate)
	outLen := int(float64(len(src)) / ratio)
	if outLen < 1 {
		outLen = 1
	}

	out := make([]float32, outLen)
	last := len(src) - 1
	for i := 0; i < outLen; i++ {
		pos := float64(i) * ratio
		i0 := int(pos)
		if i0 > last {
			i0 = last
		}
		i1 := i0 + 1
		if i1 > last {
			i1 = last
		}
		frac := float32(pos - float64(i0))
		out[i] = src[i0] + (src[i1]-src[i0])*frac
	}

	return NewSampleBuffer(out, targetRate)
}
