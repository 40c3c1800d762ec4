package analyzer

import (
	"math"

	"github.com/tracktag/analyzer-api/internal/audio"
)

// referenceRMS is the RMS of empirically "loud" music; tracks at or above
// it map to energy 1.0.
const referenceRMS = 0.3

// Energy computes a normalized loudness scalar in [0,1]: the RMS of the
// buffer divided by the loud-music reference, clamped and rounded to two
// decimals. Silence yields exactly 0.
func Energy(buf *audio.SampleBuffer) float64 {
	samples := buf.Samples()
	if len(samples) == 0 {
		return 0
	}

	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	rms := math.Sqrt(sum / float64(len(samples)))

	energy := rms / referenceRMS
	if energy > 1 {
		energy = 1
	}
	return math.Round(energy*100) / 100
}
