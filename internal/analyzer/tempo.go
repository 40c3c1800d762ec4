package analyzer

import (
	"context"
	"log"
	"math"

	"github.com/tracktag/analyzer-api/internal/audio"
)

const (
	minBPM = 60
	maxBPM = 200

	// tempoChunkSize is the fixed chunk length the fallback estimator
	// partitions the buffer into.
	tempoChunkSize = 1024

	// peakThreshold marks a chunk as a candidate beat when its energy
	// exceeds this multiple of the mean chunk energy.
	peakThreshold = 1.3

	primaryTempoConfidence  = 0.85
	fallbackTempoConfidence = 0.5
	defaultTempoConfidence  = 0.3
	defaultBPM              = 120
)

// TempoEstimate is a BPM value with the trust its path reports.
type TempoEstimate struct {
	BPM        int
	Confidence float64
}

// EstimateTempo derives tempo from buf. When engine is non-nil the primary
// path is tried first; any engine failure is swallowed and the
// self-contained heuristic takes over. The heuristic itself cannot fail.
func EstimateTempo(ctx context.Context, engine TempoEngine, buf *audio.SampleBuffer) TempoEstimate {
	if engine != nil {
		raw, err := engine.EstimateTempo(ctx, buf)
		if err == nil {
			return shapePrimaryTempo(raw)
		}
		log.Printf("[DEBUG] Engine tempo estimation failed, falling back to peak-interval heuristic: %v", err)
	}
	return fallbackTempo(buf)
}

// shapePrimaryTempo clamps the engine's raw BPM and corrects half-time
// misdetections: a clamped value below 70 is almost always half the true
// tempo for popular music, so it is doubled.
func shapePrimaryTempo(raw float64) TempoEstimate {
	bpm := clampBPM(int(math.Round(raw)))
	if bpm < 70 {
		bpm = clampBPM(int(math.Round(float64(bpm) * 2)))
	}
	return TempoEstimate{BPM: bpm, Confidence: primaryTempoConfidence}
}

// fallbackTempo estimates tempo from inter-peak intervals of chunk
// energies. A chunk counts as a peak only when its energy exceeds both
// 1.3x the global mean and both immediate neighbors. Fewer than two peaks
// means there is not enough signal to estimate; the hard default applies.
func fallbackTempo(buf *audio.SampleBuffer) TempoEstimate {
	energies := chunkEnergies(buf.Samples(), tempoChunkSize)

	var mean float64
	for _, e := range energies {
		mean += e
	}
	if len(energies) > 0 {
		mean /= float64(len(energies))
	}

	var peaks []int
	for i := range energies {
		if energies[i] <= mean*peakThreshold {
			continue
		}
		if i > 0 && energies[i] <= energies[i-1] {
			continue
		}
		if i < len(energies)-1 && energies[i] <= energies[i+1] {
			continue
		}
		peaks = append(peaks, i)
	}

	if len(peaks) < 2 {
		return TempoEstimate{BPM: defaultBPM, Confidence: defaultTempoConfidence}
	}

	var gapSum float64
	for i := 1; i < len(peaks); i++ {
		gapSum += float64(peaks[i] - peaks[i-1])
	}
	meanGap := gapSum / float64(len(peaks)-1)

	secondsPerBeat := meanGap * float64(tempoChunkSize) / float64(buf.SampleRate())
	bpm := clampBPM(int(math.Round(60 / secondsPerBeat)))

	return TempoEstimate{BPM: bpm, Confidence: fallbackTempoConfidence}
}

// chunkEnergies computes per-chunk RMS energy over fixed-size chunks,
// dropping the trailing partial chunk.
func chunkEnergies(samples []float32, chunkSize int) []float64 {
	n := len(samples) / chunkSize
	energies := make([]float64, 0, n)
	for c := 0; c < n; c++ {
		var sum float64
		for i := c * chunkSize; i < (c+1)*chunkSize; i++ {
			sum += float64(samples[i]) * float64(samples[i])
		}
		energies = append(energies, math.Sqrt(sum/float64(chunkSize)))
	}
	return energies
}

func clampBPM(bpm int) int {
	if bpm < minBPM {
		return minBPM
	}
	if bpm > maxBPM {
		return maxBPM
	}
	return bpm
}
