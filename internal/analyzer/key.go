package analyzer

import (
	"context"
	"log"
	"math"
	"strings"

	"github.com/tracktag/analyzer-api/internal/audio"
)

const (
	// chromaWindowSize is the analysis window for the fallback chroma
	// correlation.
	chromaWindowSize = 4096

	defaultKeyStrength    = 0.8
	fallbackKeyConfidence = 0.5
)

// Krumhansl-Schmuckler tonal profiles: the relative perceptual salience of
// each scale degree in a major and a minor scale.
var (
	majorProfile = [12]float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
	minorProfile = [12]float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}
)

// flatToSharp maps engine flat spellings onto the canonical sharp names.
var flatToSharp = map[string]string{
	"Db": "C#", "Eb": "D#", "Gb": "F#", "Ab": "G#", "Bb": "A#",
	"Cb": "B", "Fb": "E",
}

// KeyEstimate is a detected musical key with the trust its path reports.
type KeyEstimate struct {
	Key        string
	Confidence float64
}

// EstimateKey derives the musical key from buf. When engine is non-nil the
// primary path is tried first; any engine failure is swallowed and the
// chromagram heuristic takes over. The heuristic itself cannot fail.
func EstimateKey(ctx context.Context, engine KeyEngine, buf *audio.SampleBuffer) KeyEstimate {
	if engine != nil {
		detected, err := engine.EstimateKey(ctx, buf)
		if err == nil {
			if est, ok := shapePrimaryKey(detected); ok {
				return est
			}
			log.Printf("[DEBUG] Engine reported unknown pitch class %q, falling back", detected.Note)
		} else {
			log.Printf("[DEBUG] Engine key estimation failed, falling back to chroma correlation: %v", err)
		}
	}
	return fallbackKey(buf)
}

// shapePrimaryKey maps the engine's naming convention onto the canonical
// pitch-class names and title-cases the scale. The engine's strength is
// used as confidence when present.
func shapePrimaryKey(detected EngineKey) (KeyEstimate, bool) {
	note := detected.Note
	if sharp, ok := flatToSharp[note]; ok {
		note = sharp
	}

	valid := false
	for _, pc := range PitchClasses {
		if pc == note {
			valid = true
			break
		}
	}
	if !valid {
		return KeyEstimate{}, false
	}

	scale := "Major"
	if strings.EqualFold(detected.Scale, "minor") {
		scale = "Minor"
	}

	confidence := detected.Strength
	if confidence <= 0 {
		confidence = defaultKeyStrength
	}
	if confidence > 1 {
		confidence = 1
	}

	return KeyEstimate{Key: note + " " + scale, Confidence: confidence}, true
}

// fallbackKey detects the key by correlating the buffer against synthetic
// sinusoids at each pitch class fundamental, then scoring every tonic
// rotation of the resulting chroma vector against the major and minor
// tonal profiles.
func fallbackKey(buf *audio.SampleBuffer) KeyEstimate {
	chroma := chromaVector(buf)

	bestScore := math.Inf(-1)
	bestPC := 0
	bestMajor := true
	for tonic := 0; tonic < 12; tonic++ {
		majorScore := 0.0
		minorScore := 0.0
		for degree := 0; degree < 12; degree++ {
			v := chroma[(tonic+degree)%12]
			majorScore += v * majorProfile[degree]
			minorScore += v * minorProfile[degree]
		}
		if majorScore > bestScore {
			bestScore = majorScore
			bestPC = tonic
			bestMajor = true
		}
		if minorScore > bestScore {
			bestScore = minorScore
			bestPC = tonic
			bestMajor = false
		}
	}

	return KeyEstimate{Key: KeyName(bestPC, bestMajor), Confidence: fallbackKeyConfidence}
}

// chromaVector accumulates, per pitch class, the absolute sine correlation
// of the buffer in fixed-size windows, normalized by the maximum bin.
// Pitch class fundamentals follow 440*2^((pc-9)/12), anchoring A = 440 Hz.
func chromaVector(buf *audio.SampleBuffer) [12]float64 {
	var chroma [12]float64
	samples := buf.Samples()
	rate := float64(buf.SampleRate())
	if len(samples) == 0 || rate <= 0 {
		return chroma
	}

	for pc := 0; pc < 12; pc++ {
		freq := 440 * math.Pow(2, float64(pc-9)/12)
		omega := 2 * math.Pi * freq / rate

		var total float64
		for start := 0; start < len(samples); start += chromaWindowSize {
			end := start + chromaWindowSize
			if end > len(samples) {
				end = len(samples)
			}
			var corr float64
			for i := start; i < end; i++ {
				corr += float64(samples[i]) * math.Sin(omega*float64(i))
			}
			total += math.Abs(corr)
		}
		chroma[pc] = total
	}

	max := 0.0
	for _, v := range chroma {
		if v > max {
			max = v
		}
	}
	if max > 0 {
		for i := range chroma {
			chroma[i] /= max
		}
	}
	return chroma
}
