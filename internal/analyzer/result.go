package analyzer

// PitchClasses lists the 12 canonical pitch class names, index 0 = C.
// Index 9 (A) anchors the 440 Hz reference used by the fallback key
// estimator.
var PitchClasses = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Confidence carries per-estimate trust values in [0,1]. The primary
// engine paths report fixed high values; the fallback heuristics report
// lower ones, which is the only way a caller can observe that a fallback
// was used.
type Confidence struct {
	BPM float64 `json:"bpm"`
	Key float64 `json:"key"`
}

// AnalysisResult is the single value returned for an analyzed track.
// BPM is clamped to [60,200], Energy to [0,1]. MusicalKey is one of the
// 12 pitch classes suffixed " Major" or " Minor".
type AnalysisResult struct {
	BPM        int        `json:"bpm"`
	MusicalKey string     `json:"musical_key"`
	Energy     float64    `json:"energy"`
	Confidence Confidence `json:"confidence"`
}

// KeyName formats a pitch class index and mode as a canonical key name,
// e.g. (9, false) -> "A Minor".
func KeyName(pitchClass int, major bool) string {
	pc := ((pitchClass % 12) + 12) % 12
	if major {
		return PitchClasses[pc] + " Major"
	}
	return PitchClasses[pc] + " Minor"
}
