package models

import (
	"gorm.io/gorm"

	"github.com/tracktag/analyzer-api/internal/analyzer"
)

// Analysis stores the derived metadata for a track. One row per track;
// re-analyzing replaces the previous values.
type Analysis struct {
	gorm.Model
	TrackID       uint    `json:"track_id" gorm:"not null;uniqueIndex"`
	BPM           int     `json:"bpm" gorm:"not null"`
	MusicalKey    string  `json:"musical_key" gorm:"not null"`
	Energy        float64 `json:"energy" gorm:"not null"`
	BPMConfidence float64 `json:"bpm_confidence"`
	KeyConfidence float64 `json:"key_confidence"`
}

// Result converts the stored row back into the in-memory result shape.
func (a *Analysis) Result() *analyzer.AnalysisResult {
	return &analyzer.AnalysisResult{
		BPM:        a.BPM,
		MusicalKey: a.MusicalKey,
		Energy:     a.Energy,
		Confidence: analyzer.Confidence{
			BPM: a.BPMConfidence,
			Key: a.KeyConfidence,
		},
	}
}

// AnalysisFromResult builds a storable row from an analysis result.
func AnalysisFromResult(trackID uint, r *analyzer.AnalysisResult) *Analysis {
	return &Analysis{
		TrackID:       trackID,
		BPM:           r.BPM,
		MusicalKey:    r.MusicalKey,
		Energy:        r.Energy,
		BPMConfidence: r.Confidence.BPM,
		KeyConfidence: r.Confidence.Key,
	}
}
