package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tracktag/analyzer-api/internal/analyzer"
)

func TestAnalysisRoundTrip(t *testing.T) {
	result := &analyzer.AnalysisResult{
		BPM:        128,
		MusicalKey: "F# Minor",
		Energy:     0.73,
		Confidence: analyzer.Confidence{BPM: 0.85, Key: 0.8},
	}

	row := AnalysisFromResult(42, result)
	assert.Equal(t, uint(42), row.TrackID)
	assert.Equal(t, result, row.Result())
}
