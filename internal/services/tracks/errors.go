package tracks

import "errors"

var (
	// ErrTrackNotFound is returned when a track does not exist
	ErrTrackNotFound = errors.New("track not found")

	// ErrAnalysisNotFound is returned when a track has no stored analysis
	ErrAnalysisNotFound = errors.New("analysis not found")

	// ErrInvalidTrackID is returned when a track ID is invalid
	ErrInvalidTrackID = errors.New("invalid track ID")

	// ErrInvalidAnalysis is returned when an analysis row is incomplete
	ErrInvalidAnalysis = errors.New("invalid analysis data")
)
