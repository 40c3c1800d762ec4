package tracks

import (
	"context"

	"github.com/tracktag/analyzer-api/internal/models"
)

// TrackService defines operations on tracks and their stored analyses.
type TrackService interface {
	// EnsureTrack fetches a track by ID, creating a placeholder record
	// when none exists yet.
	EnsureTrack(ctx context.Context, trackID uint, title string) (*models.Track, error)

	// GetAnalysis retrieves the stored analysis for a track.
	GetAnalysis(ctx context.Context, trackID uint) (*models.Analysis, error)

	// SaveAnalysis stores (or replaces) the analysis for a track.
	SaveAnalysis(ctx context.Context, analysis *models.Analysis) error
}

// TrackRepository defines the data access layer for tracks and analyses.
type TrackRepository interface {
	// GetTrack retrieves a track by ID
	GetTrack(ctx context.Context, trackID uint) (*models.Track, error)

	// CreateTrack saves a new track
	CreateTrack(ctx context.Context, track *models.Track) error

	// GetAnalysisByTrackID retrieves an analysis by track ID
	GetAnalysisByTrackID(ctx context.Context, trackID uint) (*models.Analysis, error)

	// CreateAnalysis saves a new analysis row
	CreateAnalysis(ctx context.Context, analysis *models.Analysis) error

	// UpdateAnalysis modifies an existing analysis row
	UpdateAnalysis(ctx context.Context, analysis *models.Analysis) error

	// AnalysisExists checks if an analysis exists for a track
	AnalysisExists(ctx context.Context, trackID uint) (bool, error)
}
