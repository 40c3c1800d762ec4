package tracks

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/tracktag/analyzer-api/internal/models"
)

// service implements TrackService
type service struct {
	repo TrackRepository
}

// NewService creates a new track service
func NewService(repo TrackRepository) TrackService {
	return &service{repo: repo}
}

// EnsureTrack fetches the track, creating a placeholder when missing so an
// analysis can attach to it.
func (s *service) EnsureTrack(ctx context.Context, trackID uint, title string) (*models.Track, error) {
	if trackID == 0 {
		return nil, ErrInvalidTrackID
	}

	track, err := s.repo.GetTrack(ctx, trackID)
	if err == nil {
		return track, nil
	}
	if !errors.Is(err, ErrTrackNotFound) {
		return nil, err
	}

	log.Printf("[DEBUG] Creating placeholder track %d", trackID)
	track = &models.Track{Title: title}
	track.ID = trackID
	if err := s.repo.CreateTrack(ctx, track); err != nil {
		return nil, err
	}
	return track, nil
}

// GetAnalysis retrieves the stored analysis for a track
func (s *service) GetAnalysis(ctx context.Context, trackID uint) (*models.Analysis, error) {
	if trackID == 0 {
		return nil, ErrInvalidTrackID
	}

	analysis, err := s.repo.GetAnalysisByTrackID(ctx, trackID)
	if err != nil {
		log.Printf("[DEBUG] Failed to get analysis for track %d: %v", trackID, err)
		return nil, err
	}

	log.Printf("[DEBUG] Found analysis for track %d: bpm=%d key=%s energy=%.2f",
		trackID, analysis.BPM, analysis.MusicalKey, analysis.Energy)
	return analysis, nil
}

// SaveAnalysis stores the analysis, replacing any previous row for the
// same track.
func (s *service) SaveAnalysis(ctx context.Context, analysis *models.Analysis) error {
	if analysis.TrackID == 0 {
		return ErrInvalidTrackID
	}
	if analysis.MusicalKey == "" {
		return ErrInvalidAnalysis
	}

	exists, err := s.repo.AnalysisExists(ctx, analysis.TrackID)
	if err != nil {
		return err
	}

	if exists {
		log.Printf("[DEBUG] Updating existing analysis for track %d", analysis.TrackID)
		return s.repo.UpdateAnalysis(ctx, analysis)
	}

	log.Printf("[DEBUG] Creating new analysis for track %d", analysis.TrackID)
	err = s.repo.CreateAnalysis(ctx, analysis)
	if err != nil {
		// Another worker may have inserted between the exists check and
		// the create; fall back to an update.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			log.Printf("[DEBUG] UNIQUE constraint failed for track %d, updating instead (race condition)", analysis.TrackID)
			return s.repo.UpdateAnalysis(ctx, analysis)
		}
		return err
	}
	return nil
}
