package tracks

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tracktag/analyzer-api/internal/models"
)

// repository implements TrackRepository with GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new GORM-backed track repository
func NewRepository(db *gorm.DB) TrackRepository {
	return &repository{db: db}
}

func (r *repository) GetTrack(ctx context.Context, trackID uint) (*models.Track, error) {
	var track models.Track
	err := r.db.WithContext(ctx).First(&track, trackID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrackNotFound
		}
		return nil, err
	}
	return &track, nil
}

func (r *repository) CreateTrack(ctx context.Context, track *models.Track) error {
	return r.db.WithContext(ctx).Create(track).Error
}

func (r *repository) GetAnalysisByTrackID(ctx context.Context, trackID uint) (*models.Analysis, error) {
	var analysis models.Analysis
	err := r.db.WithContext(ctx).Where("track_id = ?", trackID).First(&analysis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnalysisNotFound
		}
		return nil, err
	}
	return &analysis, nil
}

func (r *repository) CreateAnalysis(ctx context.Context, analysis *models.Analysis) error {
	return r.db.WithContext(ctx).Create(analysis).Error
}

func (r *repository) UpdateAnalysis(ctx context.Context, analysis *models.Analysis) error {
	return r.db.WithContext(ctx).
		Model(&models.Analysis{}).
		Where("track_id = ?", analysis.TrackID).
		Select("BPM", "MusicalKey", "Energy", "BPMConfidence", "KeyConfidence").
		Updates(analysis).Error
}

func (r *repository) AnalysisExists(ctx context.Context, trackID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Analysis{}).
		Where("track_id = ?", trackID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
