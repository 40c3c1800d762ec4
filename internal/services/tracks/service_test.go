package tracks

import (
	"context"
	"errors"
	"testing"

	"github.com/tracktag/analyzer-api/internal/models"
)

// mockTrackRepository is a mock implementation of TrackRepository for testing
type mockTrackRepository struct {
	tracks     map[uint]*models.Track
	analyses   map[uint]*models.Analysis
	shouldErr  bool
	createErr  error
	updateHits int
}

func newMockTrackRepository() *mockTrackRepository {
	return &mockTrackRepository{
		tracks:   make(map[uint]*models.Track),
		analyses: make(map[uint]*models.Analysis),
	}
}

func (m *mockTrackRepository) GetTrack(ctx context.Context, trackID uint) (*models.Track, error) {
	if m.shouldErr {
		return nil, errors.New("mock database error")
	}
	track, exists := m.tracks[trackID]
	if !exists {
		return nil, ErrTrackNotFound
	}
	return track, nil
}

func (m *mockTrackRepository) CreateTrack(ctx context.Context, track *models.Track) error {
	if m.shouldErr {
		return errors.New("mock database error")
	}
	m.tracks[track.ID] = track
	return nil
}

func (m *mockTrackRepository) GetAnalysisByTrackID(ctx context.Context, trackID uint) (*models.Analysis, error) {
	if m.shouldErr {
		return nil, errors.New("mock database error")
	}
	analysis, exists := m.analyses[trackID]
	if !exists {
		return nil, ErrAnalysisNotFound
	}
	return analysis, nil
}

func (m *mockTrackRepository) CreateAnalysis(ctx context.Context, analysis *models.Analysis) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.shouldErr {
		return errors.New("mock database error")
	}
	m.analyses[analysis.TrackID] = analysis
	return nil
}

func (m *mockTrackRepository) UpdateAnalysis(ctx context.Context, analysis *models.Analysis) error {
	if m.shouldErr {
		return errors.New("mock database error")
	}
	m.updateHits++
	m.analyses[analysis.TrackID] = analysis
	return nil
}

func (m *mockTrackRepository) AnalysisExists(ctx context.Context, trackID uint) (bool, error) {
	if m.shouldErr {
		return false, errors.New("mock database error")
	}
	_, exists := m.analyses[trackID]
	return exists, nil
}

func TestEnsureTrackCreatesPlaceholder(t *testing.T) {
	repo := newMockTrackRepository()
	service := NewService(repo)

	track, err := service.EnsureTrack(context.Background(), 7, "demo track")
	if err != nil {
		t.Fatalf("EnsureTrack() error = %v", err)
	}
	if track.ID != 7 {
		t.Errorf("EnsureTrack() ID = %d, want 7", track.ID)
	}

	again, err := service.EnsureTrack(context.Background(), 7, "other title")
	if err != nil {
		t.Fatalf("EnsureTrack() second call error = %v", err)
	}
	if again.Title != "demo track" {
		t.Errorf("EnsureTrack() must return the existing track, got title %q", again.Title)
	}
}

func TestEnsureTrackInvalidID(t *testing.T) {
	service := NewService(newMockTrackRepository())

	if _, err := service.EnsureTrack(context.Background(), 0, "x"); !errors.Is(err, ErrInvalidTrackID) {
		t.Errorf("EnsureTrack(0) error = %v, want ErrInvalidTrackID", err)
	}
}

func TestGetAnalysis(t *testing.T) {
	tests := []struct {
		name      string
		trackID   uint
		seed      *models.Analysis
		shouldErr bool
		wantErr   error
	}{
		{
			name:    "existing analysis",
			trackID: 3,
			seed:    &models.Analysis{TrackID: 3, BPM: 140, MusicalKey: "E Minor", Energy: 0.8},
		},
		{
			name:    "missing analysis",
			trackID: 4,
			wantErr: ErrAnalysisNotFound,
		},
		{
			name:    "invalid track ID",
			trackID: 0,
			wantErr: ErrInvalidTrackID,
		},
		{
			name:      "repository error",
			trackID:   3,
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockTrackRepository()
			if tt.seed != nil {
				repo.analyses[tt.seed.TrackID] = tt.seed
			}
			repo.shouldErr = tt.shouldErr
			service := NewService(repo)

			got, err := service.GetAnalysis(context.Background(), tt.trackID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GetAnalysis() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if tt.shouldErr {
				if err == nil {
					t.Error("GetAnalysis() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("GetAnalysis() error = %v", err)
			}
			if got.BPM != tt.seed.BPM {
				t.Errorf("GetAnalysis() BPM = %d, want %d", got.BPM, tt.seed.BPM)
			}
		})
	}
}

func TestSaveAnalysisCreatesThenUpdates(t *testing.T) {
	repo := newMockTrackRepository()
	service := NewService(repo)

	first := &models.Analysis{TrackID: 9, BPM: 120, MusicalKey: "C Major", Energy: 0.4}
	if err := service.SaveAnalysis(context.Background(), first); err != nil {
		t.Fatalf("SaveAnalysis() create error = %v", err)
	}

	second := &models.Analysis{TrackID: 9, BPM: 124, MusicalKey: "C# Major", Energy: 0.5}
	if err := service.SaveAnalysis(context.Background(), second); err != nil {
		t.Fatalf("SaveAnalysis() update error = %v", err)
	}

	if repo.updateHits != 1 {
		t.Errorf("expected exactly one update, got %d", repo.updateHits)
	}
	if repo.analyses[9].BPM != 124 {
		t.Errorf("stored BPM = %d, want 124", repo.analyses[9].BPM)
	}
}

func TestSaveAnalysisUniqueRaceFallsBackToUpdate(t *testing.T) {
	repo := newMockTrackRepository()
	repo.createErr = errors.New("UNIQUE constraint failed: analyses.track_id")
	service := NewService(repo)

	analysis := &models.Analysis{TrackID: 5, BPM: 99, MusicalKey: "D Minor", Energy: 0.2}
	if err := service.SaveAnalysis(context.Background(), analysis); err != nil {
		t.Fatalf("SaveAnalysis() error = %v", err)
	}
	if repo.updateHits != 1 {
		t.Errorf("expected race to fall back to update, got %d updates", repo.updateHits)
	}
}

func TestSaveAnalysisValidation(t *testing.T) {
	service := NewService(newMockTrackRepository())

	err := service.SaveAnalysis(context.Background(), &models.Analysis{TrackID: 0, MusicalKey: "C Major"})
	if !errors.Is(err, ErrInvalidTrackID) {
		t.Errorf("SaveAnalysis(trackID=0) error = %v, want ErrInvalidTrackID", err)
	}

	err = service.SaveAnalysis(context.Background(), &models.Analysis{TrackID: 2})
	if !errors.Is(err, ErrInvalidAnalysis) {
		t.Errorf("SaveAnalysis(no key) error = %v, want ErrInvalidAnalysis", err)
	}
}
