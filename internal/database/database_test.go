package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracktag/analyzer-api/internal/models"
)

func TestInitializeAndMigrate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "tracks.db")

	db, err := Initialize(dbPath, false)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.AutoMigrate(models.All()...))
	assert.NoError(t, db.HealthCheck())
}

func TestHealthCheckUninitialized(t *testing.T) {
	var db *DB
	assert.Error(t, db.HealthCheck())
}

func TestAnalysisUniquePerTrack(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tracks.db")

	db, err := Initialize(dbPath, false)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.AutoMigrate(models.All()...))

	first := &models.Analysis{TrackID: 1, BPM: 120, MusicalKey: "C Major", Energy: 0.5}
	require.NoError(t, db.Create(first).Error)

	dup := &models.Analysis{TrackID: 1, BPM: 130, MusicalKey: "D Major", Energy: 0.6}
	assert.Error(t, db.Create(dup).Error, "second analysis row for the same track must violate the unique index")
}
