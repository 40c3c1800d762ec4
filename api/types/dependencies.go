package types

import (
	"github.com/tracktag/analyzer-api/internal/analyzer"
	"github.com/tracktag/analyzer-api/internal/database"
	"github.com/tracktag/analyzer-api/internal/services/tracks"
	"github.com/tracktag/analyzer-api/pkg/download"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB           *database.DB
	Analyzer     *analyzer.Analyzer
	TrackService tracks.TrackService
	Fetcher      *download.Fetcher
}
