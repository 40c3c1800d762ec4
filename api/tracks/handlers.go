package tracks

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tracktag/analyzer-api/api/analysis"
	"github.com/tracktag/analyzer-api/api/types"
	"github.com/tracktag/analyzer-api/internal/models"
	trackservice "github.com/tracktag/analyzer-api/internal/services/tracks"
)

// AnalysisResponse is the stored analysis for a track
type AnalysisResponse struct {
	TrackID       uint    `json:"track_id"`
	BPM           int     `json:"bpm"`
	MusicalKey    string  `json:"musical_key"`
	Energy        float64 `json:"energy"`
	BPMConfidence float64 `json:"bpm_confidence"`
	KeyConfidence float64 `json:"key_confidence"`
	Cached        bool    `json:"cached"`
}

// PostAnalysis analyzes audio for a track and persists the result.
//
// @Summary      Analyze and store track metadata
// @Description  Runs analysis on the supplied audio and stores the result against the track
// @Tags         tracks
// @Accept       json
// @Produce      json
// @Param        id path int true "Track ID"
// @Param        request body analysis.AnalyzeRequest true "Audio source (data_url or audio_url)"
// @Success      200 {object} AnalysisResponse
// @Failure      400 {object} map[string]string
// @Router       /api/v1/tracks/{id}/analysis [post]
func PostAnalysis(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		trackID, ok := parseTrackID(c)
		if !ok {
			return
		}

		var req analysis.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		data, ok := analysis.ResolveAudioBytes(c, deps, &req)
		if !ok {
			return
		}

		result, err := deps.Analyzer.Analyze(c.Request.Context(), data)
		if err != nil {
			analysis.RespondAnalysisError(c, err)
			return
		}

		if deps.TrackService != nil {
			if _, err := deps.TrackService.EnsureTrack(c.Request.Context(), trackID, ""); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve track"})
				return
			}
			if err := deps.TrackService.SaveAnalysis(c.Request.Context(), models.AnalysisFromResult(trackID, result)); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store analysis"})
				return
			}
		}

		c.JSON(http.StatusOK, AnalysisResponse{
			TrackID:       trackID,
			BPM:           result.BPM,
			MusicalKey:    result.MusicalKey,
			Energy:        result.Energy,
			BPMConfidence: result.Confidence.BPM,
			KeyConfidence: result.Confidence.Key,
		})
	}
}

// GetAnalysis returns the stored analysis for a track.
//
// @Summary      Get stored track analysis
// @Tags         tracks
// @Produce      json
// @Param        id path int true "Track ID"
// @Success      200 {object} AnalysisResponse
// @Failure      404 {object} map[string]string
// @Router       /api/v1/tracks/{id}/analysis [get]
func GetAnalysis(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		trackID, ok := parseTrackID(c)
		if !ok {
			return
		}

		if deps.TrackService == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Track service not available"})
			return
		}

		stored, err := deps.TrackService.GetAnalysis(c.Request.Context(), trackID)
		if err != nil {
			if errors.Is(err, trackservice.ErrAnalysisNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "No analysis stored for track", "track_id": trackID})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analysis"})
			return
		}

		c.JSON(http.StatusOK, AnalysisResponse{
			TrackID:       stored.TrackID,
			BPM:           stored.BPM,
			MusicalKey:    stored.MusicalKey,
			Energy:        stored.Energy,
			BPMConfidence: stored.BPMConfidence,
			KeyConfidence: stored.KeyConfidence,
			Cached:        true,
		})
	}
}

func parseTrackID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid track ID"})
		return 0, false
	}
	return uint(id), true
}
