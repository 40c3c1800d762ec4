package analysis

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tracktag/analyzer-api/api/types"
	"github.com/tracktag/analyzer-api/internal/analyzer"
	"github.com/tracktag/analyzer-api/internal/audio"
	apperrors "github.com/tracktag/analyzer-api/pkg/errors"
)

// AnalyzeRequest is the request body for analysis endpoints. Exactly one
// of DataURL or AudioURL must be set.
type AnalyzeRequest struct {
	DataURL  string `json:"data_url,omitempty"`
	AudioURL string `json:"audio_url,omitempty"`
}

// Post analyzes audio supplied as a base64 data URL or a fetchable URL
// and returns the derived metadata without persisting anything.
//
// @Summary      Analyze audio
// @Description  Derives BPM, musical key and normalized energy from an audio payload
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        request body AnalyzeRequest true "Audio source (data_url or audio_url)"
// @Success      200 {object} analyzer.AnalysisResult
// @Failure      400 {object} map[string]string
// @Failure      502 {object} map[string]string
// @Router       /api/v1/analysis [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		data, ok := ResolveAudioBytes(c, deps, &req)
		if !ok {
			return
		}

		result, err := deps.Analyzer.Analyze(c.Request.Context(), data)
		if err != nil {
			RespondAnalysisError(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// ResolveAudioBytes turns the request body into raw audio bytes, writing
// an error response and returning false when resolution fails.
func ResolveAudioBytes(c *gin.Context, deps *types.Dependencies, req *AnalyzeRequest) ([]byte, bool) {
	switch {
	case req.DataURL != "" && req.AudioURL != "":
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide either data_url or audio_url, not both"})
		return nil, false

	case req.DataURL != "":
		data, err := analyzer.DecodeDataURL(req.DataURL)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data URL"})
			return nil, false
		}
		return data, true

	case req.AudioURL != "":
		if deps.Fetcher == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Audio fetching not available"})
			return nil, false
		}
		data, _, err := deps.Fetcher.FetchBytes(c.Request.Context(), req.AudioURL)
		if err != nil {
			appErr := apperrors.Wrap(err, apperrors.ErrCodeFetchFailed, "Failed to fetch audio").
				WithDetail("url", req.AudioURL)
			c.JSON(appErr.GetHTTPCode(), gin.H{"error": appErr.Message, "code": appErr.Code, "detail": err.Error()})
			return nil, false
		}
		return data, true

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide data_url or audio_url"})
		return nil, false
	}
}

// RespondAnalysisError maps analysis failures to HTTP responses. Only
// decode failures reach here; engine unavailability is absorbed by the
// fallback estimators.
func RespondAnalysisError(c *gin.Context, err error) {
	var appErr *apperrors.AppError

	var decodeErr *audio.DecodeError
	if errors.Is(err, audio.ErrUnsupportedFormat) ||
		errors.Is(err, audio.ErrEmptyInput) ||
		errors.As(err, &decodeErr) {
		appErr = apperrors.Wrap(err, apperrors.ErrCodeDecodeFailed, "Audio could not be decoded")
	} else {
		appErr = apperrors.Wrap(err, apperrors.ErrCodeInternal, "Analysis failed")
	}

	c.JSON(appErr.GetHTTPCode(), gin.H{"error": appErr.Message, "code": appErr.Code, "detail": err.Error()})
}
