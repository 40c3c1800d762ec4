package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/tracktag/analyzer-api/api/analysis"
	"github.com/tracktag/analyzer-api/api/health"
	"github.com/tracktag/analyzer-api/api/tracks"
	"github.com/tracktag/analyzer-api/api/types"
	"github.com/tracktag/analyzer-api/api/version"
	_ "github.com/tracktag/analyzer-api/docs/swagger"
	"github.com/tracktag/analyzer-api/internal/analyzer"
	tracksService "github.com/tracktag/analyzer-api/internal/services/tracks"
	"github.com/tracktag/analyzer-api/pkg/config"
	"github.com/tracktag/analyzer-api/pkg/download"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")

	// Load config for API routes
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	// Initialize services if not already set
	if deps == nil {
		deps = &types.Dependencies{}
	}

	if deps.Fetcher == nil {
		initializeFetcher(deps, cfg)
	}

	if deps.Analyzer == nil {
		initializeAnalyzer(deps, cfg)
	}

	// Initialize track persistence if database is available
	if deps.DB != nil && deps.DB.DB != nil && deps.TrackService == nil {
		deps.TrackService = tracksService.NewService(tracksService.NewRepository(deps.DB.DB))
	}

	rps := cfg.RateLimit.RequestsPerSecond
	burst := cfg.RateLimit.Burst

	// Register analysis routes with rate limiting (analysis is CPU intensive)
	analysisGroup := v1.Group("")
	analysisGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, rps, burst))
	analysis.RegisterRoutes(analysisGroup, deps)

	// Register track-scoped analysis routes only when persistence is wired
	if deps.TrackService != nil {
		trackGroup := v1.Group("")
		trackGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, rps, burst))
		tracks.RegisterRoutes(trackGroup, deps)
	}

	return nil
}

// initializeFetcher creates the remote audio fetcher from config
func initializeFetcher(deps *types.Dependencies, cfg *config.Config) {
	options := download.DefaultOptions()
	if cfg.Analysis.MaxUploadBytes > 0 {
		options.MaxSize = cfg.Analysis.MaxUploadBytes
	}
	if cfg.Analysis.FetchTimeout > 0 {
		options.Timeout = cfg.Analysis.FetchTimeout
	}
	deps.Fetcher = download.NewFetcher(options)
}

// initializeAnalyzer creates the feature extraction pipeline from config
func initializeAnalyzer(deps *types.Dependencies, cfg *config.Config) {
	handle := analyzer.NewEngineHandle(analyzer.AubioFactory(
		cfg.Analysis.Engine.AubioPath,
		cfg.Analysis.Engine.Timeout,
	))
	deps.Analyzer = analyzer.New(handle, analyzer.WithTargetRate(cfg.Analysis.TargetSampleRate))
}
