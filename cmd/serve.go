package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tracktag/analyzer-api/api"
	"github.com/tracktag/analyzer-api/api/types"
	"github.com/tracktag/analyzer-api/internal/analyzer"
	"github.com/tracktag/analyzer-api/internal/database"
	"github.com/tracktag/analyzer-api/internal/models"
	"github.com/tracktag/analyzer-api/internal/services/tracks"
	"github.com/tracktag/analyzer-api/pkg/config"
	"github.com/tracktag/analyzer-api/pkg/download"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Track Analyzer API server with the configured settings.

The server accepts audio as a base64 data URL or a fetchable URL,
derives tempo, key and energy, and stores results per track.

Example:
  analyzer-api serve
  analyzer-api serve --port 9090
  analyzer-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	deps, err := buildDependencies(cfg)
	if err != nil {
		return err
	}

	if cfg.Analysis.Engine.Preload {
		if err := deps.Analyzer.Preload(cmd.Context()); err != nil {
			log.Printf("[WARN] extraction engine preload failed, fallbacks will be used: %v", err)
		}
	}

	address := fmt.Sprintf("%s:%d", serverHost, serverPort)
	server := api.NewServer(address)
	server.SetDependencies(deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	fmt.Printf("Starting Track Analyzer API server on %s\n", address)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-stop:
		fmt.Println("\nShutting down server...")
	case err := <-serverErr:
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		fmt.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server forced to shutdown: %v\n", err)
		return err
	}

	fmt.Println("Server gracefully stopped")
	return nil
}

// buildDependencies wires the database, analyzer and supporting services
func buildDependencies(cfg *config.Config) (*types.Dependencies, error) {
	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	handle := analyzer.NewEngineHandle(analyzer.AubioFactory(
		cfg.Analysis.Engine.AubioPath,
		cfg.Analysis.Engine.Timeout,
	))

	options := download.DefaultOptions()
	if cfg.Analysis.MaxUploadBytes > 0 {
		options.MaxSize = cfg.Analysis.MaxUploadBytes
	}
	if cfg.Analysis.FetchTimeout > 0 {
		options.Timeout = cfg.Analysis.FetchTimeout
	}

	return &types.Dependencies{
		DB:           db,
		Analyzer:     analyzer.New(handle, analyzer.WithTargetRate(cfg.Analysis.TargetSampleRate)),
		TrackService: tracks.NewService(tracks.NewRepository(db.DB)),
		Fetcher:      download.NewFetcher(options),
	}, nil
}
