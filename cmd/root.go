package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tracktag/analyzer-api/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "analyzer-api",
	Short: "Track Analyzer API server",
	Long: `Track Analyzer API - audio feature extraction for music tracks

Derives tempo (BPM), musical key and normalized energy from raw audio
and serves the results over HTTP, optionally caching them per track.

Features:
  • WAV, MP3 and Ogg Vorbis decoding
  • Tempo and key detection with signal-level fallbacks
  • Normalized energy (loudness) measurement
  • Per-track result storage`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// loadConfig loads the configuration when a command needs it
func loadConfig() {
	// Version and help never need config
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
