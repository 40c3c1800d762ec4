package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tracktag/analyzer-api/internal/analyzer"
	"github.com/tracktag/analyzer-api/pkg/config"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a local audio file",
	Long: `Analyze a local audio file and print the derived metadata as JSON.

Supported formats are WAV, MP3 and Ogg Vorbis. When the primary
extraction engine is not installed, signal-level fallbacks are used
and the reported confidences are lower.

Example:
  analyzer-api analyze track.wav`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	handle := analyzer.NewEngineHandle(analyzer.AubioFactory(
		cfg.Analysis.Engine.AubioPath,
		cfg.Analysis.Engine.Timeout,
	))
	a := analyzer.New(handle, analyzer.WithTargetRate(cfg.Analysis.TargetSampleRate))

	result, err := a.Analyze(cmd.Context(), data)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return nil
}
