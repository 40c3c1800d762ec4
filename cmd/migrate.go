package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tracktag/analyzer-api/internal/database"
	"github.com/tracktag/analyzer-api/internal/models"
	"github.com/tracktag/analyzer-api/pkg/config"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	Long: `Bring the database schema up to date for the Track Analyzer API.

Creates the tracks and analyses tables when they do not exist yet and
adds any missing columns or indexes. Safe to run repeatedly.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().String("db-path", "", "database path (overrides config)")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbPath, _ := cmd.Flags().GetString("db-path")
	if dbPath == "" {
		dbPath = cfg.Database.Path
	}

	db, err := database.Initialize(dbPath, cfg.Database.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Database schema up to date at %s\n", dbPath)
	return nil
}
