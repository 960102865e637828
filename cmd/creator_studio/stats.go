package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/creator-studio/internal/db"
	"github.com/jonathan/creator-studio/internal/observability"
	"github.com/jonathan/creator-studio/internal/stats"
)

var (
	statsCreator string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a creator's statistics snapshot",
	Long:  `Compute and print the statistics snapshot for one creator as JSON: corpus counts, category breakdowns, and recent examples.`,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsCreator, "creator", "", "Creator UUID (falls back to 'creator_id' config entry)")
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	databaseURL, err := requireDatabaseURL(cfg)
	if err != nil {
		return err
	}
	creatorID, err := resolveCreatorID(statsCreator, cfg.CreatorID)
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	snapshot, err := stats.NewAggregator(database).CreatorStats(ctx, creatorID)
	if err != nil {
		return err
	}
	if snapshot == nil {
		return fmt.Errorf("creator not found: %s", creatorID)
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintStatsSnapshot(snapshot)
		return nil
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snapshot)
}
