package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/creator-studio/internal/bulkio"
	"github.com/jonathan/creator-studio/internal/db"
	"github.com/jonathan/creator-studio/internal/observability"
)

var (
	importKind    string
	importCreator string
	importFile    string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import examples from a CSV file",
	Long: `Import style or response examples from a CSV file into a creator's corpus.

Style CSVs carry the header fan_message,creator_response,category.
Response CSVs carry the header fan_message,category,response_text,ranking;
rows sharing one (fan_message, category) pair become a single example with
multiple ranked candidates.

Invalid rows are skipped and reported; valid rows still commit.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importKind, "kind", "style", "Corpus kind: style or response")
	importCmd.Flags().StringVar(&importCreator, "creator", "", "Creator UUID (falls back to 'creator_id' config entry)")
	importCmd.Flags().StringVar(&importFile, "file", "", "Path to the CSV file (required)")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}

func resolveCreatorID(flagValue, configValue string) (uuid.UUID, error) {
	raw := flagValue
	if raw == "" {
		raw = configValue
	}
	if raw == "" {
		return uuid.Nil, fmt.Errorf("--creator flag or 'creator_id' config entry is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid creator ID %q: %w", raw, err)
	}
	return id, nil
}

func runImport(_ *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	databaseURL, err := requireDatabaseURL(cfg)
	if err != nil {
		return err
	}
	creatorID, err := resolveCreatorID(importCreator, cfg.CreatorID)
	if err != nil {
		return err
	}

	file, err := os.Open(importFile)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", importFile, err)
	}
	defer file.Close()

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	creator, err := database.GetCreator(ctx, creatorID)
	if err != nil {
		return err
	}
	if creator == nil {
		return fmt.Errorf("creator not found: %s", creatorID)
	}

	progress := func(percent int) {
		fmt.Printf("\rImporting... %3d%%", percent)
	}

	var report *bulkio.ImportReport
	switch importKind {
	case "style":
		report, err = bulkio.ImportStyleExamples(ctx, database, creatorID, file, progress)
	case "response":
		report, err = bulkio.ImportResponseExamples(ctx, database, creatorID, file, progress)
	default:
		return fmt.Errorf("unknown kind %q: expected style or response", importKind)
	}
	fmt.Println()
	if err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintImportReport(report)
		return nil
	}

	fmt.Println(report.Summary())
	for _, failure := range report.Failures {
		fmt.Printf("  row %d: %s\n", failure.Row, failure.Reason)
	}
	return nil
}
