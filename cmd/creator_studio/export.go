package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/creator-studio/internal/bulkio"
	"github.com/jonathan/creator-studio/internal/db"
	"github.com/jonathan/creator-studio/internal/types"
)

var (
	exportKind     string
	exportCreator  string
	exportOut      string
	exportSearch   string
	exportCategory string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a creator's examples as CSV",
	Long:  `Export a creator's style or response examples as CSV, to a file or stdout.`,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportKind, "kind", "style", "Corpus kind: style or response")
	exportCmd.Flags().StringVar(&exportCreator, "creator", "", "Creator UUID (falls back to 'creator_id' config entry)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (defaults to stdout)")
	exportCmd.Flags().StringVar(&exportSearch, "search", "", "Only export examples matching this substring")
	exportCmd.Flags().StringVar(&exportCategory, "category", "", "Only export examples in this category")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	databaseURL, err := requireDatabaseURL(cfg)
	if err != nil {
		return err
	}
	creatorID, err := resolveCreatorID(exportCreator, cfg.CreatorID)
	if err != nil {
		return err
	}
	if exportCategory != "" && exportCategory != types.CategoryAll && !types.ValidCategory(exportCategory) {
		return fmt.Errorf("invalid category %q", exportCategory)
	}

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

	var out io.Writer = os.Stdout
	if exportOut != "" {
		file, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOut, err)
		}
		defer file.Close()
		out = file
	}

	switch exportKind {
	case "style":
		examples, err := database.ListAllStyleExamples(ctx, creatorID)
		if err != nil {
			return err
		}
		examples = types.FilterStyleExamples(examples, exportSearch, exportCategory)
		if err := bulkio.ExportStyleExamples(out, examples); err != nil {
			return err
		}
		if exportOut != "" {
			fmt.Printf("Exported %d style examples to %s\n", len(examples), exportOut)
		}
	case "response":
		examples, err := database.ListResponseExamples(ctx, creatorID)
		if err != nil {
			return err
		}
		examples = types.FilterResponseExamples(examples, exportSearch, exportCategory)
		if err := bulkio.ExportResponseExamples(out, examples); err != nil {
			return err
		}
		if exportOut != "" {
			fmt.Printf("Exported %d response examples to %s\n", len(examples), exportOut)
		}
	default:
		return fmt.Errorf("unknown kind %q: expected style or response", exportKind)
	}

	return nil
}
