package bulkio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jonathan/creator-studio/internal/types"
)

// CSV headers are part of the interchange contract and must be preserved
// exactly for compatibility.
var (
	styleExampleHeader    = []string{"fan_message", "creator_response", "category"}
	responseExampleHeader = []string{"fan_message", "category", "response_text", "ranking"}
)

// ExportStyleExamples serializes the given (already filtered) style examples
// to CSV with a header row. encoding/csv wraps fields containing commas or
// quotes and doubles internal quotes per RFC 4180.
func ExportStyleExamples(w io.Writer, examples []types.StyleExample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(styleExampleHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, e := range examples {
		category := ""
		if e.Category != nil {
			category = *e.Category
		}
		if err := cw.Write([]string{e.FanMessage, e.CreatorResponse, category}); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportResponseExamples serializes the given (already filtered) response
// examples to CSV, one output row per (example, candidate) pair. An unrated
// candidate exports an empty ranking field.
func ExportResponseExamples(w io.Writer, examples []types.ResponseExample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(responseExampleHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, e := range examples {
		category := ""
		if e.Category != nil {
			category = *e.Category
		}
		for _, c := range e.Responses {
			ranking := ""
			if c.Ranking != nil {
				ranking = strconv.Itoa(*c.Ranking)
			}
			if err := cw.Write([]string{e.FanMessage, category, c.ResponseText, ranking}); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
