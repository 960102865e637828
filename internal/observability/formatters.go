// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/creator-studio/internal/bulkio"
	"github.com/jonathan/creator-studio/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintStyleProfile outputs a human-readable summary of a style profile.
func (p *Printer) PrintStyleProfile(profile *types.StyleProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Creator:  %s\n", profile.CreatorID))
	sb.WriteString(fmt.Sprintf("Case:     %s\n", profile.CaseStyle))
	sb.WriteString(fmt.Sprintf("Length:   %d / %d / %d (min/optimal/max)\n",
		profile.MessageLengthPreferences.MinLength,
		profile.MessageLengthPreferences.OptimalLength,
		profile.MessageLengthPreferences.MaxLength))
	sb.WriteString("\n")

	if len(profile.SentenceSeparators) > 0 {
		sb.WriteString(fmt.Sprintf("Separators: %s\n", strings.Join(profile.SentenceSeparators, " ")))
	}
	if len(profile.ApprovedEmojis) > 0 {
		emojis := profile.ApprovedEmojis
		if len(emojis) > maxItemsToShow {
			emojis = emojis[:maxItemsToShow]
		}
		sb.WriteString(fmt.Sprintf("Emojis:     %s", strings.Join(emojis, " ")))
		if len(profile.ApprovedEmojis) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf(" ... and %d more", len(profile.ApprovedEmojis)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}
	if len(profile.TextReplacements) > 0 {
		sb.WriteString(fmt.Sprintf("Replacements:  %d\n", len(profile.TextReplacements)))
	}
	if len(profile.CommonAbbreviations) > 0 {
		sb.WriteString(fmt.Sprintf("Abbreviations: %d\n", len(profile.CommonAbbreviations)))
	}
	if len(profile.ToneRange) > 0 {
		sb.WriteString(fmt.Sprintf("Tones: %s\n", strings.Join(profile.ToneRange, ", ")))
	}
	if profile.StyleInstructions != nil && *profile.StyleInstructions != "" {
		instructions := *profile.StyleInstructions
		if len(instructions) > 50 {
			instructions = instructions[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("Notes: %s\n", instructions))
	}

	p.printBox("STYLE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintImportReport outputs the per-row outcome of a CSV import.
func (p *Printer) PrintImportReport(report *bulkio.ImportReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Rows:     %d\n", report.Total))
	sb.WriteString(fmt.Sprintf("Imported: %d\n", report.Imported))
	sb.WriteString(fmt.Sprintf("Failed:   %d\n", len(report.Failures)))

	if len(report.Failures) > 0 {
		sb.WriteString("\n")
		count := min(len(report.Failures), maxItemsToShow)
		for i := 0; i < count; i++ {
			f := report.Failures[i]
			reason := f.Reason
			if len(reason) > 45 {
				reason = reason[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("⚠ row %d: %s\n", f.Row, reason))
		}
		if len(report.Failures) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(report.Failures)-maxItemsToShow))
		}
	}

	title := "IMPORT COMPLETE"
	if report.PartialFailure() {
		title = "IMPORT COMPLETE (with failures)"
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStatsSnapshot outputs a creator statistics snapshot.
func (p *Printer) PrintStatsSnapshot(snap *types.CreatorStatsSnapshot) {
	if snap == nil {
		return
	}

	var sb strings.Builder
	name := snap.CreatorName
	if name == "" {
		name = snap.CreatorID.String()
	}
	sb.WriteString(fmt.Sprintf("Creator:  %s\n", name))
	sb.WriteString(fmt.Sprintf("Style examples:    %d\n", snap.StyleExamplesCount))
	sb.WriteString(fmt.Sprintf("Response examples: %d\n", snap.ResponseExamplesCount))
	sb.WriteString(fmt.Sprintf("Candidates:        %d\n", snap.TotalIndividualResponses))
	if snap.HasStyleConfig {
		sb.WriteString("Profile:  configured\n")
	} else {
		sb.WriteString("Profile:  defaults\n")
	}

	if len(snap.StyleCategories) > 0 {
		sb.WriteString("\nStyle categories:\n")
		writeCategoryCounts(&sb, snap.StyleCategories)
	}
	if len(snap.ResponseCategories) > 0 {
		sb.WriteString("\nResponse categories:\n")
		writeCategoryCounts(&sb, snap.ResponseCategories)
	}

	if len(snap.RecentExamples) > 0 {
		sb.WriteString("\nRecent:\n")
		count := min(len(snap.RecentExamples), maxItemsToShow)
		for i := 0; i < count; i++ {
			recent := snap.RecentExamples[i]
			msg := recent.FanMessage
			if len(msg) > 40 {
				msg = msg[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • [%s] %s\n", recent.Kind, msg))
		}
	}

	p.printBox("CREATOR STATISTICS", strings.TrimSuffix(sb.String(), "\n"))
}

func writeCategoryCounts(sb *strings.Builder, counts map[string]int) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	shown := min(len(names), maxItemsToShow)
	for i := 0; i < shown; i++ {
		sb.WriteString(fmt.Sprintf("  • %-20s %d\n", names[i], counts[names[i]]))
	}
	if len(names) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(names)-maxItemsToShow))
	}
}

// PrintNoFailures prints a compact all-clear box, used after validation
// or an import with zero row failures.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintNoFailures(label string) {
	fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ "+label)
	fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
}
