// Package bulkio implements CSV batch ingestion and extraction for the
// example corpora. Import is row-level and intentionally non-atomic: valid
// rows commit, invalid rows are skipped and reported, so one bad row never
// discards a large valid batch.
package bulkio

import "fmt"

// RowFailure describes one skipped row. Row is the 1-based index of the data
// row in the file, not counting the header.
type RowFailure struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportReport summarizes one import invocation. A report with failures is a
// partial batch result, not an error state.
type ImportReport struct {
	Total    int          `json:"total"`
	Imported int          `json:"imported"`
	Failures []RowFailure `json:"failures"`
}

// PartialFailure reports whether some, but not all, rows were skipped.
func (r *ImportReport) PartialFailure() bool {
	return len(r.Failures) > 0 && r.Imported > 0
}

// Summary renders the human-readable outcome; the structured failures stay
// available for diagnostics.
func (r *ImportReport) Summary() string {
	if len(r.Failures) == 0 {
		return fmt.Sprintf("imported %d of %d rows", r.Imported, r.Total)
	}
	return fmt.Sprintf("imported %d of %d rows; %d failed", r.Imported, r.Total, len(r.Failures))
}

func (r *ImportReport) fail(row int, reason string) {
	r.Failures = append(r.Failures, RowFailure{Row: row, Reason: reason})
}

// ProgressFunc receives a monotonically non-decreasing percentage from 0 to
// 100. Reaching 100 coincides with corpus-refresh eligibility.
type ProgressFunc func(percent int)

// progressReporter clamps progress callbacks to be monotonic.
type progressReporter struct {
	fn   ProgressFunc
	last int
}

func (p *progressReporter) report(percent int) {
	if p.fn == nil {
		return
	}
	if percent < p.last {
		percent = p.last
	}
	if percent > 100 {
		percent = 100
	}
	p.last = percent
	p.fn(percent)
}
