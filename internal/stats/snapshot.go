// Package stats derives per-creator rollups from the example corpora. The
// rollups are always recomputed from the stores (optionally memoized in a
// short-lived cache) and never written back as authoritative data.
package stats

import (
	"sort"

	"github.com/jonathan/creator-studio/internal/types"
)

// DefaultRecentLimit bounds how many recent examples a per-creator snapshot
// carries.
const DefaultRecentLimit = 5

// BuildSnapshot computes a full snapshot from in-memory corpora. The db
// layer has a query-side equivalent for the bulk path; this one backs the
// per-creator path and keeps the aggregation rules testable without a
// database.
func BuildSnapshot(creator *types.Creator, styleExamples []types.StyleExample, responseExamples []types.ResponseExample, hasStyleConfig bool, recentLimit int) *types.CreatorStatsSnapshot {
	s := types.ZeroStatsSnapshot(creator.ID, creator.Name)
	s.HasStyleConfig = hasStyleConfig
	s.StyleExamplesCount = len(styleExamples)
	s.ResponseExamplesCount = len(responseExamples)
	s.TotalExamples = len(styleExamples) + len(responseExamples)

	for _, example := range styleExamples {
		if example.Category != nil {
			s.StyleCategories[*example.Category]++
		}
	}
	for _, example := range responseExamples {
		s.TotalIndividualResponses += len(example.Responses)
		if example.Category != nil {
			s.ResponseCategories[*example.Category]++
		}
	}

	s.RecentExamples = recentExamples(styleExamples, responseExamples, recentLimit)
	return s
}

// recentExamples merges both corpora newest-first and truncates to limit.
func recentExamples(styleExamples []types.StyleExample, responseExamples []types.ResponseExample, limit int) []types.RecentExample {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	merged := make([]types.RecentExample, 0, len(styleExamples)+len(responseExamples))
	for _, example := range styleExamples {
		merged = append(merged, types.RecentExample{
			ID:         example.ID,
			Kind:       types.ExampleKindStyle,
			FanMessage: example.FanMessage,
			Category:   example.Category,
			CreatedAt:  example.CreatedAt,
		})
	}
	for _, example := range responseExamples {
		merged = append(merged, types.RecentExample{
			ID:         example.ID,
			Kind:       types.ExampleKindResponse,
			FanMessage: example.FanMessage,
			Category:   example.Category,
			CreatedAt:  example.CreatedAt,
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}
