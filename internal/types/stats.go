package types

import (
	"time"

	"github.com/google/uuid"
)

// Example kind labels used in recent-example rollups.
const (
	ExampleKindStyle    = "style"
	ExampleKindResponse = "response"
)

// RecentExample is a lightweight view of an example for stats rollups.
type RecentExample struct {
	ID         uuid.UUID `json:"id"`
	Kind       string    `json:"kind"`
	FanMessage string    `json:"fan_message"`
	Category   *string   `json:"category,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreatorStatsSnapshot is the derived per-creator rollup. It is computed on
// demand from the corpora and may be cached, but is never a source of truth.
type CreatorStatsSnapshot struct {
	CreatorID                uuid.UUID       `json:"creator_id"`
	CreatorName              string          `json:"creator_name,omitempty"`
	StyleExamplesCount       int             `json:"style_examples_count"`
	ResponseExamplesCount    int             `json:"response_examples_count"`
	TotalIndividualResponses int             `json:"total_individual_responses"`
	TotalExamples            int             `json:"total_examples"`
	StyleCategories          map[string]int  `json:"style_categories"`
	ResponseCategories       map[string]int  `json:"response_categories"`
	HasStyleConfig           bool            `json:"has_style_config"`
	RecentExamples           []RecentExample `json:"recent_examples"`
}

// ZeroStatsSnapshot builds the defaulted snapshot used by the bulk-stats
// degradation path when the aggregation backend is unavailable.
func ZeroStatsSnapshot(creatorID uuid.UUID, creatorName string) *CreatorStatsSnapshot {
	return &CreatorStatsSnapshot{
		CreatorID:          creatorID,
		CreatorName:        creatorName,
		StyleCategories:    map[string]int{},
		ResponseCategories: map[string]int{},
		RecentExamples:     []RecentExample{},
	}
}
