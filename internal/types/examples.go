package types

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Ranking bounds and default for candidate responses. A nil ranking means
// unrated; higher is better.
const (
	RankingMin     = 0
	RankingMax     = 5
	RankingDefault = 3
)

// RankingLabel returns the human-readable label for a candidate ranking.
func RankingLabel(ranking *int) string {
	if ranking == nil {
		return "Unrated"
	}
	switch *ranking {
	case 5:
		return "Best"
	case 4:
		return "Great"
	case 3:
		return "Good"
	case 2:
		return "Fair"
	case 1:
		return "Poor"
	default:
		return "Unrated"
	}
}

// StyleExample pairs one fan message with exactly one canonical creator
// response. Duplicate fan messages across rows are valid training signal.
type StyleExample struct {
	ID              uuid.UUID `json:"id"`
	CreatorID       uuid.UUID `json:"creator_id"`
	FanMessage      string    `json:"fan_message"`
	CreatorResponse string    `json:"creator_response"`
	Category        *string   `json:"category,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CandidateResponse is one ranked candidate within a ResponseExample.
// Position records insertion order and breaks ranking ties.
type CandidateResponse struct {
	ID           uuid.UUID `json:"id"`
	ExampleID    uuid.UUID `json:"example_id"`
	ResponseText string    `json:"response_text"`
	Ranking      *int      `json:"ranking,omitempty"`
	Position     int       `json:"position"`
	CreatedAt    time.Time `json:"created_at"`
}

// ResponseExample pairs one fan message with multiple ranked candidate
// responses. Every persisted example has at least one candidate.
type ResponseExample struct {
	ID         uuid.UUID           `json:"id"`
	CreatorID  uuid.UUID           `json:"creator_id"`
	FanMessage string              `json:"fan_message"`
	Category   *string             `json:"category,omitempty"`
	Responses  []CandidateResponse `json:"responses"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// SortCandidateResponses orders candidates for display: ranking descending,
// unrated (nil) last, ties broken by original insertion order.
func SortCandidateResponses(responses []CandidateResponse) {
	sort.SliceStable(responses, func(i, j int) bool {
		ri, rj := responses[i].Ranking, responses[j].Ranking
		switch {
		case ri == nil && rj == nil:
			return responses[i].Position < responses[j].Position
		case ri == nil:
			return false
		case rj == nil:
			return true
		case *ri != *rj:
			return *ri > *rj
		default:
			return responses[i].Position < responses[j].Position
		}
	})
}

// Matches reports whether the example matches a case-insensitive substring
// search over its fan message or any candidate response text.
func (e *ResponseExample) Matches(search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(e.FanMessage), needle) {
		return true
	}
	for _, r := range e.Responses {
		if strings.Contains(strings.ToLower(r.ResponseText), needle) {
			return true
		}
	}
	return false
}

// MatchesCategory reports whether the example passes a category filter.
// CategoryAll (or empty) matches everything, including uncategorized rows.
func (e *ResponseExample) MatchesCategory(category string) bool {
	if category == "" || category == CategoryAll {
		return true
	}
	return e.Category != nil && *e.Category == category
}

// FilterResponseExamples applies the shared search and category filters over
// an in-memory slice. The ranked-example corpus is filtered client-side over
// the full result set, a documented scalability tradeoff.
func FilterResponseExamples(examples []ResponseExample, search, category string) []ResponseExample {
	out := make([]ResponseExample, 0, len(examples))
	for _, e := range examples {
		if e.Matches(search) && e.MatchesCategory(category) {
			out = append(out, e)
		}
	}
	return out
}

// Matches reports whether the example matches a case-insensitive substring
// search over its fan message or creator response.
func (e *StyleExample) Matches(search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(e.FanMessage), needle) ||
		strings.Contains(strings.ToLower(e.CreatorResponse), needle)
}

// MatchesCategory reports whether the example passes a category filter.
// CategoryAll (or empty) matches everything, including uncategorized rows.
func (e *StyleExample) MatchesCategory(category string) bool {
	if category == "" || category == CategoryAll {
		return true
	}
	return e.Category != nil && *e.Category == category
}

// FilterStyleExamples applies the shared search and category filters over an
// in-memory slice. Export uses it so the file reflects the filtered view.
func FilterStyleExamples(examples []StyleExample, search, category string) []StyleExample {
	out := make([]StyleExample, 0, len(examples))
	for _, e := range examples {
		if e.Matches(search) && e.MatchesCategory(category) {
			out = append(out, e)
		}
	}
	return out
}

// CreateStyleExampleRequest represents the request to add a style example.
type CreateStyleExampleRequest struct {
	FanMessage      string  `json:"fan_message" validate:"required,min=1"`
	CreatorResponse string  `json:"creator_response" validate:"required,min=1"`
	Category        *string `json:"category,omitempty" validate:"omitempty,oneof=Greeting Question Compliment Request Problem Feedback Flirty Casual Formal Other"`
}

// UpdateStyleExampleRequest represents a partial style example update.
type UpdateStyleExampleRequest struct {
	FanMessage      *string `json:"fan_message,omitempty" validate:"omitempty,min=1"`
	CreatorResponse *string `json:"creator_response,omitempty" validate:"omitempty,min=1"`
	Category        *string `json:"category,omitempty" validate:"omitempty,oneof=Greeting Question Compliment Request Problem Feedback Flirty Casual Formal Other"`
}

// CandidateResponseInput is one candidate in a response example request.
// A nil ranking defaults to RankingDefault on creation.
type CandidateResponseInput struct {
	ResponseText string `json:"response_text" validate:"required,min=1"`
	Ranking      *int   `json:"ranking,omitempty" validate:"omitempty,min=0,max=5"`
}

// CreateResponseExampleRequest represents the request to add a response
// example with its ranked candidates.
type CreateResponseExampleRequest struct {
	FanMessage string                   `json:"fan_message" validate:"required,min=1"`
	Category   *string                  `json:"category,omitempty" validate:"omitempty,oneof=Greeting Question Compliment Request Problem Feedback Flirty Casual Formal Other"`
	Responses  []CandidateResponseInput `json:"responses" validate:"required,min=1,dive"`
}

// UpdateResponseExampleRequest replaces fields of a response example. When
// Responses is non-nil the full candidate set is replaced.
type UpdateResponseExampleRequest struct {
	FanMessage *string                  `json:"fan_message,omitempty" validate:"omitempty,min=1"`
	Category   *string                  `json:"category,omitempty" validate:"omitempty,oneof=Greeting Question Compliment Request Problem Feedback Flirty Casual Formal Other"`
	Responses  []CandidateResponseInput `json:"responses,omitempty" validate:"omitempty,min=1,dive"`
}

// Validate validates the CreateStyleExampleRequest using the validator.
func (r *CreateStyleExampleRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateStyleExampleRequest using the validator.
func (r *UpdateStyleExampleRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CreateResponseExampleRequest using the validator.
func (r *CreateResponseExampleRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateResponseExampleRequest using the validator.
// An explicit empty candidate set is rejected: every persisted example keeps
// at least one candidate.
func (r *UpdateResponseExampleRequest) Validate() error {
	if r.Responses != nil && len(r.Responses) == 0 {
		return fmt.Errorf("responses must contain at least one candidate")
	}
	validate := validator.New()
	return validate.Struct(r)
}
