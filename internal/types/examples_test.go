package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

func TestSortCandidateResponses(t *testing.T) {
	responses := []CandidateResponse{
		{ResponseText: "unrated-first", Ranking: nil, Position: 0},
		{ResponseText: "fair", Ranking: intPtr(2), Position: 1},
		{ResponseText: "best", Ranking: intPtr(5), Position: 2},
		{ResponseText: "also-fair", Ranking: intPtr(2), Position: 3},
		{ResponseText: "unrated-second", Ranking: nil, Position: 4},
		{ResponseText: "zero", Ranking: intPtr(0), Position: 5},
	}

	SortCandidateResponses(responses)

	got := make([]string, len(responses))
	for i, r := range responses {
		got[i] = r.ResponseText
	}
	// Ranking desc, nil last, ties by insertion order.
	assert.Equal(t, []string{"best", "fair", "also-fair", "zero", "unrated-first", "unrated-second"}, got)
}

func TestRankingLabel(t *testing.T) {
	tests := []struct {
		ranking  *int
		expected string
	}{
		{intPtr(5), "Best"},
		{intPtr(4), "Great"},
		{intPtr(3), "Good"},
		{intPtr(2), "Fair"},
		{intPtr(1), "Poor"},
		{intPtr(0), "Unrated"},
		{nil, "Unrated"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, RankingLabel(tt.ranking))
	}
}

func TestResponseExampleMatches(t *testing.T) {
	example := ResponseExample{
		FanMessage: "Hey, how was your day?",
		Responses: []CandidateResponse{
			{ResponseText: "It was amazing, thanks for asking!"},
			{ResponseText: "pretty good tbh"},
		},
	}

	assert.True(t, example.Matches(""))
	assert.True(t, example.Matches("HOW WAS"))
	assert.True(t, example.Matches("amazing"))
	assert.True(t, example.Matches("TBH"))
	assert.False(t, example.Matches("goodbye"))
}

func TestFilterResponseExamples(t *testing.T) {
	examples := []ResponseExample{
		{FanMessage: "hello there", Category: strPtr(CategoryGreeting)},
		{FanMessage: "what time is it", Category: strPtr(CategoryQuestion)},
		{FanMessage: "hello again", Category: nil},
	}

	all := FilterResponseExamples(examples, "", CategoryAll)
	assert.Len(t, all, 3)

	greetings := FilterResponseExamples(examples, "", CategoryGreeting)
	require.Len(t, greetings, 1)
	assert.Equal(t, "hello there", greetings[0].FanMessage)

	hello := FilterResponseExamples(examples, "hello", CategoryAll)
	assert.Len(t, hello, 2)

	none := FilterResponseExamples(examples, "hello", CategoryQuestion)
	assert.Empty(t, none)
}

func TestFilterStyleExamples(t *testing.T) {
	examples := []StyleExample{
		{FanMessage: "hello there", CreatorResponse: "hey you!", Category: strPtr(CategoryGreeting)},
		{FanMessage: "what time is it", CreatorResponse: "late, why?", Category: strPtr(CategoryQuestion)},
		{FanMessage: "hello again", CreatorResponse: "welcome back", Category: nil},
	}

	all := FilterStyleExamples(examples, "", CategoryAll)
	assert.Len(t, all, 3)

	greetings := FilterStyleExamples(examples, "", CategoryGreeting)
	require.Len(t, greetings, 1)
	assert.Equal(t, "hello there", greetings[0].FanMessage)

	// search covers the creator response too
	back := FilterStyleExamples(examples, "WELCOME", CategoryAll)
	require.Len(t, back, 1)
	assert.Equal(t, "hello again", back[0].FanMessage)

	none := FilterStyleExamples(examples, "hello", CategoryQuestion)
	assert.Empty(t, none)
}

func TestCreateStyleExampleRequestValidate(t *testing.T) {
	valid := CreateStyleExampleRequest{FanMessage: "hi", CreatorResponse: "hey!", Category: strPtr(CategoryGreeting)}
	assert.NoError(t, valid.Validate())

	missing := CreateStyleExampleRequest{FanMessage: "", CreatorResponse: "hey!"}
	assert.Error(t, missing.Validate())

	badCategory := CreateStyleExampleRequest{FanMessage: "hi", CreatorResponse: "hey!", Category: strPtr("Sarcastic")}
	assert.Error(t, badCategory.Validate())
}

func TestCreateResponseExampleRequestValidate(t *testing.T) {
	valid := CreateResponseExampleRequest{
		FanMessage: "hi",
		Responses: []CandidateResponseInput{
			{ResponseText: "hey", Ranking: intPtr(5)},
			{ResponseText: "hello"},
		},
	}
	assert.NoError(t, valid.Validate())

	noResponses := CreateResponseExampleRequest{FanMessage: "hi"}
	assert.Error(t, noResponses.Validate(), "at least one candidate response is required")

	emptyText := CreateResponseExampleRequest{
		FanMessage: "hi",
		Responses:  []CandidateResponseInput{{ResponseText: ""}},
	}
	assert.Error(t, emptyText.Validate())

	rankingTooHigh := CreateResponseExampleRequest{
		FanMessage: "hi",
		Responses:  []CandidateResponseInput{{ResponseText: "hey", Ranking: intPtr(6)}},
	}
	assert.Error(t, rankingTooHigh.Validate())
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, ValidCategory(c), c)
	}
	assert.False(t, ValidCategory("greeting"), "enum is case-sensitive")
	assert.False(t, ValidCategory("all"), "the filter wildcard is not a stored category")
	assert.False(t, ValidCategory(""))
}

func TestValidationErrorMessage(t *testing.T) {
	verr := NewValidationError()
	assert.True(t, verr.Empty())
	assert.NoError(t, verr.OrNil())

	verr.Add("name", "must not be empty")
	verr.Add("case_style", "unknown value")
	verr.Add("name", "shadowed") // first message per field wins

	err := verr.OrNil()
	require.Error(t, err)
	assert.Equal(t, "validation failed; case_style: unknown value; name: must not be empty", err.Error())
}
