package types

// Category constants form the closed conversational-intent enum shared by
// both example kinds. Validation, filtering, and bulk-import parsing all
// reference this single list so accepted and stored values cannot drift.
const (
	CategoryGreeting   = "Greeting"
	CategoryQuestion   = "Question"
	CategoryCompliment = "Compliment"
	CategoryRequest    = "Request"
	CategoryProblem    = "Problem"
	CategoryFeedback   = "Feedback"
	CategoryFlirty     = "Flirty"
	CategoryCasual     = "Casual"
	CategoryFormal     = "Formal"
	CategoryOther      = "Other"
)

// CategoryAll is the filter value that matches every category, including
// uncategorized examples.
const CategoryAll = "all"

// Categories returns the closed category enum in display order.
func Categories() []string {
	return []string{
		CategoryGreeting,
		CategoryQuestion,
		CategoryCompliment,
		CategoryRequest,
		CategoryProblem,
		CategoryFeedback,
		CategoryFlirty,
		CategoryCasual,
		CategoryFormal,
		CategoryOther,
	}
}

// ValidCategory reports whether s is a member of the closed category enum.
func ValidCategory(s string) bool {
	for _, c := range Categories() {
		if s == c {
			return true
		}
	}
	return false
}
