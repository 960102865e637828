// Package query provides the shared search, filter, and pagination engine
// used by creator listing and both example corpora.
package query

// Pagination bounds shared by every list endpoint.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Page is the paginated result envelope returned by every list operation.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// Clamp normalizes skip and limit to usable values.
func Clamp(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return skip, limit
}

// PageCount returns ceil(total/limit).
func PageCount(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// NewPage assembles a Page from an already-sliced window and the full count.
func NewPage[T any](items []T, total, skip, limit int) Page[T] {
	skip, limit = Clamp(skip, limit)
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items: items,
		Total: total,
		Page:  skip/limit + 1,
		Pages: PageCount(total, limit),
		Skip:  skip,
		Limit: limit,
	}
}

// Paginate slices a full, already-filtered result set in memory. This is the
// fetch-then-paginate path used by the ranked-example corpus.
func Paginate[T any](items []T, skip, limit int) Page[T] {
	skip, limit = Clamp(skip, limit)
	total := len(items)

	start := skip
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	window := make([]T, end-start)
	copy(window, items[start:end])

	return NewPage(window, total, skip, limit)
}
