package query

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// ListState holds the search, category, and paging inputs of one listing view.
type ListState struct {
	Search   string
	Category string
	Skip     int
	Limit    int
}

// FetchFunc runs one query for the given state.
type FetchFunc[T any] func(ctx context.Context, state ListState) (Page[T], error)

// ApplyFunc receives the result of a fetch that is still current.
type ApplyFunc[T any] func(state ListState, page Page[T], err error)

// LiveList drives a searchable, filterable, paginated view over a FetchFunc.
// Search and category edits are debounced and reset paging to the first
// page. Every dispatched fetch supersedes in-flight ones: a result belonging
// to a superseded fetch is discarded on arrival, so stale responses can
// never overwrite state set by a newer request (last-request-wins).
type LiveList[T any] struct {
	ctx      context.Context
	fetch    FetchFunc[T]
	apply    ApplyFunc[T]
	debounce *Debouncer

	mu    sync.Mutex
	state ListState

	seq atomic.Uint64
}

// NewLiveList creates a LiveList with the given settle delay and page size.
func NewLiveList[T any](ctx context.Context, delay time.Duration, limit int, fetch FetchFunc[T], apply ApplyFunc[T]) *LiveList[T] {
	_, limit = Clamp(0, limit)
	return &LiveList[T]{
		ctx:      ctx,
		fetch:    fetch,
		apply:    apply,
		debounce: NewDebouncer(delay),
		state:    ListState{Category: "all", Limit: limit},
	}
}

// State returns a copy of the current list state.
func (l *LiveList[T]) State() ListState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// SetSearch updates the search term. The fetch is debounced and paging
// resets to the first page.
func (l *LiveList[T]) SetSearch(search string) {
	l.mu.Lock()
	l.state.Search = search
	l.state.Skip = 0
	l.mu.Unlock()
	l.debounce.Do(l.dispatch)
}

// SetCategory updates the category filter. The fetch is debounced and paging
// resets to the first page.
func (l *LiveList[T]) SetCategory(category string) {
	l.mu.Lock()
	l.state.Category = category
	l.state.Skip = 0
	l.mu.Unlock()
	l.debounce.Do(l.dispatch)
}

// SetPage moves to the given 1-based page and fetches immediately.
func (l *LiveList[T]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	l.mu.Lock()
	l.state.Skip = (page - 1) * l.state.Limit
	l.mu.Unlock()
	l.dispatch()
}

// Refresh re-runs the current query immediately, bypassing the debounce.
func (l *LiveList[T]) Refresh() {
	l.dispatch()
}

// Stop cancels any pending debounced fetch.
func (l *LiveList[T]) Stop() {
	l.debounce.Stop()
}

func (l *LiveList[T]) dispatch() {
	token := l.seq.Add(1)

	l.mu.Lock()
	state := l.state
	l.mu.Unlock()

	go func() {
		page, err := l.fetch(l.ctx, state)
		if l.seq.Load() != token {
			return // superseded while in flight
		}
		l.apply(state, page, err)
	}()
}
