package query

import (
	"sync"
	"time"
)

// DefaultSettleDelay is how long search or filter input must stay unchanged
// before a query fires. The accepted range for callers is 300 to 500ms; the
// point is to bound request rate under fast typing.
const DefaultSettleDelay = 350 * time.Millisecond

// Debouncer coalesces a burst of calls into a single callback once the input
// settles for the configured delay. Each Do cancels the previously scheduled
// callback, so only the final call of a burst executes.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a Debouncer with the given settle delay. A
// non-positive delay falls back to DefaultSettleDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultSettleDelay
	}
	return &Debouncer{delay: delay}
}

// Do schedules fn to run after the settle delay, replacing any pending
// callback. fn runs on a timer goroutine.
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
