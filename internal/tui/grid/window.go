package grid

import (
	"github.com/rshade/resviz/internal/engine"
)

// Window tracks which prefix of the data is displayed and whether a load-more cycle
// is in flight. The displayed rows are always data[0:min(currentPage*pageSize, len(data))].
type Window struct {
	data        []engine.Record
	displayed   []engine.Record
	pageSize    int
	currentPage int
	fetching    bool

	// epoch changes whenever the data is replaced or loading is cancelled, so
	// completions scheduled before that point can be recognized and dropped.
	epoch uint64
}

// NewWindow creates a Window over data showing its first page.
// A pageSize below 1 is treated as 1.
func NewWindow(data []engine.Record, pageSize int) *Window {
	if pageSize < 1 {
		pageSize = 1
	}
	w := &Window{pageSize: pageSize}
	w.Reset(data)
	return w
}

// Reset replaces the data and starts over at the first page.
// Any in-flight load-more cycle is abandoned.
func (w *Window) Reset(data []engine.Record) {
	w.data = data
	w.currentPage = 1
	w.fetching = false
	w.epoch++
	w.recompute()
}

// SetPageSize changes the page size. A change resets the window like Reset does.
func (w *Window) SetPageSize(pageSize int) {
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize == w.pageSize {
		return
	}
	w.pageSize = pageSize
	w.Reset(w.data)
}

// HasMore reports whether rows remain beyond the displayed prefix.
func (w *Window) HasMore() bool {
	return w.currentPage*w.pageSize < len(w.data)
}

// BeginLoad starts a load-more cycle. It returns the epoch the completion must carry,
// and false when a cycle is already running or nothing remains to load.
func (w *Window) BeginLoad() (uint64, bool) {
	if w.fetching || !w.HasMore() {
		return 0, false
	}
	w.fetching = true
	return w.epoch, true
}

// CompleteLoad appends the next page when epoch matches the running cycle.
// It returns false and changes nothing for stale or unexpected completions.
func (w *Window) CompleteLoad(epoch uint64) bool {
	if !w.fetching || epoch != w.epoch {
		return false
	}
	w.currentPage++
	w.fetching = false
	w.recompute()
	return true
}

// Cancel abandons any in-flight cycle. Used on teardown.
func (w *Window) Cancel() {
	w.fetching = false
	w.epoch++
}

func (w *Window) recompute() {
	end := min(w.currentPage*w.pageSize, len(w.data))
	// Capacity is clipped so appends by a caller can never write into data.
	w.displayed = w.data[:end:end]
}

// Displayed returns the displayed prefix in data order. Callers must not modify it.
func (w *Window) Displayed() []engine.Record { return w.displayed }

// TotalItems returns the size of the full data set.
func (w *Window) TotalItems() int { return len(w.data) }

// CurrentPage returns the number of pages revealed so far (1-based).
func (w *Window) CurrentPage() int { return w.currentPage }

// PageSize returns the number of rows revealed per cycle.
func (w *Window) PageSize() int { return w.pageSize }

// Fetching reports whether a load-more cycle is in flight.
func (w *Window) Fetching() bool { return w.fetching }

// Epoch returns the current epoch.
func (w *Window) Epoch() uint64 { return w.epoch }
