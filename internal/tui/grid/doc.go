// Package grid provides the incrementally loading, sortable record table used by the
// resviz dashboard.
//
// The full record set is held in memory; the grid reveals it one page at a time.
// Key behaviors:
//   - Windowing: only a prefix of the data (currentPage * pageSize rows) is displayed
//   - Load-more: when the last displayed row scrolls into view, the next page is
//     appended after a configurable delay that simulates network latency
//   - Sorting: selecting a header sorts the displayed window (stable, toggling
//     ascending/descending on repeated selection)
//   - Epochs: replacing the data invalidates any in-flight load-more completion
//
// All state changes happen inside Update, so the fetching flag is the only guard
// needed against overlapping load-more cycles.
package grid
