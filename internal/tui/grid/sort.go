package grid

import (
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/rshade/resviz/internal/engine"
)

// Direction is a sort direction.
type Direction int

const (
	// Ascending sorts smallest first.
	Ascending Direction = iota
	// Descending sorts largest first.
	Descending
)

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Glyph returns the header indicator for the direction.
func (d Direction) Glyph() string {
	if d == Descending {
		return "▼"
	}
	return "▲"
}

// SortState is the active sort column and direction. An empty Column means data order.
type SortState struct {
	Column    string
	Direction Direction
}

// Active reports whether a sort column is set.
func (s SortState) Active() bool {
	return s.Column != ""
}

// Toggle applies a header selection: the active column flips direction, any other
// column becomes active in ascending order.
func (s *SortState) Toggle(column string) {
	if column != "" && column == s.Column {
		if s.Direction == Ascending {
			s.Direction = Descending
		} else {
			s.Direction = Ascending
		}
		return
	}
	s.Column = column
	s.Direction = Ascending
}

// Order returns the indices of rows in sorted order. The sort is stable: rows
// comparing equal keep their relative order in either direction.
func (s SortState) Order(rows []engine.Record) []int {
	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	if !s.Active() {
		return order
	}

	slices.SortStableFunc(order, func(a, b int) int {
		c := engine.CompareValues(rows[a][s.Column], rows[b][s.Column])
		if s.Direction == Descending {
			return -c
		}
		return c
	})
	return order
}

// Apply returns a sorted copy of rows.
func (s SortState) Apply(rows []engine.Record) []engine.Record {
	order := s.Order(rows)
	sorted := make([]engine.Record, len(order))
	for i, idx := range order {
		sorted[i] = rows[idx]
	}
	return sorted
}

// RowKey identifies a row for rendering: its position in data order plus a hash of
// the cells shown for it. The key survives re-sorting and re-rendering, and changes
// only when the row's position in the data or its visible content changes.
func RowKey(index int, row engine.Record, columns []engine.Column) string {
	h := xxhash.New()
	for _, c := range columns {
		_, _ = h.WriteString(c.Key)
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(engine.FormatValue(row[c.Key]))
		_, _ = h.Write([]byte{0x1f})
	}
	return fmt.Sprintf("%d-%016x", index, h.Sum64())
}
