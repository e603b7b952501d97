package pagination

import (
	"slices"
	"strings"

	"github.com/rshade/resviz/internal/engine"
)

// Sorter sorts records by a named field.
type Sorter interface {
	// Sort returns a sorted copy of records.
	Sort(records []engine.Record, field, order string) []engine.Record
	// ResolveField maps a user-supplied field name to a record key.
	ResolveField(field string) (string, bool)
	// GetValidFields returns the accepted field names.
	GetValidFields() []string
}

// RecordSorter sorts records by any of a fixed set of columns.
type RecordSorter struct {
	columns []engine.Column
}

// NewRecordSorter creates a RecordSorter accepting the keys of columns.
func NewRecordSorter(columns []engine.Column) *RecordSorter {
	return &RecordSorter{columns: columns}
}

// ResolveField matches field against the column keys, ignoring case.
func (s *RecordSorter) ResolveField(field string) (string, bool) {
	for _, c := range s.columns {
		if strings.EqualFold(c.Key, field) {
			return c.Key, true
		}
	}
	return "", false
}

// GetValidFields returns the column keys in display order.
func (s *RecordSorter) GetValidFields() []string {
	return engine.ColumnKeys(s.columns)
}

// Sort returns a stably sorted copy of records. Unknown fields leave the order unchanged.
func (s *RecordSorter) Sort(records []engine.Record, field, order string) []engine.Record {
	sorted := slices.Clone(records)
	key, ok := s.ResolveField(field)
	if !ok {
		return sorted
	}

	slices.SortStableFunc(sorted, func(a, b engine.Record) int {
		c := engine.CompareValues(a[key], b[key])
		if order == SortOrderDesc {
			return -c
		}
		return c
	})
	return sorted
}
