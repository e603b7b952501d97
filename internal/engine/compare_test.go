package engine

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareValues(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{name: "numbers less", a: 2.0, b: 10.0, want: -1},
		{name: "numbers greater", a: 10.0, b: 2.0, want: 1},
		{name: "numbers equal", a: 5.0, b: 5.0, want: 0},
		{name: "numeric strings compare numerically", a: "9.5", b: "10", want: -1},
		{name: "number vs numeric string", a: 3.0, b: "2.5", want: 1},
		{name: "json number", a: json.Number("7"), b: 8.0, want: -1},
		{name: "strings lexicographic", a: "Disk", b: "VM", want: -1},
		{name: "dates lexicographic", a: "2020-11-02", b: "2020-11-01", want: 1},
		{name: "nil first", a: nil, b: "x", want: -1},
		{name: "nil last", a: 0.0, b: nil, want: 1},
		{name: "both nil", a: nil, b: nil, want: 0},
		{name: "numbers before text", a: 10.0, b: "abc", want: -1},
		{name: "numeric string before text", a: "9", b: "1a", want: -1},
		{name: "text after numbers", a: "1a", b: "10", want: 1},
		{name: "blank string is text", a: " ", b: "1", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareValues(tt.a, tt.b))
		})
	}
}

func TestCompareValues_MixedColumnOrderIsIndependentOfInput(t *testing.T) {
	want := []any{nil, "9", 10.0, "10.5", "1a", "abc"}
	inputs := [][]any{
		{"9", "10", "1a"},
		{"9", "1a", "10"},
		{"10", "9", "1a"},
		{"10", "1a", "9"},
		{"1a", "9", "10"},
		{"1a", "10", "9"},
	}
	for _, in := range inputs {
		got := slices.Clone(in)
		slices.SortStableFunc(got, CompareValues)
		assert.Equal(t, []any{"9", "10", "1a"}, got, "input %v", in)
	}

	shuffled := []any{"abc", 10.0, "1a", nil, "10.5", "9"}
	slices.SortStableFunc(shuffled, CompareValues)
	assert.Equal(t, want, shuffled)
}

func TestFormatValue(t *testing.T) {
	assert.Empty(t, FormatValue(nil))
	assert.Equal(t, "abc", FormatValue("abc"))
	assert.Equal(t, "42", FormatValue(42.0))
	assert.Equal(t, "0.125", FormatValue(0.125))
	assert.Equal(t, "true", FormatValue(true))
	assert.Equal(t, "7", FormatValue(json.Number("7")))
	assert.Equal(t, "3", FormatValue(3))
}

func TestDefaultColumns(t *testing.T) {
	cols := DefaultColumns()
	assert.Len(t, cols, 10)
	assert.Equal(t, Column{Key: "ConsumedQuantity", Label: "Consumed Quantity"}, cols[0])
	assert.Equal(t, 1, FindColumn(cols, "Cost"))
	assert.Equal(t, -1, FindColumn(cols, "Missing"))

	cols[0].Label = "changed"
	assert.Equal(t, "Consumed Quantity", DefaultColumns()[0].Label)

	seen := map[string]bool{}
	for _, k := range ColumnKeys(cols) {
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true
	}
}
