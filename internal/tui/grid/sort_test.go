package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/resviz/internal/engine"
)

func TestSortState_Toggle(t *testing.T) {
	var s SortState
	assert.False(t, s.Active())

	s.Toggle("Cost")
	assert.Equal(t, SortState{Column: "Cost", Direction: Ascending}, s)

	s.Toggle("Cost")
	assert.Equal(t, SortState{Column: "Cost", Direction: Descending}, s)

	s.Toggle("Date")
	assert.Equal(t, SortState{Column: "Date", Direction: Ascending}, s)

	s.Toggle("Date")
	s.Toggle("Date")
	assert.Equal(t, Ascending, s.Direction)
}

func TestDirection_Glyph(t *testing.T) {
	assert.Equal(t, "▲", Ascending.Glyph())
	assert.Equal(t, "▼", Descending.Glyph())
	assert.Equal(t, "asc", Ascending.String())
	assert.Equal(t, "desc", Descending.String())
}

func TestSortState_OrderIsStable(t *testing.T) {
	rows := []engine.Record{
		{"Cost": 2.0, "InstanceId": "a"},
		{"Cost": 1.0, "InstanceId": "b"},
		{"Cost": 2.0, "InstanceId": "c"},
		{"Cost": 1.0, "InstanceId": "d"},
		{"Cost": 3.0, "InstanceId": "e"},
	}

	ids := func(sorted []engine.Record) []string {
		out := make([]string, len(sorted))
		for i, r := range sorted {
			out[i], _ = r["InstanceId"].(string)
		}
		return out
	}

	asc := SortState{Column: "Cost", Direction: Ascending}
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, ids(asc.Apply(rows)))

	desc := SortState{Column: "Cost", Direction: Descending}
	assert.Equal(t, []string{"e", "a", "c", "b", "d"}, ids(desc.Apply(rows)))
}

func TestSortState_NumericAndMissingValues(t *testing.T) {
	rows := []engine.Record{
		{"Cost": 100.0},
		{"Cost": "9"},
		{},
		{"Cost": 10.0},
	}

	order := SortState{Column: "Cost"}.Order(rows)
	assert.Equal(t, []int{2, 1, 3, 0}, order, "missing first, then numeric order")
}

func TestSortState_MixedColumnSameOrderForAnyInputOrder(t *testing.T) {
	ids := func(rows []engine.Record) []any {
		out := make([]any, len(rows))
		for i, r := range rows {
			out[i] = r["X"]
		}
		return out
	}

	a := SortState{Column: "X"}.Apply([]engine.Record{{"X": "1a"}, {"X": "10"}, {"X": "9"}})
	b := SortState{Column: "X"}.Apply([]engine.Record{{"X": "10"}, {"X": "9"}, {"X": "1a"}})
	assert.Equal(t, []any{"9", "10", "1a"}, ids(a))
	assert.Equal(t, ids(a), ids(b))

	desc := SortState{Column: "X", Direction: Descending}.Apply([]engine.Record{{"X": "9"}, {"X": "1a"}, {"X": "10"}})
	assert.Equal(t, []any{"1a", "10", "9"}, ids(desc))
}

func TestSortState_InactiveKeepsDataOrder(t *testing.T) {
	rows := makeRecords(5)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, SortState{}.Order(rows))
	assert.Equal(t, rows, SortState{}.Apply(rows))
}

func TestSortState_ApplyDoesNotMutateInput(t *testing.T) {
	rows := makeRecords(5)
	before := append([]engine.Record(nil), rows...)

	_ = SortState{Column: "Cost"}.Apply(rows)
	assert.Equal(t, before, rows)
}

func TestRowKey(t *testing.T) {
	cols := engine.DefaultColumns()
	row := engine.Record{"Cost": 1.5, "InstanceId": "i-1"}

	key := RowKey(3, row, cols)
	assert.Equal(t, key, RowKey(3, engine.Record{"InstanceId": "i-1", "Cost": 1.5}, cols))
	assert.NotEqual(t, key, RowKey(4, row, cols))
	assert.NotEqual(t, key, RowKey(3, engine.Record{"Cost": 2.5, "InstanceId": "i-1"}, cols))
	assert.Regexp(t, `^3-[0-9a-f]{16}$`, key)
}
