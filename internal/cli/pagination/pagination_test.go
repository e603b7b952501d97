package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/resviz/internal/engine"
)

func TestPaginationParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  PaginationParams
		wantErr error
	}{
		{name: "zero value", params: PaginationParams{}},
		{name: "offset mode", params: PaginationParams{Limit: 10, Offset: 20}},
		{name: "page mode", params: PaginationParams{Page: 2, PageSize: 10}},
		{name: "negative limit", params: PaginationParams{Limit: -1}, wantErr: ErrNegativeValue},
		{name: "negative offset", params: PaginationParams{Offset: -1}, wantErr: ErrNegativeValue},
		{name: "negative page", params: PaginationParams{Page: -1}, wantErr: ErrNegativeValue},
		{name: "negative page-size", params: PaginationParams{PageSize: -1}, wantErr: ErrNegativeValue},
		{name: "mixed modes", params: PaginationParams{Page: 1, PageSize: 5, Offset: 10}, wantErr: ErrMixedPaginationModes},
		{name: "page without size", params: PaginationParams{Page: 1}, wantErr: ErrPageWithoutSize},
		{name: "size without page", params: PaginationParams{PageSize: 5}, wantErr: ErrSizeWithoutPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPaginationParams_Bounds(t *testing.T) {
	tests := []struct {
		name      string
		params    PaginationParams
		total     int
		wantStart int
		wantEnd   int
	}{
		{name: "disabled returns everything", params: PaginationParams{}, total: 45, wantStart: 0, wantEnd: 45},
		{name: "first page", params: PaginationParams{Page: 1, PageSize: 20}, total: 45, wantStart: 0, wantEnd: 20},
		{name: "last partial page", params: PaginationParams{Page: 3, PageSize: 20}, total: 45, wantStart: 40, wantEnd: 45},
		{name: "page past end caps to last", params: PaginationParams{Page: 9, PageSize: 20}, total: 45, wantStart: 40, wantEnd: 45},
		{name: "offset and limit", params: PaginationParams{Offset: 10, Limit: 5}, total: 45, wantStart: 10, wantEnd: 15},
		{name: "offset only", params: PaginationParams{Offset: 40}, total: 45, wantStart: 40, wantEnd: 45},
		{name: "offset past end", params: PaginationParams{Offset: 50, Limit: 5}, total: 45, wantStart: 45, wantEnd: 45},
		{name: "empty", params: PaginationParams{Page: 2, PageSize: 10}, total: 0, wantStart: 0, wantEnd: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.params.Bounds(tt.total)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestApply(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	assert.Equal(t, []int{4, 5, 6}, Apply(PaginationParams{Page: 2, PageSize: 3}, items))
	assert.Equal(t, []int{7}, Apply(PaginationParams{Page: 3, PageSize: 3}, items))
	assert.Empty(t, Apply(PaginationParams{Offset: 10}, items))
	assert.Equal(t, items, Apply(PaginationParams{}, items))
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		input     string
		wantField string
		wantOrder string
		wantErr   error
	}{
		{input: "Cost", wantField: "Cost", wantOrder: "asc"},
		{input: "Cost:desc", wantField: "Cost", wantOrder: "desc"},
		{input: " Date : ASC ", wantField: "Date", wantOrder: "asc"},
		{input: "", wantErr: ErrEmptySortField},
		{input: ":desc", wantErr: ErrEmptySortField},
		{input: "Cost:up", wantErr: ErrInvalidSortOrder},
		{input: "a:b:c", wantErr: ErrInvalidSortFormat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			field, order, err := ParseSort(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestRecordSorter(t *testing.T) {
	sorter := NewRecordSorter(engine.DefaultColumns())
	records := []engine.Record{
		{"Cost": 3.0, "InstanceId": "a"},
		{"Cost": 1.0, "InstanceId": "b"},
		{"Cost": 3.0, "InstanceId": "c"},
	}

	key, ok := sorter.ResolveField("cost")
	require.True(t, ok)
	assert.Equal(t, "Cost", key)
	_, ok = sorter.ResolveField("Price")
	assert.False(t, ok)
	assert.Contains(t, sorter.GetValidFields(), "MeterCategory")

	ids := func(rs []engine.Record) []any {
		out := make([]any, len(rs))
		for i, r := range rs {
			out[i] = r["InstanceId"]
		}
		return out
	}

	assert.Equal(t, []any{"b", "a", "c"}, ids(sorter.Sort(records, "Cost", SortOrderAsc)))
	assert.Equal(t, []any{"a", "c", "b"}, ids(sorter.Sort(records, "Cost", SortOrderDesc)))
	assert.Equal(t, []any{"a", "b", "c"}, ids(sorter.Sort(records, "Price", SortOrderAsc)))
	assert.Equal(t, "a", records[0]["InstanceId"], "input untouched")
}

func TestNewPaginationMeta(t *testing.T) {
	tests := []struct {
		name   string
		params PaginationParams
		total  int
		want   PaginationMeta
	}{
		{
			name:   "middle page",
			params: PaginationParams{Page: 2, PageSize: 20},
			total:  45,
			want: PaginationMeta{
				CurrentPage: 2, PageSize: 20, TotalPages: 3, TotalItems: 45,
				FirstRow: 21, HasPrevious: true, HasNext: true,
			},
		},
		{
			name:   "offset mode",
			params: PaginationParams{Offset: 40, Limit: 20},
			total:  45,
			want: PaginationMeta{
				CurrentPage: 3, PageSize: 20, TotalPages: 3, TotalItems: 45,
				FirstRow: 41, HasPrevious: true, HasNext: false,
			},
		},
		{
			name:   "unpaginated",
			params: PaginationParams{},
			total:  7,
			want: PaginationMeta{
				CurrentPage: 1, PageSize: 7, TotalPages: 1, TotalItems: 7, FirstRow: 1,
			},
		},
		{
			name:   "empty",
			params: PaginationParams{},
			total:  0,
			want:   PaginationMeta{CurrentPage: 1, FirstRow: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPaginationMeta(tt.params, tt.total))
		})
	}
}
