package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Sort orders and defaults.
const (
	DefaultSortOrder = SortOrderAsc
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Validation errors.
var (
	ErrNegativeValue        = errors.New("pagination values cannot be negative")
	ErrMixedPaginationModes = errors.New("page and offset parameters are mutually exclusive")
	ErrPageWithoutSize      = errors.New("page-size must be specified when using page")
	ErrSizeWithoutPage      = errors.New("page must be specified when using page-size")
	ErrInvalidSortFormat    = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'Cost:desc')")
	ErrEmptySortField       = errors.New("sort field cannot be empty")
	ErrInvalidSortOrder     = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortField     = errors.New("invalid sort field")
)

// PaginationParams holds CLI pagination flags. Two mutually exclusive modes are supported:
//   - Offset-based: --limit and --offset
//   - Page-based: --page and --page-size
//
//nolint:revive // PaginationParams is the canonical name for this exported type.
type PaginationParams struct {
	Limit    int
	Offset   int
	Page     int
	PageSize int
}

// Validate checks that the parameters are non-negative and use a single mode.
func (p PaginationParams) Validate() error {
	values := []struct {
		name  string
		value int
	}{{"limit", p.Limit}, {"offset", p.Offset}, {"page", p.Page}, {"page-size", p.PageSize}}
	for _, v := range values {
		if v.value < 0 {
			return fmt.Errorf("%w: %s=%d", ErrNegativeValue, v.name, v.value)
		}
	}
	if p.Page > 0 && p.Offset > 0 {
		return ErrMixedPaginationModes
	}
	if p.Page > 0 && p.PageSize == 0 {
		return ErrPageWithoutSize
	}
	if p.PageSize > 0 && p.Page == 0 {
		return ErrSizeWithoutPage
	}
	return nil
}

// IsPageBased reports whether page-based pagination is active.
func (p PaginationParams) IsPageBased() bool {
	return p.Page > 0
}

// IsEnabled reports whether any pagination parameter is set.
func (p PaginationParams) IsEnabled() bool {
	return p.Limit > 0 || p.Page > 0 || p.PageSize > 0 || p.Offset > 0
}

// Bounds returns the half-open range [start, end) of a total-item list selected by p.
// A page past the end is capped to the last page; an offset past the end selects nothing.
//
//nolint:nonamedreturns // Named returns document the range.
func (p PaginationParams) Bounds(total int) (start, end int) {
	if total == 0 {
		return 0, 0
	}

	limit := p.Limit
	if p.IsPageBased() {
		start = (p.Page - 1) * p.PageSize
		limit = p.PageSize
		if start >= total {
			start = ((total - 1) / p.PageSize) * p.PageSize
		}
	} else {
		start = min(p.Offset, total)
	}

	end = total
	if limit > 0 {
		end = min(start+limit, total)
	}
	return start, end
}

// Apply returns the items selected by p.
func Apply[T any](p PaginationParams, items []T) []T {
	start, end := p.Bounds(len(items))
	return items[start:end]
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// The order defaults to ascending.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	parts := strings.Split(sortStr, ":")
	if len(parts) > sortPartsMax {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	field = strings.TrimSpace(parts[0])
	if field == "" {
		return "", "", ErrEmptySortField
	}

	order = DefaultSortOrder
	if len(parts) == sortPartsMax {
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return field, order, nil
}
