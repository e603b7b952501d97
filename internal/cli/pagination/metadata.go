package pagination

// PaginationMeta describes one page of a paginated record listing.
//
//nolint:revive // PaginationMeta is the canonical name for this exported type.
type PaginationMeta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	FirstRow    int  `json:"first_row"    yaml:"first_row"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewPaginationMeta computes metadata for params applied to totalCount items.
// FirstRow is the 1-based position of the first returned item.
func NewPaginationMeta(params PaginationParams, totalCount int) PaginationMeta {
	start, end := params.Bounds(totalCount)

	pageSize := params.PageSize
	if !params.IsPageBased() {
		pageSize = params.Limit
	}
	if pageSize == 0 {
		pageSize = totalCount
	}

	meta := PaginationMeta{
		PageSize:   pageSize,
		TotalItems: totalCount,
		FirstRow:   start + 1,
	}
	if pageSize > 0 {
		meta.CurrentPage = start/pageSize + 1
		meta.TotalPages = (totalCount + pageSize - 1) / pageSize
	} else {
		meta.CurrentPage = 1
	}
	meta.HasPrevious = start > 0
	meta.HasNext = end < totalCount
	return meta
}
