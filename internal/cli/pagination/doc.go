// Package pagination provides record pagination, sorting and result metadata for the
// non-interactive CLI commands.
//
// This package contains:
//   - PaginationParams: CLI flag validation and the selected item range
//   - PaginationMeta: Response metadata for paginated results
//   - Sorter: Record sorting with field validation
package pagination
