package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/resviz/internal/cli/pagination"
	"github.com/rshade/resviz/internal/engine"
	"github.com/rshade/resviz/internal/tui"
)

type recordsParams struct {
	resource string
	sort     string
	output   string
	limit    int
	offset   int
	page     int
	pageSize int
}

// recordsJSONOutput is the JSON document written when pagination is requested.
type recordsJSONOutput struct {
	Records    []engine.Record            `json:"records"`
	Pagination *pagination.PaginationMeta `json:"pagination"`
}

// ndjsonPagination is the leading NDJSON line describing the page that follows.
type ndjsonPagination struct {
	Type string `json:"type"`
	pagination.PaginationMeta
}

// NewRecordsCmd creates the records command, which prints resource usage records
// without the interactive dashboard.
func NewRecordsCmd(ver string) *cobra.Command {
	var params recordsParams

	cmd := &cobra.Command{
		Use:   "records",
		Short: "Print resource usage records",
		Long: `Prints resource usage records as a table, JSON or NDJSON.

Records can be filtered to one resource type, sorted by any column key and
paginated either by page (--page with --page-size) or by offset (--offset with
--limit). A page past the end is capped to the last page.`,
		Example: `  # Print every record
  resviz records

  # Records of one resource type, most expensive first
  resviz records --resource Storage --sort Cost:desc

  # The third page of 25 records as JSON
  resviz records --page 3 --page-size 25 --output json

  # Skip 100 records and print the next 10
  resviz records --offset 100 --limit 10`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecords(cmd, ver, params)
		},
	}

	cmd.Flags().StringVar(&params.resource, "resource", "", "only records of this resource type")
	cmd.Flags().StringVar(&params.sort, "sort", "", "sort by column key, as 'field' or 'field:asc|desc'")
	cmd.Flags().StringVar(&params.output, "output", "", "Output format: table, json, or ndjson (default from config)")
	cmd.Flags().IntVar(&params.limit, "limit", 0, "maximum number of records (offset mode)")
	cmd.Flags().IntVar(&params.offset, "offset", 0, "records to skip (offset mode)")
	cmd.Flags().IntVar(&params.page, "page", 0, "page number, starting at 1 (requires --page-size)")
	cmd.Flags().IntVar(&params.pageSize, "page-size", 0, "records per page (requires --page)")

	return cmd
}

func runRecords(cmd *cobra.Command, ver string, params recordsParams) error {
	ctx := cmd.Context()
	columns := engine.DefaultColumns()

	format, err := resolveOutputFormat(params.output)
	if err != nil {
		return err
	}

	pageParams := pagination.PaginationParams{
		Limit:    params.limit,
		Offset:   params.offset,
		Page:     params.page,
		PageSize: params.pageSize,
	}
	if err = pageParams.Validate(); err != nil {
		return fmt.Errorf("invalid pagination parameters: %w", err)
	}

	sorter := pagination.NewRecordSorter(columns)
	var field, order string
	if params.sort != "" {
		field, order, err = pagination.ParseSort(params.sort)
		if err != nil {
			return fmt.Errorf("invalid sort expression: %w", err)
		}
		if _, ok := sorter.ResolveField(field); !ok {
			return fmt.Errorf("%w: %q (valid fields: %s)", pagination.ErrInvalidSortField,
				field, strings.Join(sorter.GetValidFields(), ", "))
		}
	}

	loader, err := newLoader(ver)
	if err != nil {
		return err
	}
	records, err := loader.LoadRecords(ctx, params.resource)
	if err != nil {
		return err
	}

	if field != "" {
		records = sorter.Sort(records, field, order)
		logger.Debug().Ctx(ctx).Str("field", field).Str("order", order).Msg("applied sorting")
	}

	total := len(records)
	page := pagination.Apply(pageParams, records)
	meta := pagination.NewPaginationMeta(pageParams, total)
	logger.Debug().Ctx(ctx).
		Int("total", total).
		Int("returned", len(page)).
		Int("first_row", meta.FirstRow).
		Msg("applied pagination")

	var metaOut *pagination.PaginationMeta
	if pageParams.IsEnabled() {
		metaOut = &meta
	}
	return renderRecordsOutput(cmd, format, columns, page, meta.FirstRow, metaOut)
}

// renderRecordsOutput writes a page of records. meta is nil when no pagination was
// requested, in which case JSON output is the bare record array.
func renderRecordsOutput(
	cmd *cobra.Command,
	format engine.OutputFormat,
	columns []engine.Column,
	records []engine.Record,
	firstRow int,
	meta *pagination.PaginationMeta,
) error {
	out := cmd.OutOrStdout()

	switch {
	case format == engine.OutputJSON && meta != nil:
		if records == nil {
			records = []engine.Record{}
		}
		return writeJSON(out, recordsJSONOutput{Records: records, Pagination: meta})
	case format == engine.OutputNDJSON && meta != nil:
		if err := json.NewEncoder(out).Encode(ndjsonPagination{Type: "pagination", PaginationMeta: *meta}); err != nil {
			return fmt.Errorf("encoding NDJSON pagination: %w", err)
		}
		return engine.RenderRecords(out, format, columns, records, firstRow)
	case format == engine.OutputTable && stdoutFile(cmd) != nil &&
		tui.DetectOutputMode(false, false, false) != tui.OutputModePlain:
		_, err := fmt.Fprintln(out, tui.RenderRecordsTable(columns, records, firstRow, tui.TerminalWidth()))
		if err == nil && meta != nil {
			_, err = fmt.Fprintln(out, tui.SubtleStyle.Render(pageSummary(meta, len(records))))
		}
		return err
	}

	if err := engine.RenderRecords(out, format, columns, records, firstRow); err != nil {
		return err
	}
	if format == engine.OutputTable && meta != nil {
		_, err := fmt.Fprintf(out, "\n%s\n", pageSummary(meta, len(records)))
		return err
	}
	return nil
}

func pageSummary(meta *pagination.PaginationMeta, returned int) string {
	return fmt.Sprintf("Page %d of %d (%d of %d records)",
		meta.CurrentPage, meta.TotalPages, returned, meta.TotalItems)
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
