package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// OutputFormat selects how records are written by the non-interactive commands.
type OutputFormat string

// Supported output formats.
const (
	OutputTable  OutputFormat = "table"
	OutputJSON   OutputFormat = "json"
	OutputNDJSON OutputFormat = "ndjson"
)

// tabwriterPadding is the minimum padding between columns in plain tables.
const tabwriterPadding = 2

// maxPlainCellLen caps the width of a plain table cell.
const maxPlainCellLen = 32

// IsValid reports whether f is one of the supported formats.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputTable, OutputJSON, OutputNDJSON:
		return true
	default:
		return false
	}
}

// RenderRecords writes records in the requested format. For the table format rows are
// numbered from firstRow (1-based) so a page of a larger listing keeps its position.
func RenderRecords(w io.Writer, format OutputFormat, columns []Column, records []Record, firstRow int) error {
	switch format {
	case OutputJSON:
		return renderJSON(w, records)
	case OutputNDJSON:
		return renderNDJSON(w, records)
	case OutputTable:
		return renderRecordTable(w, columns, records, firstRow)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// RenderResources writes the resource type list in the requested format.
func RenderResources(w io.Writer, format OutputFormat, resources []string) error {
	switch format {
	case OutputJSON:
		return renderJSON(w, resources)
	case OutputNDJSON:
		enc := json.NewEncoder(w)
		for _, r := range resources {
			if err := enc.Encode(r); err != nil {
				return fmt.Errorf("encoding resource: %w", err)
			}
		}
		return nil
	case OutputTable:
		tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
		if _, err := fmt.Fprintln(tw, "#\tRESOURCE TYPE"); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		for i, r := range resources {
			if _, err := fmt.Fprintf(tw, "%d\t%s\n", i+1, r); err != nil {
				return fmt.Errorf("writing row: %w", err)
			}
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

func renderNDJSON(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding record: %w", err)
		}
	}
	return nil
}

func renderRecordTable(w io.Writer, columns []Column, records []Record, firstRow int) error {
	if firstRow < 1 {
		firstRow = 1
	}
	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	header := make([]string, 0, len(columns)+1)
	header = append(header, "#")
	for _, c := range columns {
		header = append(header, strings.ToUpper(c.Label))
	}
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range records {
		cells := make([]string, 0, len(columns)+1)
		cells = append(cells, p.Sprintf("%d", firstRow+i))
		for _, c := range columns {
			cells = append(cells, truncatePlain(formatPlainCell(p, rec[c.Key])))
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	return tw.Flush()
}

// formatPlainCell groups the integer digits of numbers; everything else uses FormatValue.
func formatPlainCell(p *message.Printer, v any) string {
	f, ok := v.(float64)
	if !ok || math.IsInf(f, 0) || math.IsNaN(f) {
		return FormatValue(v)
	}

	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}
	whole, frac, _ := strings.Cut(strconv.FormatFloat(f, 'f', -1, 64), ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return FormatValue(v)
	}
	grouped := sign + p.Sprintf("%d", n)
	if frac != "" {
		grouped += "." + frac
	}
	return grouped
}

func truncatePlain(s string) string {
	if len(s) <= maxPlainCellLen {
		return s
	}
	return s[:maxPlainCellLen-3] + "..."
}
