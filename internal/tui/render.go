package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/rshade/resviz/internal/engine"
)

const maxStyledCellWidth = 28

// RenderRecordsTable renders records as a bordered, styled table for non-interactive
// terminals. Rows are numbered from firstRow. A width of zero leaves the table unconstrained.
func RenderRecordsTable(columns []engine.Column, records []engine.Record, firstRow, width int) string {
	headers := make([]string, 0, len(columns)+1)
	headers = append(headers, "#")
	for _, c := range columns {
		headers = append(headers, c.Label)
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		row := make([]string, 0, len(columns)+1)
		row = append(row, strconv.Itoa(firstRow+i))
		for _, c := range columns {
			row = append(row, ansi.Truncate(engine.FormatValue(r[c.Key]), maxStyledCellWidth, "…"))
		}
		rows[i] = row
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorBorder)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return TableHeaderStyle.Padding(0, 1)
			case col == 0:
				return SubtleStyle.Padding(0, 1)
			default:
				return cell
			}
		})
	if width > 0 {
		t = t.Width(width)
	}
	return t.Render()
}

// RenderResourcesList renders resource types as a numbered, styled list.
func RenderResourcesList(resources []string) string {
	if len(resources) == 0 {
		return SubtleStyle.Render("No resource types available")
	}
	lines := make([]string, len(resources)+1)
	lines[0] = HeaderStyle.Render("Resource Types")
	for i, r := range resources {
		lines[i+1] = SubtleStyle.Render(strconv.Itoa(i+1)+".") + " " + ValueStyle.Render(r)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
