package grid

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/rshade/resviz/internal/engine"
)

const (
	columnGap      = 2
	maxColumnWidth = 28
	ellipsis       = "…"
	emptyMessage   = "No records to display"
)

// View renders the header, the visible rows and the footer.
func (m *Model) View() string {
	widths := m.columnWidths()
	numWidth := len(strconv.Itoa(max(1, len(m.rows))))
	start, end := m.visibleColumns(widths, numWidth)
	gap := strings.Repeat(" ", columnGap)

	var b strings.Builder

	headers := make([]string, 0, end-start+1)
	headers = append(headers, m.styles.Header.Render(padLeft("#", numWidth)))
	for i := start; i < end; i++ {
		headers = append(headers, m.renderHeaderCell(i, widths[i]))
	}
	b.WriteString(strings.Join(headers, gap))
	b.WriteString("\n")

	ruleWidth := numWidth
	for i := start; i < end; i++ {
		ruleWidth += columnGap + widths[i]
	}
	b.WriteString(m.styles.RowNumber.Render(strings.Repeat("─", ruleWidth)))

	if len(m.rows) == 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Empty.Render(emptyMessage))
	}

	last := min(m.offset+m.bodyHeight(), len(m.rows))
	for i := m.offset; i < last; i++ {
		b.WriteString("\n")
		b.WriteString(m.renderRow(i, start, end, widths, numWidth))
	}

	if text, ok := m.Footer(); ok {
		b.WriteString("\n")
		b.WriteString(m.styles.Footer.Render(text))
	}

	return b.String()
}

func (m *Model) renderHeaderCell(i, width int) string {
	col := m.columns[i]
	label := col.Label
	if m.sort.Column == col.Key {
		label += " " + m.sort.Direction.Glyph()
	}

	style := m.styles.Header
	if m.focused && i == m.focusedCol {
		style = m.styles.FocusedHeader
	}
	cell := style.Render(pad(label, width))
	if m.zones != nil {
		cell = m.zones.Mark(m.headerZoneID(col.Key), cell)
	}
	return cell
}

func (m *Model) renderRow(i, start, end int, widths []int, numWidth int) string {
	row := m.rows[i]
	selected := m.focused && i == m.cursor

	cells := make([]string, 0, end-start+1)
	number := padLeft(strconv.Itoa(i+1), numWidth)
	if selected {
		cells = append(cells, number)
	} else {
		cells = append(cells, m.styles.RowNumber.Render(number))
	}
	for c := start; c < end; c++ {
		text := pad(engine.FormatValue(row[m.columns[c].Key]), widths[c])
		if !selected {
			text = m.styles.Cell.Render(text)
		}
		cells = append(cells, text)
	}

	line := strings.Join(cells, strings.Repeat(" ", columnGap))
	if selected {
		line = m.styles.Selected.Render(line)
	}
	if m.zones != nil {
		line = m.zones.Mark(m.rowZoneID(i), line)
	}
	return line
}

// columnWidths sizes each column to its widest header or displayed cell, capped.
// The header reserves room for the sort glyph so widths do not shift when sorting.
func (m *Model) columnWidths() []int {
	widths := make([]int, len(m.columns))
	for i, col := range m.columns {
		widths[i] = ansi.StringWidth(col.Label) + 2
	}
	for _, row := range m.rows {
		for i, col := range m.columns {
			widths[i] = max(widths[i], ansi.StringWidth(engine.FormatValue(row[col.Key])))
		}
	}
	for i := range widths {
		widths[i] = min(widths[i], maxColumnWidth)
	}
	return widths
}

// visibleColumns returns the range of columns that fit the width while keeping the
// focused column on screen. Columns scroll horizontally as focus moves right.
func (m *Model) visibleColumns(widths []int, numWidth int) (int, int) {
	n := len(widths)
	if m.width <= 0 || n == 0 {
		return 0, n
	}

	fit := func(start int) int {
		used := numWidth
		end := start
		for end < n {
			need := columnGap + widths[end]
			if used+need > m.width && end > start {
				break
			}
			used += need
			end++
		}
		return end
	}

	start := 0
	for start < m.focusedCol && m.focusedCol >= fit(start) {
		start++
	}
	return start, fit(start)
}

// pad truncates s to width cells and right-pads it with spaces.
func pad(s string, width int) string {
	s = ansi.Truncate(s, width, ellipsis)
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

func padLeft(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		s = strings.Repeat(" ", width-w) + s
	}
	return s
}
