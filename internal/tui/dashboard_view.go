package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/resviz/internal/engine"
)

const (
	filterZoneID = "resviz-filter-label"
	helpText     = "[tab] switch pane  [enter/s] sort  [1-0] sort column  [r] refresh  [q] quit"
)

// View renders the dashboard (Bubble Tea interface).
func (m DashboardModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateError:
		return m.renderErrorView()
	case ViewStateLoading:
		return lipgloss.JoinVertical(lipgloss.Left, HeaderStyle.Render(DashboardTitle), RenderLoading(m.loading))
	case ViewStateList:
		return m.zones.Scan(m.renderListView())
	default:
		return ""
	}
}

func (m DashboardModel) renderListView() string {
	parts := []string{m.renderHeader()}
	if banner := m.renderBanner(); banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts, m.grid.View(), m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderHeader renders the title and the filter row.
func (m DashboardModel) renderHeader() string {
	label := m.zones.Mark(filterZoneID, LabelStyle.PaddingTop(1).Render(FilterLabel+" "))
	filterRow := lipgloss.JoinHorizontal(lipgloss.Top, label, m.filter.View())
	return lipgloss.JoinVertical(lipgloss.Left, HeaderStyle.Render(DashboardTitle), filterRow)
}

// renderBanner renders the last filter fetch failure, if any.
func (m DashboardModel) renderBanner() string {
	if m.err == nil || m.state != ViewStateList {
		return ""
	}
	text := ansi.Truncate("Error: "+m.err.Error(), max(1, m.width-len(" (r to retry)")), "…")
	return CriticalStyle.Render(text) + SubtleStyle.Render(" (r to retry)")
}

func (m DashboardModel) renderStatusBar() string {
	p := message.NewPrinter(language.English)

	sortLabel := "none"
	if s := m.grid.Sort(); s.Active() {
		label := s.Column
		if idx := engine.FindColumn(m.opts.Columns, s.Column); idx >= 0 {
			label = m.opts.Columns[idx].Label
		}
		sortLabel = label + " " + s.Direction.Glyph()
	}

	window := m.grid.Window()
	parts := []string{
		"Sort: " + sortLabel,
		p.Sprintf("Rows: %d of %d", len(window.Displayed()), window.TotalItems()),
	}
	if m.fetching {
		parts = append(parts, m.loading.Spinner()+" "+m.loading.message)
	}
	parts = append(parts, helpText)

	status := ansi.Truncate(strings.Join(parts, " | "), max(1, m.width), "…")
	return SubtleStyle.Render(status)
}

func (m DashboardModel) renderErrorView() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(DashboardTitle))
	b.WriteString("\n\n")
	b.WriteString(CriticalStyle.Render("Error: " + m.err.Error()))
	b.WriteString("\n\n")
	b.WriteString(SubtleStyle.Render("Press 'r' to retry, 'q' to quit"))
	return b.String()
}
