package grid

import "github.com/charmbracelet/lipgloss"

// Styles controls how the grid is drawn.
type Styles struct {
	Header        lipgloss.Style
	FocusedHeader lipgloss.Style
	Cell          lipgloss.Style
	Selected      lipgloss.Style
	RowNumber     lipgloss.Style
	Footer        lipgloss.Style
	Empty         lipgloss.Style
}

// DefaultStyles returns a plain set of styles.
func DefaultStyles() Styles {
	return Styles{
		Header:        lipgloss.NewStyle().Bold(true),
		FocusedHeader: lipgloss.NewStyle().Bold(true).Underline(true),
		Cell:          lipgloss.NewStyle(),
		Selected:      lipgloss.NewStyle().Reverse(true),
		RowNumber:     lipgloss.NewStyle().Faint(true),
		Footer:        lipgloss.NewStyle().Italic(true).Faint(true),
		Empty:         lipgloss.NewStyle().Faint(true),
	}
}
