package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/resviz/internal/tui/dropdown"
	"github.com/rshade/resviz/internal/tui/grid"
)

// Color palette (ANSI 256).
const (
	ColorAccent   = lipgloss.Color("39")
	ColorSubtle   = lipgloss.Color("241")
	ColorBorder   = lipgloss.Color("240")
	ColorInfo     = lipgloss.Color("86")
	ColorWarning  = lipgloss.Color("214")
	ColorCritical = lipgloss.Color("196")
	ColorSelectFg = lipgloss.Color("229")
	ColorSelectBg = lipgloss.Color("57")
)

// Shared styles.
var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	LabelStyle    = lipgloss.NewStyle().Bold(true)
	ValueStyle    = lipgloss.NewStyle()
	SubtleStyle   = lipgloss.NewStyle().Foreground(ColorSubtle)
	InfoStyle     = lipgloss.NewStyle().Foreground(ColorInfo)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	CriticalStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorCritical)
	BoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorBorder).Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorSelectFg).
				Background(ColorSelectBg)
)

// GridStyles returns the record grid styles used by the dashboard.
func GridStyles() grid.Styles {
	s := grid.DefaultStyles()
	s.Header = TableHeaderStyle
	s.FocusedHeader = TableHeaderStyle.Underline(true)
	s.Selected = TableSelectedStyle
	s.RowNumber = SubtleStyle
	s.Footer = InfoStyle.Italic(true)
	s.Empty = SubtleStyle
	return s
}

// DropdownStyles returns the filter dropdown styles used by the dashboard.
func DropdownStyles() dropdown.Styles {
	s := dropdown.DefaultStyles()
	s.Control = s.Control.BorderForeground(ColorBorder)
	s.FocusedControl = s.FocusedControl.BorderForeground(ColorAccent)
	s.Highlighted = s.Highlighted.UnsetReverse().
		Foreground(ColorSelectFg).
		Background(ColorSelectBg)
	s.Current = s.Current.Foreground(ColorAccent)
	return s
}
