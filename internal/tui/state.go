package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewState is the top-level state of an interactive view.
type ViewState int

const (
	// ViewStateLoading shows a spinner while initial data is fetched.
	ViewStateLoading ViewState = iota
	// ViewStateList shows the record grid.
	ViewStateList
	// ViewStateError shows an error that prevented any data from loading.
	ViewStateError
	// ViewStateQuitting renders nothing while the program exits.
	ViewStateQuitting
)

// Fallback terminal size used before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 120
	defaultHeight = 30
)

// LoadingState is a spinner with a message.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState creates a LoadingState with the default message.
func NewLoadingState() *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = InfoStyle
	return &LoadingState{spinner: s, message: "Loading resources..."}
}

// Init starts the spinner.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner on its tick messages.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// SetMessage sets the text shown next to the spinner.
func (l *LoadingState) SetMessage(message string) {
	l.message = message
}

// Spinner returns the current spinner frame.
func (l *LoadingState) Spinner() string {
	return l.spinner.View()
}

// RenderLoading returns the string to display for a loading screen.
func RenderLoading(loading *LoadingState) string {
	if loading == nil {
		return "Loading..."
	}
	return fmt.Sprintf("\n %s %s\n\n", loading.spinner.View(), loading.message)
}
