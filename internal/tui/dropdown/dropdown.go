// Package dropdown provides a single-select control with a leading placeholder entry.
//
// The control is driven by its owner: Value reflects what the owner last set, and a
// user selection is reported through the change callback rather than applied silently.
package dropdown

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// Placeholder is the label of the leading entry whose value is the empty string.
const Placeholder = "Select your Resource"

// Option is one selectable entry.
type Option struct {
	Value string
	Label string
}

// OptionsFromValues builds options whose label equals their value.
func OptionsFromValues(values []string) []Option {
	options := make([]Option, len(values))
	for i, v := range values {
		options[i] = Option{Value: v, Label: v}
	}
	return options
}

// ChangeFunc is invoked with the newly selected value.
type ChangeFunc func(value string) tea.Cmd

// KeyMap defines the dropdown key bindings.
type KeyMap struct {
	Toggle key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Close  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(key.WithKeys(" ", "o"), key.WithHelp("space", "open")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// Styles controls how the dropdown is drawn.
type Styles struct {
	Control        lipgloss.Style
	FocusedControl lipgloss.Style
	Item           lipgloss.Style
	Highlighted    lipgloss.Style
	Current        lipgloss.Style
}

// DefaultStyles returns a plain set of styles.
func DefaultStyles() Styles {
	return Styles{
		Control:        lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		FocusedControl: lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 1),
		Item:           lipgloss.NewStyle().PaddingLeft(2),
		Highlighted:    lipgloss.NewStyle().PaddingLeft(2).Reverse(true),
		Current:        lipgloss.NewStyle().PaddingLeft(2).Bold(true),
	}
}

// Model is the dropdown state.
type Model struct {
	options   []Option
	value     string
	onChange  ChangeFunc
	open      bool
	highlight int
	focused   bool

	KeyMap KeyMap
	Styles Styles

	zones      *zone.Manager
	zonePrefix string
}

// New creates a dropdown over options with value selected.
func New(options []Option, value string, onChange ChangeFunc) *Model {
	return &Model{
		options:  options,
		value:    value,
		onChange: onChange,
		KeyMap:   DefaultKeyMap(),
		Styles:   DefaultStyles(),
	}
}

// SetZoneManager enables mouse support. The caller must Scan the final program view.
func (m *Model) SetZoneManager(z *zone.Manager) {
	m.zones = z
	m.zonePrefix = ""
	if z != nil {
		m.zonePrefix = z.NewPrefix()
	}
}

// Items returns the placeholder entry followed by the options, in order.
func (m *Model) Items() []Option {
	items := make([]Option, 0, len(m.options)+1)
	items = append(items, Option{Value: "", Label: Placeholder})
	return append(items, m.options...)
}

// SetOptions replaces the options. The current value is kept even when no option
// matches it.
func (m *Model) SetOptions(options []Option) {
	m.options = options
	m.highlight = min(m.highlight, len(options))
}

// SetValue sets the selected value without invoking the change callback.
func (m *Model) SetValue(value string) {
	m.value = value
}

// Value returns the selected value.
func (m *Model) Value() string { return m.value }

// SelectedIndex returns the index in Items of the selected value, or -1 when no
// entry carries it.
func (m *Model) SelectedIndex() int {
	for i, item := range m.Items() {
		if item.Value == m.value {
			return i
		}
	}
	return -1
}

// Select closes the list and reports value to the change callback. The displayed
// selection is left to the owner, which applies it with SetValue. Selecting the
// current value again changes nothing.
func (m *Model) Select(value string) tea.Cmd {
	m.open = false
	if value == m.value || m.onChange == nil {
		return nil
	}
	return m.onChange(value)
}

// Open shows the option list with the current selection highlighted.
func (m *Model) Open() {
	m.open = true
	m.highlight = max(0, m.SelectedIndex())
}

// Close hides the option list.
func (m *Model) Close() { m.open = false }

// IsOpen reports whether the option list is shown.
func (m *Model) IsOpen() bool { return m.open }

// Focus enables keyboard handling.
func (m *Model) Focus() { m.focused = true }

// Blur disables keyboard handling and closes the list.
func (m *Model) Blur() {
	m.focused = false
	m.open = false
}

// Focused reports whether the dropdown handles keyboard input.
func (m *Model) Focused() bool { return m.focused }

// Highlighted returns the index in Items under the keyboard cursor.
func (m *Model) Highlighted() int { return m.highlight }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update handles keyboard and mouse messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m, m.handleKeyMsg(msg)
	case tea.MouseMsg:
		return m, m.handleMouseMsg(msg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if !m.open {
		if key.Matches(msg, m.KeyMap.Toggle, m.KeyMap.Select, m.KeyMap.Down) {
			m.Open()
		}
		return nil
	}

	last := len(m.options)
	switch {
	case key.Matches(msg, m.KeyMap.Up):
		m.highlight = max(0, m.highlight-1)
	case key.Matches(msg, m.KeyMap.Down):
		m.highlight = min(last, m.highlight+1)
	case key.Matches(msg, m.KeyMap.Select):
		return m.Select(m.Items()[m.highlight].Value)
	case key.Matches(msg, m.KeyMap.Close, m.KeyMap.Toggle):
		m.open = false
	}
	return nil
}

func (m *Model) handleMouseMsg(msg tea.MouseMsg) tea.Cmd {
	if m.zones == nil || msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		return nil
	}
	if m.open {
		for i, item := range m.Items() {
			if m.zones.Get(m.itemZoneID(i)).InBounds(msg) {
				return m.Select(item.Value)
			}
		}
	}
	switch {
	case m.zones.Get(m.controlZoneID()).InBounds(msg):
		if m.open {
			m.open = false
		} else {
			m.Open()
		}
	case m.open:
		// Clicking anywhere else dismisses the list.
		m.open = false
	}
	return nil
}

// View renders the control and, when open, the option list beneath it.
func (m *Model) View() string {
	items := m.Items()
	label := m.value
	if idx := m.SelectedIndex(); idx >= 0 {
		label = items[idx].Label
	}

	style := m.Styles.Control
	if m.focused {
		style = m.Styles.FocusedControl
	}
	control := style.Render(label + " ▾")
	if m.zones != nil {
		control = m.zones.Mark(m.controlZoneID(), control)
	}
	if !m.open {
		return control
	}

	lines := make([]string, 0, len(items)+1)
	lines = append(lines, control)
	current := m.SelectedIndex()
	for i, item := range items {
		var line string
		switch i {
		case m.highlight:
			line = m.Styles.Highlighted.Render(item.Label)
		case current:
			line = m.Styles.Current.Render(item.Label)
		default:
			line = m.Styles.Item.Render(item.Label)
		}
		if m.zones != nil {
			line = m.zones.Mark(m.itemZoneID(i), line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) controlZoneID() string { return m.zonePrefix + "control" }

func (m *Model) itemZoneID(i int) string { return m.zonePrefix + "item-" + strconv.Itoa(i) }
