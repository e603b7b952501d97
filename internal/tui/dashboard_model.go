package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/rshade/resviz/internal/engine"
	"github.com/rshade/resviz/internal/logging"
	"github.com/rshade/resviz/internal/tui/dropdown"
	"github.com/rshade/resviz/internal/tui/grid"
)

// DashboardTitle is the heading shown above the filter.
const DashboardTitle = "Resources Visualization"

// FilterLabel precedes the resource filter.
const FilterLabel = "Filter By resource:"

// RecordLoader fetches dashboard data.
type RecordLoader interface {
	LoadSnapshot(ctx context.Context) (*engine.Snapshot, error)
	LoadRecords(ctx context.Context, resourceType string) ([]engine.Record, error)
}

// DashboardOptions configures a DashboardModel.
type DashboardOptions struct {
	Columns   []engine.Column
	PageSize  int
	LoadDelay time.Duration
	// Resource is preselected; the first fetch is filtered by it when set.
	Resource string
}

// focusTarget is the component receiving keyboard input.
type focusTarget int

const (
	focusGrid focusTarget = iota
	focusFilter
)

// snapshotLoadedMsg carries the result of the initial fetch.
type snapshotLoadedMsg struct {
	snapshot *engine.Snapshot
	err      error
}

// filterSelectedMsg reports a new filter selection.
type filterSelectedMsg struct {
	resource string
}

// recordsLoadedMsg carries the result of a filter fetch tagged with its request sequence.
type recordsLoadedMsg struct {
	seq      uint64
	resource string
	records  []engine.Record
	err      error
}

type dashboardKeyMap struct {
	Quit       key.Binding
	ForceQuit  key.Binding
	SwitchPane key.Binding
	Refresh    key.Binding
}

func defaultDashboardKeyMap() dashboardKeyMap {
	return dashboardKeyMap{
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		SwitchPane: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch pane")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

// DashboardModel is the Bubble Tea model for the resource dashboard: a title, a
// resource filter and the record grid.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type DashboardModel struct {
	state  ViewState
	ctx    context.Context
	loader RecordLoader
	opts   DashboardOptions

	grid     *grid.Model
	filter   *dropdown.Model
	zones    *zone.Manager
	focus    focusTarget
	keys     dashboardKeyMap
	width    int
	height   int
	loading  *LoadingState
	fetching bool

	// seq identifies the latest filter request; older responses are dropped.
	seq uint64

	// err is fatal in ViewStateError and shown as a banner otherwise.
	err error
}

// NewDashboardModel creates a dashboard that loads its data from loader.
func NewDashboardModel(ctx context.Context, loader RecordLoader, opts DashboardOptions) DashboardModel {
	if len(opts.Columns) == 0 {
		opts.Columns = engine.DefaultColumns()
	}
	if opts.PageSize < 1 {
		opts.PageSize = grid.DefaultPageSize
	}
	if opts.LoadDelay < 0 {
		opts.LoadDelay = grid.DefaultLoadDelay
	}

	zones := zone.New()
	m := DashboardModel{
		state:   ViewStateLoading,
		ctx:     ctx,
		loader:  loader,
		opts:    opts,
		zones:   zones,
		keys:    defaultDashboardKeyMap(),
		width:   defaultWidth,
		height:  defaultHeight,
		loading: NewLoadingState(),
	}

	m.grid = grid.New(opts.Columns, nil, opts.PageSize,
		grid.WithLoadDelay(opts.LoadDelay),
		grid.WithStyles(GridStyles()),
		grid.WithZoneManager(zones),
	)
	m.filter = dropdown.New(nil, opts.Resource, func(value string) tea.Cmd {
		return func() tea.Msg { return filterSelectedMsg{resource: value} }
	})
	m.filter.Styles = DropdownStyles()
	m.filter.SetZoneManager(zones)
	m.setFocus(focusGrid)
	m.layout()
	return m
}

// Init starts the spinner and the initial fetch.
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.fetchSnapshot())
}

// Update handles messages and updates the model state.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.layout()
	case spinner.TickMsg:
		if m.state != ViewStateLoading && !m.fetching {
			return m, nil
		}
		return m, m.loading.Update(msg)
	case snapshotLoadedMsg:
		return m.handleSnapshotLoaded(msg)
	case filterSelectedMsg:
		return m.handleFilterSelected(msg)
	case recordsLoadedMsg:
		return m.handleRecordsLoaded(msg)
	case grid.LoadMoreMsg:
		_, cmd := m.grid.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	}
	return m, nil
}

func (m DashboardModel) handleSnapshotLoaded(msg snapshotLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.state = ViewStateError
		m.err = msg.err
		return m, nil
	}

	m.state = ViewStateList
	m.err = nil
	m.filter.SetOptions(dropdown.OptionsFromValues(msg.snapshot.Resources))

	// A preselected resource replaces the unfiltered records once it arrives.
	if m.filter.Value() != "" {
		cmds := []tea.Cmd{m.grid.SetData(msg.snapshot.Records)}
		_, cmd := m.handleFilterFetch(m.filter.Value())
		return m, tea.Batch(append(cmds, cmd)...)
	}
	return m, m.grid.SetData(msg.snapshot.Records)
}

func (m DashboardModel) handleFilterSelected(msg filterSelectedMsg) (tea.Model, tea.Cmd) {
	m.filter.SetValue(msg.resource)
	return m.handleFilterFetch(msg.resource)
}

// handleFilterFetch starts a fetch for resource, superseding any earlier one.
func (m *DashboardModel) handleFilterFetch(resource string) (tea.Model, tea.Cmd) {
	m.seq++
	m.fetching = true
	if resource == "" {
		m.loading.SetMessage("Loading all records...")
	} else {
		m.loading.SetMessage("Loading " + resource + " records...")
	}
	return *m, tea.Batch(m.loading.Init(), m.fetchRecords(m.seq, resource))
}

func (m DashboardModel) handleRecordsLoaded(msg recordsLoadedMsg) (tea.Model, tea.Cmd) {
	log := logging.FromContext(m.ctx)
	if msg.seq != m.seq {
		log.Debug().
			Str("component", "tui").
			Str("resource", msg.resource).
			Uint64("seq", msg.seq).
			Uint64("latest", m.seq).
			Msg("dropping stale filter response")
		return m, nil
	}

	m.fetching = false
	if msg.err != nil {
		// Rows stay as they were; the failure is surfaced as a banner.
		m.err = msg.err
		return m, m.layout()
	}

	m.err = nil
	cmds := []tea.Cmd{m.layout(), m.grid.SetData(msg.records)}
	return m, tea.Batch(cmds...)
}

func (m DashboardModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}

	switch m.state {
	case ViewStateLoading, ViewStateQuitting:
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
		return m, nil
	case ViewStateError:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Refresh):
			m.state = ViewStateLoading
			m.err = nil
			return m, tea.Batch(m.loading.Init(), m.fetchSnapshot())
		}
		return m, nil
	case ViewStateList:
	}

	// While the option list is open every key belongs to it.
	if m.filter.IsOpen() {
		_, cmd := m.filter.Update(msg)
		return m, tea.Batch(cmd, m.layout())
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.SwitchPane):
		if m.focus == focusGrid {
			m.setFocus(focusFilter)
		} else {
			m.setFocus(focusGrid)
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m.handleFilterFetch(m.filter.Value())
	}

	var cmd tea.Cmd
	if m.focus == focusFilter {
		_, cmd = m.filter.Update(msg)
		return m, tea.Batch(cmd, m.layout())
	}
	_, cmd = m.grid.Update(msg)
	return m, cmd
}

func (m DashboardModel) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.state != ViewStateList {
		return m, nil
	}

	wasOpen := m.filter.IsOpen()
	_, filterCmd := m.filter.Update(msg)
	if wasOpen || m.filter.IsOpen() {
		m.setFocus(focusFilter)
		return m, tea.Batch(filterCmd, m.layout())
	}

	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
		if m.zones.Get(filterZoneID).InBounds(msg) {
			m.setFocus(focusFilter)
			return m, nil
		}
		m.setFocus(focusGrid)
	}
	_, gridCmd := m.grid.Update(msg)
	return m, gridCmd
}

func (m DashboardModel) quit() (tea.Model, tea.Cmd) {
	m.state = ViewStateQuitting
	m.grid.Close()
	return m, tea.Quit
}

func (m *DashboardModel) setFocus(target focusTarget) {
	m.focus = target
	if target == focusFilter {
		m.filter.Focus()
		m.grid.Blur()
		return
	}
	m.filter.Blur()
	m.grid.Focus()
}

// layout sizes the grid to the space left under the header and above the status bar.
func (m *DashboardModel) layout() tea.Cmd {
	used := lipgloss.Height(m.renderHeader()) + lipgloss.Height(m.renderStatusBar())
	if banner := m.renderBanner(); banner != "" {
		used += lipgloss.Height(banner)
	}
	return m.grid.SetSize(m.width, max(1, m.height-used))
}

func (m DashboardModel) fetchSnapshot() tea.Cmd {
	ctx, loader := m.ctx, m.loader
	return func() tea.Msg {
		snapshot, err := loader.LoadSnapshot(ctx)
		return snapshotLoadedMsg{snapshot: snapshot, err: err}
	}
}

func (m DashboardModel) fetchRecords(seq uint64, resource string) tea.Cmd {
	ctx, loader := m.ctx, m.loader
	return func() tea.Msg {
		records, err := loader.LoadRecords(ctx, resource)
		return recordsLoadedMsg{seq: seq, resource: resource, records: records, err: err}
	}
}

// Grid returns the record grid.
func (m DashboardModel) Grid() *grid.Model { return m.grid }

// Filter returns the resource filter.
func (m DashboardModel) Filter() *dropdown.Model { return m.filter }

// State returns the current view state.
func (m DashboardModel) State() ViewState { return m.state }

// Err returns the last fetch error, if any.
func (m DashboardModel) Err() error { return m.err }
