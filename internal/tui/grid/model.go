package grid

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/rshade/resviz/internal/engine"
)

const (
	// DefaultPageSize is the number of rows revealed per load-more cycle.
	DefaultPageSize = 20

	// DefaultLoadDelay is the artificial latency before a page is appended.
	DefaultLoadDelay = time.Second

	// chromeLines is the header, its separator, and the footer line.
	chromeLines = 3

	// defaultBodyRows is used until a size is known.
	defaultBodyRows = 10

	// wheelStep is the number of rows scrolled per mouse wheel notch.
	wheelStep = 3
)

// LoadMoreMsg completes a load-more cycle started at Epoch.
type LoadMoreMsg struct {
	Epoch uint64
}

// Option configures a Model.
type Option func(*Model)

// WithLoadDelay sets the delay between reaching the last row and appending the next page.
func WithLoadDelay(d time.Duration) Option {
	return func(m *Model) {
		if d >= 0 {
			m.loadDelay = d
		}
	}
}

// WithSize sets the viewport size including header and footer lines.
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

// WithStyles sets the grid styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithKeyMap sets the grid key bindings.
func WithKeyMap(km KeyMap) Option {
	return func(m *Model) { m.keyMap = km }
}

// WithZoneManager enables mouse support for header and row clicks. The caller owns
// the manager and must Scan the final program view.
func WithZoneManager(z *zone.Manager) Option {
	return func(m *Model) {
		m.zones = z
		if z != nil {
			m.zonePrefix = z.NewPrefix()
		}
	}
}

// Model is a sortable grid over an incrementally revealed record set.
type Model struct {
	columns []engine.Column
	window  *Window
	sort    SortState

	// rows is the displayed window in sorted order; keys holds their row keys.
	rows []engine.Record
	keys []string

	cursor     int
	offset     int
	focusedCol int
	width      int
	height     int
	focused    bool

	loadDelay  time.Duration
	keyMap     KeyMap
	styles     Styles
	zones      *zone.Manager
	zonePrefix string
}

// New creates a grid showing the first pageSize rows of data.
func New(columns []engine.Column, data []engine.Record, pageSize int, opts ...Option) *Model {
	m := &Model{
		columns:   columns,
		window:    NewWindow(data, pageSize),
		focused:   true,
		loadDelay: DefaultLoadDelay,
		keyMap:    DefaultKeyMap(),
		styles:    DefaultStyles(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.refresh()
	return m
}

// Init checks whether the first page already shows its last row.
func (m *Model) Init() tea.Cmd {
	return m.CheckLoadMore()
}

// Update handles navigation, sorting, mouse and load-more messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadMoreMsg:
		return m, m.handleLoadMore(msg)
	case tea.WindowSizeMsg:
		return m, m.SetSize(msg.Width, msg.Height)
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

//nolint:cyclop // Key handling inherently requires multiple branches.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	body := m.bodyHeight()

	switch {
	case key.Matches(msg, m.keyMap.LineUp):
		m.moveCursor(-1)
	case key.Matches(msg, m.keyMap.LineDown):
		m.moveCursor(1)
	case key.Matches(msg, m.keyMap.PageUp):
		m.moveCursor(-body)
	case key.Matches(msg, m.keyMap.PageDown):
		m.moveCursor(body)
	case key.Matches(msg, m.keyMap.GotoTop):
		m.moveCursor(-len(m.rows))
	case key.Matches(msg, m.keyMap.GotoBottom):
		m.moveCursor(len(m.rows))
	case key.Matches(msg, m.keyMap.PrevColumn):
		if m.focusedCol > 0 {
			m.focusedCol--
		}
	case key.Matches(msg, m.keyMap.NextColumn):
		if m.focusedCol < len(m.columns)-1 {
			m.focusedCol++
		}
	case key.Matches(msg, m.keyMap.Sort):
		if len(m.columns) > 0 {
			m.SortBy(m.columns[m.focusedCol].Key)
		}
	default:
		// Digits select a column directly: 1-9 then 0 for the tenth.
		if s := msg.String(); len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
			idx := int(s[0]-'0') - 1
			if idx < 0 {
				idx = 9
			}
			if idx < len(m.columns) {
				m.focusedCol = idx
				m.SortBy(m.columns[idx].Key)
			}
		}
	}

	return m.CheckLoadMore()
}

func (m *Model) handleMouseMsg(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button { //nolint:exhaustive // Only wheel and left click are used.
	case tea.MouseButtonWheelUp:
		m.scrollBy(-wheelStep)
	case tea.MouseButtonWheelDown:
		m.scrollBy(wheelStep)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress || m.zones == nil {
			return nil
		}
		for i, col := range m.columns {
			if m.zones.Get(m.headerZoneID(col.Key)).InBounds(msg) {
				m.focusedCol = i
				m.SortBy(col.Key)
				return nil
			}
		}
		end := min(m.offset+m.bodyHeight(), len(m.rows))
		for i := m.offset; i < end; i++ {
			if m.zones.Get(m.rowZoneID(i)).InBounds(msg) {
				m.cursor = i
				break
			}
		}
		return nil
	default:
		return nil
	}
	return m.CheckLoadMore()
}

func (m *Model) handleLoadMore(msg LoadMoreMsg) tea.Cmd {
	if !m.window.CompleteLoad(msg.Epoch) {
		return nil
	}
	m.refresh()
	// A short page may leave the new last row on screen already.
	return m.CheckLoadMore()
}

// CheckLoadMore starts a load-more cycle when the last displayed row is on screen.
func (m *Model) CheckLoadMore() tea.Cmd {
	if !m.sentinelVisible() {
		return nil
	}
	return m.LoadMore()
}

// LoadMore starts a load-more cycle regardless of scroll position. It returns nil
// while a cycle is running or when every row is already displayed.
func (m *Model) LoadMore() tea.Cmd {
	epoch, ok := m.window.BeginLoad()
	if !ok {
		return nil
	}
	return tea.Tick(m.loadDelay, func(time.Time) tea.Msg {
		return LoadMoreMsg{Epoch: epoch}
	})
}

// SetData replaces the record set and resets the window to its first page.
// The sort selection is kept.
func (m *Model) SetData(data []engine.Record) tea.Cmd {
	m.window.Reset(data)
	m.cursor, m.offset, m.keys = 0, 0, nil
	m.refresh()
	return m.CheckLoadMore()
}

// SetPageSize changes the page size, resetting the window when it differs.
func (m *Model) SetPageSize(pageSize int) tea.Cmd {
	before := m.window.Epoch()
	m.window.SetPageSize(pageSize)
	if m.window.Epoch() == before {
		return nil
	}
	m.cursor, m.offset, m.keys = 0, 0, nil
	m.refresh()
	return m.CheckLoadMore()
}

// SetSize sets the viewport size including header and footer lines.
func (m *Model) SetSize(width, height int) tea.Cmd {
	m.width = width
	m.height = height
	m.clamp()
	return m.CheckLoadMore()
}

// SortBy applies a header selection for column key. Unknown keys are ignored.
// The selected row stays selected when it moves.
func (m *Model) SortBy(column string) {
	if engine.FindColumn(m.columns, column) < 0 {
		return
	}
	m.sort.Toggle(column)
	m.refresh()
}

// Close abandons any in-flight load-more cycle.
func (m *Model) Close() {
	m.window.Cancel()
}

// Focus enables keyboard handling.
func (m *Model) Focus() { m.focused = true }

// Blur disables keyboard handling.
func (m *Model) Blur() { m.focused = false }

// Focused reports whether the grid handles keyboard input.
func (m *Model) Focused() bool { return m.focused }

// refresh rebuilds the sorted rows from the displayed window, keeping the cursor
// on the same row when it is still displayed.
func (m *Model) refresh() {
	var selected string
	if m.cursor >= 0 && m.cursor < len(m.keys) {
		selected = m.keys[m.cursor]
	}

	displayed := m.window.Displayed()
	order := m.sort.Order(displayed)
	m.rows = make([]engine.Record, len(order))
	m.keys = make([]string, len(order))
	for i, idx := range order {
		m.rows[i] = displayed[idx]
		m.keys[i] = RowKey(idx, displayed[idx], m.columns)
		if selected != "" && m.keys[i] == selected {
			m.cursor = i
		}
	}
	m.clamp()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clamp()
}

func (m *Model) scrollBy(delta int) {
	body := m.bodyHeight()
	m.offset = max(0, min(m.offset+delta, len(m.rows)-body))
	if m.cursor < m.offset {
		m.cursor = m.offset
	}
	if m.cursor >= m.offset+body {
		m.cursor = m.offset + body - 1
	}
	m.clamp()
}

// clamp keeps the cursor in range and on screen.
func (m *Model) clamp() {
	n := len(m.rows)
	if n == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	body := m.bodyHeight()
	m.cursor = max(0, min(m.cursor, n-1))
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+body {
		m.offset = m.cursor - body + 1
	}
	m.offset = max(0, min(m.offset, n-body))
}

func (m *Model) bodyHeight() int {
	if m.height <= 0 {
		return defaultBodyRows
	}
	return max(1, m.height-chromeLines)
}

// sentinelVisible reports whether the last displayed row is within the viewport.
func (m *Model) sentinelVisible() bool {
	n := len(m.rows)
	return n > 0 && m.offset+m.bodyHeight() >= n
}

func (m *Model) headerZoneID(column string) string {
	return m.zonePrefix + "hdr-" + column
}

func (m *Model) rowZoneID(i int) string {
	return m.zonePrefix + "row-" + strconv.Itoa(i)
}

// Rows returns the displayed rows in sorted order.
func (m *Model) Rows() []engine.Record { return m.rows }

// Window returns the windowing state.
func (m *Model) Window() *Window { return m.window }

// Sort returns the active sort.
func (m *Model) Sort() SortState { return m.sort }

// Columns returns the configured columns.
func (m *Model) Columns() []engine.Column { return m.columns }

// Cursor returns the selected row position in sorted order.
func (m *Model) Cursor() int { return m.cursor }

// Offset returns the first row position on screen.
func (m *Model) Offset() int { return m.offset }

// FocusedColumn returns the index of the header focused for keyboard sorting.
func (m *Model) FocusedColumn() int { return m.focusedCol }

// SelectedRow returns the row under the cursor.
func (m *Model) SelectedRow() (engine.Record, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil, false
	}
	return m.rows[m.cursor], true
}

// Footer returns the footer text and whether it is shown. The footer is shown only
// while rows remain to be revealed.
func (m *Model) Footer() (string, bool) {
	if !m.window.HasMore() {
		return "", false
	}
	if m.window.Fetching() {
		return "loading...", true
	}
	return strconv.Itoa(len(m.rows)) + " of " + strconv.Itoa(m.window.TotalItems()) +
		" rows, scroll for more", true
}
