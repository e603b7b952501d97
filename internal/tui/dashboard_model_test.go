package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/resviz/internal/engine"
	"github.com/rshade/resviz/internal/tui/dropdown"
)

type fakeLoader struct {
	mu          sync.Mutex
	snapshot    *engine.Snapshot
	snapshotErr error
	byResource  map[string][]engine.Record
	calls       []string
}

func (f *fakeLoader) LoadSnapshot(context.Context) (*engine.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "snapshot")
	if f.snapshotErr != nil {
		return nil, f.snapshotErr
	}
	return f.snapshot, nil
}

func (f *fakeLoader) LoadRecords(_ context.Context, resourceType string) ([]engine.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "records:"+resourceType)
	if resourceType == "" {
		return f.snapshot.Records, nil
	}
	return f.byResource[resourceType], nil
}

func testRecords(n int, meter string) []engine.Record {
	records := make([]engine.Record, n)
	for i := range records {
		records[i] = engine.Record{
			"Cost":          float64(i),
			"InstanceId":    fmt.Sprintf("%s-%02d", meter, i),
			"MeterCategory": meter,
		}
	}
	return records
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		snapshot: &engine.Snapshot{
			Resources: []string{"VM", "Disk"},
			Records:   testRecords(45, "Raw"),
		},
		byResource: map[string][]engine.Record{
			"VM":   testRecords(30, "VM"),
			"Disk": testRecords(5, "Disk"),
		},
	}
}

func apply(t *testing.T, m DashboardModel, msg tea.Msg) (DashboardModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	dm, ok := updated.(DashboardModel)
	require.True(t, ok)
	return dm, cmd
}

// newLoadedDashboard returns a dashboard whose initial fetch has completed. The
// terminal is short enough that the first page does not trigger a load-more.
func newLoadedDashboard(t *testing.T, loader *fakeLoader, opts DashboardOptions) DashboardModel {
	t.Helper()
	opts.LoadDelay = 0
	m := NewDashboardModel(context.Background(), loader, opts)
	m, _ = apply(t, m, tea.WindowSizeMsg{Width: 200, Height: 20})
	m, _ = apply(t, m, m.fetchSnapshot()())
	require.Equal(t, ViewStateList, m.State())
	return m
}

func TestNewDashboardModel(t *testing.T) {
	m := NewDashboardModel(context.Background(), newFakeLoader(), DashboardOptions{})

	assert.Equal(t, ViewStateLoading, m.State())
	assert.NotNil(t, m.Init())
	assert.Equal(t, 20, m.Grid().Window().PageSize())
	assert.Len(t, m.Grid().Columns(), 10)
	assert.Contains(t, m.View(), DashboardTitle)
}

func TestDashboard_SnapshotLoaded(t *testing.T) {
	m := newLoadedDashboard(t, newFakeLoader(), DashboardOptions{})

	assert.Len(t, m.Grid().Rows(), 20)
	assert.Equal(t, 45, m.Grid().Window().TotalItems())
	assert.False(t, m.Grid().Window().Fetching())

	items := m.Filter().Items()
	require.Len(t, items, 3)
	assert.Equal(t, dropdown.Placeholder, items[0].Label)

	view := m.View()
	assert.Contains(t, view, DashboardTitle)
	assert.Contains(t, view, FilterLabel)
	assert.Contains(t, view, dropdown.Placeholder)
	assert.Contains(t, view, "Rows: 20 of 45")
}

func TestDashboard_SnapshotError(t *testing.T) {
	loader := newFakeLoader()
	loader.snapshotErr = errors.New("connection refused")

	m := NewDashboardModel(context.Background(), loader, DashboardOptions{})
	m, _ = apply(t, m, m.fetchSnapshot()())

	assert.Equal(t, ViewStateError, m.State())
	assert.Contains(t, m.View(), "connection refused")

	m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Equal(t, ViewStateLoading, m.State())
	assert.NotNil(t, cmd)
	assert.NoError(t, m.Err())
}

func TestDashboard_SelectingFilterReplacesRows(t *testing.T) {
	loader := newFakeLoader()
	m := newLoadedDashboard(t, loader, DashboardOptions{})

	cmd := m.Filter().Select("Disk")
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, filterSelectedMsg{resource: "Disk"}, msg)

	assert.Empty(t, m.Filter().Value())

	m, cmd = apply(t, m, msg)
	assert.NotNil(t, cmd)
	assert.Equal(t, "Disk", m.Filter().Value())
	assert.Equal(t, 2, m.Filter().SelectedIndex())
	assert.True(t, m.fetching)
	assert.Contains(t, m.View(), "Loading Disk records...")

	m, _ = apply(t, m, m.fetchRecords(m.seq, "Disk")())
	assert.False(t, m.fetching)
	require.Len(t, m.Grid().Rows(), 5)
	assert.Equal(t, "Disk", m.Grid().Rows()[0]["MeterCategory"])
	assert.Equal(t, 1, m.Grid().Window().CurrentPage())
	assert.Contains(t, loader.calls, "records:Disk")
}

func TestDashboard_EmptySelectionRefetchesAll(t *testing.T) {
	loader := newFakeLoader()
	m := newLoadedDashboard(t, loader, DashboardOptions{Resource: ""})

	m, _ = apply(t, m, filterSelectedMsg{resource: "VM"})
	m, _ = apply(t, m, m.fetchRecords(m.seq, "VM")())
	require.Equal(t, 30, m.Grid().Window().TotalItems())

	m, _ = apply(t, m, filterSelectedMsg{resource: ""})
	m, _ = apply(t, m, m.fetchRecords(m.seq, "")())
	assert.Equal(t, 45, m.Grid().Window().TotalItems())
	assert.Contains(t, loader.calls, "records:")
}

func TestDashboard_StaleFilterResponseDropped(t *testing.T) {
	loader := newFakeLoader()
	m := newLoadedDashboard(t, loader, DashboardOptions{})

	m, _ = apply(t, m, filterSelectedMsg{resource: "VM"})
	vmSeq := m.seq
	m, _ = apply(t, m, filterSelectedMsg{resource: "Disk"})
	diskSeq := m.seq
	require.Greater(t, diskSeq, vmSeq)

	// The slower VM response arrives after Disk was requested.
	m, _ = apply(t, m, m.fetchRecords(vmSeq, "VM")())
	assert.Equal(t, 45, m.Grid().Window().TotalItems(), "stale response ignored")
	assert.True(t, m.fetching)

	m, _ = apply(t, m, m.fetchRecords(diskSeq, "Disk")())
	assert.Equal(t, 5, m.Grid().Window().TotalItems())
}

func TestDashboard_FilterErrorKeepsRows(t *testing.T) {
	m := newLoadedDashboard(t, newFakeLoader(), DashboardOptions{})
	before := m.Grid().Rows()

	m, _ = apply(t, m, filterSelectedMsg{resource: "VM"})
	m, _ = apply(t, m, recordsLoadedMsg{seq: m.seq, resource: "VM", err: errors.New("status 502")})

	assert.Equal(t, ViewStateList, m.State())
	assert.Equal(t, before, m.Grid().Rows())
	require.Error(t, m.Err())
	assert.Contains(t, m.View(), "Error: status 502")

	// A later success clears the banner.
	m, _ = apply(t, m, filterSelectedMsg{resource: "Disk"})
	m, _ = apply(t, m, m.fetchRecords(m.seq, "Disk")())
	assert.NoError(t, m.Err())
	assert.NotContains(t, m.View(), "Error:")
}

func TestDashboard_PreselectedResource(t *testing.T) {
	loader := newFakeLoader()
	m := NewDashboardModel(context.Background(), loader, DashboardOptions{Resource: "Disk", LoadDelay: 0})
	m, cmd := apply(t, m, m.fetchSnapshot()())

	assert.NotNil(t, cmd)
	assert.True(t, m.fetching)
	assert.Equal(t, uint64(1), m.seq)
	assert.Equal(t, 2, m.Filter().SelectedIndex())
}

func TestDashboard_LoadMoreRoutedToGrid(t *testing.T) {
	m := newLoadedDashboard(t, newFakeLoader(), DashboardOptions{})

	cmd := m.Grid().LoadMore()
	require.NotNil(t, cmd)
	m, _ = apply(t, m, cmd())

	assert.Len(t, m.Grid().Rows(), 40)
	assert.Contains(t, m.View(), "Rows: 40 of 45")
}

func TestDashboard_FocusAndKeys(t *testing.T) {
	m := newLoadedDashboard(t, newFakeLoader(), DashboardOptions{})
	require.True(t, m.Grid().Focused())

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.Grid().Cursor())

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.Filter().Focused())
	assert.False(t, m.Grid().Focused())

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.Filter().IsOpen())

	// Down twice lands on Disk; enter selects it.
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, m.Filter().IsOpen())
	m, _ = apply(t, m, filterSelectedMsg{resource: "Disk"})
	assert.Equal(t, "Disk", m.Filter().Value())

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.Grid().Focused())
}

func TestDashboard_SortFromKeyboard(t *testing.T) {
	m := newLoadedDashboard(t, newFakeLoader(), DashboardOptions{})

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})

	assert.Equal(t, "Cost", m.Grid().Sort().Column)
	assert.Contains(t, m.View(), "Sort: Cost ▼")
	assert.Equal(t, 19.0, m.Grid().Rows()[0]["Cost"])
}

func TestDashboard_Quit(t *testing.T) {
	m := newLoadedDashboard(t, newFakeLoader(), DashboardOptions{})

	m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, ViewStateQuitting, m.State())
	assert.Empty(t, m.View())
}

func TestDashboard_RefreshRefetchesCurrentFilter(t *testing.T) {
	loader := newFakeLoader()
	m := newLoadedDashboard(t, loader, DashboardOptions{})
	seq := m.seq

	m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.NotNil(t, cmd)
	assert.Equal(t, seq+1, m.seq)
	assert.True(t, m.fetching)
}

func TestRenderLoading(t *testing.T) {
	assert.Equal(t, "Loading...", RenderLoading(nil))
	assert.Contains(t, RenderLoading(NewLoadingState()), "Loading resources...")
}
