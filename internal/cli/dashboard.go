package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/resviz/internal/config"
	"github.com/rshade/resviz/internal/engine"
	"github.com/rshade/resviz/internal/tui"
)

type dashboardParams struct {
	pageSize  int
	loadDelay time.Duration
	resource  string
	plain     bool
}

// NewDashboardCmd creates the dashboard command, which opens the interactive record grid.
// When stdout is not a terminal the first page is printed instead.
func NewDashboardCmd(ver string) *cobra.Command {
	var params dashboardParams

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive resource usage dashboard",
		Long: `Opens a full-screen dashboard listing resource usage records.

Records are revealed one page at a time: scrolling to the last row loads the next
page after a short delay. Select a column header (click, or focus it with ←/→ and
press enter) to sort; select it again to reverse the order. Use the resource filter
to fetch only one resource type.`,
		Example: `  # Open the dashboard
  resviz dashboard

  # Start filtered, revealing 50 rows per page without the artificial delay
  resviz dashboard --resource Storage --page-size 50 --load-delay 0s`,
		Annotations: map[string]string{annotationTUI: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, ver, params)
		},
	}

	cmd.Flags().IntVar(&params.pageSize, "page-size", 0, "rows revealed per page (0 = config default)")
	cmd.Flags().DurationVar(&params.loadDelay, "load-delay", -1,
		"delay before the next page is appended (negative = config default)")
	cmd.Flags().StringVar(&params.resource, "resource", "", "preselect a resource type filter")
	cmd.Flags().BoolVar(&params.plain, "plain", false, "print the first page without styling instead of opening the dashboard")

	return cmd
}

func runDashboard(cmd *cobra.Command, ver string, params dashboardParams) error {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()

	pageSize := cfg.Table.PageSize
	if params.pageSize > 0 {
		pageSize = params.pageSize
	}
	loadDelay := cfg.Table.LoadDelay
	if params.loadDelay >= 0 {
		loadDelay = params.loadDelay
	}

	loader, err := newLoader(ver)
	if err != nil {
		return err
	}

	mode := tui.DetectOutputMode(false, false, params.plain)
	if stdoutFile(cmd) == nil {
		mode = tui.OutputModePlain
	}
	logger.Debug().Ctx(ctx).
		Str("mode", mode.String()).
		Int("page_size", pageSize).
		Dur("load_delay", loadDelay).
		Str("resource", params.resource).
		Msg("starting dashboard")

	if mode != tui.OutputModeInteractive {
		return printFirstPage(cmd, loader, params.resource, pageSize, mode)
	}

	model := tui.NewDashboardModel(ctx, loader, tui.DashboardOptions{
		Columns:   engine.DefaultColumns(),
		PageSize:  pageSize,
		LoadDelay: loadDelay,
		Resource:  params.resource,
	})
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	if dm, ok := final.(tui.DashboardModel); ok && dm.Err() != nil {
		logger.Warn().Ctx(ctx).Err(dm.Err()).Msg("dashboard exited with a fetch error")
	}
	return nil
}

// printFirstPage renders what the dashboard would show first, for terminals that
// cannot run it.
func printFirstPage(cmd *cobra.Command, loader *engine.Loader, resource string, pageSize int, mode tui.OutputMode) error {
	records, err := loader.LoadRecords(cmd.Context(), resource)
	if err != nil {
		return err
	}

	page := records[:min(pageSize, len(records))]
	columns := engine.DefaultColumns()
	out := cmd.OutOrStdout()

	if mode == tui.OutputModeStyled {
		_, _ = fmt.Fprintln(out, tui.HeaderStyle.Render(tui.DashboardTitle))
		_, _ = fmt.Fprintln(out, tui.RenderRecordsTable(columns, page, 1, tui.TerminalWidth()))
		_, _ = fmt.Fprintln(out, tui.SubtleStyle.Render(fmt.Sprintf("Showing %d of %d records", len(page), len(records))))
		return nil
	}

	if err := engine.RenderRecords(out, engine.OutputTable, columns, page, 1); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "\nShowing %d of %d records\n", len(page), len(records))
	return nil
}
