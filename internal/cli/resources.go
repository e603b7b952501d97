package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/resviz/internal/engine"
	"github.com/rshade/resviz/internal/tui"
)

// NewResourcesCmd creates the resources command, which lists the resource types the
// dashboard filter offers.
func NewResourcesCmd(ver string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "resources",
		Short: "List resource types",
		Example: `  # List resource types
  resviz resources

  # As JSON
  resviz resources --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			format, err := resolveOutputFormat(output)
			if err != nil {
				return err
			}

			loader, err := newLoader(ver)
			if err != nil {
				return err
			}
			resources, err := loader.LoadResources(ctx)
			if err != nil {
				return err
			}
			logger.Debug().Ctx(ctx).Int("count", len(resources)).Msg("loaded resource types")

			if format == engine.OutputTable && stdoutFile(cmd) != nil &&
				tui.DetectOutputMode(false, false, false) != tui.OutputModePlain {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), tui.RenderResourcesList(resources))
				return err
			}
			return engine.RenderResources(cmd.OutOrStdout(), format, resources)
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "Output format: table, json, or ndjson (default from config)")
	return cmd
}
