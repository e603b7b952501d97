package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/resviz/internal/api"
	"github.com/rshade/resviz/internal/config"
	"github.com/rshade/resviz/internal/engine"
)

// newLoader builds a record loader for the configured API.
func newLoader(ver string) (*engine.Loader, error) {
	cfg := config.GetGlobalConfig()
	client, err := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithUserAgent("resviz/"+ver),
	)
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}
	return engine.NewLoader(client), nil
}

// resolveOutputFormat returns the flag value or the configured default, validated.
func resolveOutputFormat(flag string) (engine.OutputFormat, error) {
	format := engine.OutputFormat(config.GetOutputFormat(flag))
	if !format.IsValid() {
		return "", fmt.Errorf("unsupported output format %q (valid: table, json, ndjson)", format)
	}
	return format, nil
}

// stdoutFile returns the command's output as a file, or nil when it is redirected
// to something else (tests, buffers).
func stdoutFile(cmd *cobra.Command) *os.File {
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return f
	}
	return nil
}
