package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/resviz/internal/config"
	"github.com/rshade/resviz/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// Command annotations.
const (
	// annotationTUI marks commands that take over the terminal; their logs go to a file.
	annotationTUI = "resviz/tui"
	// annotationNoValidate marks commands that report configuration errors themselves.
	annotationNoValidate = "resviz/no-validate"
	// annotationCreatesConfig marks commands that may run before the config file exists.
	annotationCreatesConfig = "resviz/creates-config"
)

// NewRootCmd creates the root Cobra command for the resviz CLI.
// It wires up configuration, logging, tracing, and subcommands (dashboard, resources, records, config).
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit env lookup for testability.
func NewRootCmdWithEnv(ver string, lookupEnv config.LookupEnvFunc) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "resviz",
		Short:         "Explore cloud resource usage records",
		Long:          "resviz: browse, filter and sort resource usage records served by the usage API",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd, lookupEnv); err != nil {
				return err
			}
			result := setupLogging(cmd, ver, lookupEnv)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().String("config", "", "config file (default $RESVIZ_HOME/config.yaml or ~/.resviz/config.yaml)")
	cmd.PersistentFlags().String("api-url", "", "usage API base URL (overrides config and RESVIZ_API_URL)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	cmd.AddCommand(
		NewDashboardCmd(ver),
		NewResourcesCmd(ver),
		NewRecordsCmd(ver),
		newConfigCmd(lookupEnv),
	)

	return cmd
}

// loadConfig loads configuration from defaults, file and environment, applies flag
// overrides, validates the result and installs it as the global configuration.
func loadConfig(cmd *cobra.Command, lookupEnv config.LookupEnvFunc) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, lookupEnv)
	if err != nil {
		if cmd.Annotations[annotationCreatesConfig] != "true" || !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading configuration: %w", err)
		}
		cfg = config.New()
	}

	if cmd.Flags().Changed("api-url") {
		cfg.API.BaseURL, _ = cmd.Flags().GetString("api-url")
	}

	if cmd.Annotations[annotationNoValidate] != "true" {
		if err = cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}

	config.SetGlobalConfig(cfg)
	return nil
}

const rootCmdExample = `  # Open the interactive dashboard
  resviz dashboard

  # Open the dashboard filtered to one resource type, revealing 50 rows at a time
  resviz dashboard --resource "Virtual Machines" --page-size 50

  # List resource types
  resviz resources

  # Print the second page of records sorted by cost, most expensive first
  resviz records --page 2 --page-size 20 --sort Cost:desc

  # Print all records for a resource type as JSON
  resviz records --resource Storage --output json

  # Show the effective configuration
  resviz config show`
