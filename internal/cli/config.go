package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/resviz/internal/config"
)

// newConfigCmd creates the config command group.
func newConfigCmd(lookupEnv config.LookupEnvFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage resviz configuration",
		Long: `Creates, shows and validates the resviz configuration.

Settings are resolved from built-in defaults, then the config file
($RESVIZ_HOME/config.yaml or ~/.resviz/config.yaml, or --config), then
RESVIZ_* environment variables, then command-line flags.`,
	}

	cmd.AddCommand(
		newConfigInitCmd(lookupEnv),
		newConfigShowCmd(),
		newConfigValidateCmd(),
	)
	return cmd
}

func newConfigInitCmd(lookupEnv config.LookupEnvFunc) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		Annotations: map[string]string{
			annotationNoValidate:    "true",
			annotationCreatesConfig: "true",
		},
		Example: `  # Create ~/.resviz/config.yaml
  resviz config init

  # Overwrite an existing file
  resviz config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				var err error
				if path, err = config.DefaultConfigPath(lookupEnv); err != nil {
					return err
				}
			}

			if !force {
				_, err := os.Stat(path)
				if err == nil {
					return fmt.Errorf("configuration file %s already exists, use --force to overwrite", path)
				}
				if !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("cannot access config path %s: %w", path, err)
				}
			}

			if err := config.Save(config.New(), path); err != nil {
				return err
			}
			logger.Info().Ctx(cmd.Context()).Str("path", path).Msg("configuration initialized")
			cmd.Printf("Configuration written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(config.GetGlobalConfig())
			if err != nil {
				return fmt.Errorf("marshalling config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate the effective configuration",
		Annotations: map[string]string{annotationNoValidate: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.GetGlobalConfig().Validate(); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			cmd.Println("Configuration is valid")
			return nil
		},
	}
}
