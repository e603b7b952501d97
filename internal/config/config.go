package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Defaults used when neither the config file, the environment nor a flag sets a value.
const (
	CurrentVersion      = "1.0.0"
	DefaultBaseURL      = "https://engineering-task.elancoapps.com/api"
	DefaultTimeout      = 30 * time.Second
	DefaultPageSize     = 20
	DefaultLoadDelay    = time.Second
	DefaultOutputFormat = "table"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "json"
)

// supportedVersions is the range of config file versions this build understands.
const supportedVersions = ">= 1.0.0, < 2.0.0"

// Validation errors.
var (
	ErrInvalidPageSize  = errors.New("table.page_size must be > 0")
	ErrInvalidLoadDelay = errors.New("table.load_delay must be >= 0")
	ErrInvalidTimeout   = errors.New("api.timeout must be > 0")
	ErrInvalidBaseURL   = errors.New("api.base_url must be an absolute http or https URL")
	ErrInvalidFormat    = errors.New("output.default_format must be table, json or ndjson")
	ErrInvalidVersion   = errors.New("unsupported config version")
)

// Config is the resviz configuration.
type Config struct {
	Version string        `yaml:"version"  toml:"version"`
	API     APIConfig     `yaml:"api"      toml:"api"`
	Table   TableConfig   `yaml:"table"    toml:"table"`
	Output  OutputConfig  `yaml:"output"   toml:"output"`
	Logging LoggingConfig `yaml:"logging"  toml:"logging"`
}

// APIConfig locates the resource usage API.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" toml:"base_url"`
	Timeout time.Duration `yaml:"timeout"  toml:"timeout"`
}

// TableConfig controls the interactive table.
type TableConfig struct {
	// PageSize is the number of rows revealed per load-more cycle.
	PageSize int `yaml:"page_size"  toml:"page_size"`
	// LoadDelay is the simulated latency of a load-more cycle.
	LoadDelay time.Duration `yaml:"load_delay" toml:"load_delay"`
}

// OutputConfig controls non-interactive output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" toml:"default_format"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Version: CurrentVersion,
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Table: TableConfig{
			PageSize:  DefaultPageSize,
			LoadDelay: DefaultLoadDelay,
		},
		Output: OutputConfig{
			DefaultFormat: DefaultOutputFormat,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Validate checks the configuration for values the application cannot run with.
func (c *Config) Validate() error {
	if err := validateVersion(c.Version); err != nil {
		return err
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Table.PageSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.Table.PageSize)
	}
	if c.Table.LoadDelay < 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidLoadDelay, c.Table.LoadDelay)
	}

	switch c.Output.DefaultFormat {
	case "table", "json", "ndjson":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidFormat, c.Output.DefaultFormat)
	}

	return nil
}

// validateVersion checks a config file version against the supported range.
// An empty version is treated as the current one.
func validateVersion(version string) error {
	if version == "" {
		return nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q is not a semantic version: %w", ErrInvalidVersion, version, err)
	}
	constraint, err := semver.NewConstraint(supportedVersions)
	if err != nil {
		return fmt.Errorf("parsing version constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s (supported: %s)", ErrInvalidVersion, version, supportedVersions)
	}
	return nil
}
