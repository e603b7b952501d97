package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Environment variables that override config file values.
const (
	EnvHome         = "RESVIZ_HOME"
	EnvAPIURL       = "RESVIZ_API_URL"
	EnvAPITimeout   = "RESVIZ_API_TIMEOUT"
	EnvPageSize     = "RESVIZ_PAGE_SIZE"
	EnvLoadDelay    = "RESVIZ_LOAD_DELAY"
	EnvOutputFormat = "RESVIZ_OUTPUT_FORMAT"
	EnvLogLevel     = "RESVIZ_LOG_LEVEL"
	EnvLogFormat    = "RESVIZ_LOG_FORMAT"
	EnvLogFile      = "RESVIZ_LOG_FILE"
)

// configFileName is the default config file inside the config directory.
const configFileName = "config.yaml"

// LookupEnvFunc matches os.LookupEnv so tests can inject an environment.
type LookupEnvFunc func(string) (string, bool)

// Load builds a Config from defaults, the config file at path and the environment.
// When path is empty the default file is used if it exists; an explicit path must exist.
func Load(path string, lookupEnv LookupEnvFunc) (*Config, error) {
	cfg := New()

	explicit := path != ""
	if !explicit {
		dir, err := GetConfigDir(lookupEnv)
		if err == nil {
			path = filepath.Join(dir, configFileName)
		}
	}

	if path != "" {
		if err := LoadFile(cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	if err := ApplyEnv(cfg, lookupEnv); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile decodes the file at path onto cfg. Fields absent from the file keep their
// current values. The format follows the extension: .toml is TOML, anything else YAML.
func LoadFile(cfg *Config, path string) error {
	if cfg == nil {
		return errors.New("nil *Config in LoadFile")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err = toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("parsing TOML config %s: %w", path, err)
		}
	default:
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing YAML config %s: %w", path, err)
		}
	}

	return nil
}

// ApplyEnv overrides cfg with any RESVIZ_* environment variables that are set.
//
//nolint:cyclop // One branch per supported variable.
func ApplyEnv(cfg *Config, lookupEnv LookupEnvFunc) error {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	if v, ok := lookupEnv(EnvAPIURL); ok && v != "" {
		cfg.API.BaseURL = v
	}
	if v, ok := lookupEnv(EnvAPITimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvAPITimeout, v, err)
		}
		cfg.API.Timeout = d
	}
	if v, ok := lookupEnv(EnvPageSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPageSize, v, err)
		}
		cfg.Table.PageSize = n
	}
	if v, ok := lookupEnv(EnvLoadDelay); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvLoadDelay, v, err)
		}
		cfg.Table.LoadDelay = d
	}
	if v, ok := lookupEnv(EnvOutputFormat); ok && v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(v)
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v, ok := lookupEnv(EnvLogFile); ok {
		cfg.Logging.File = v
	}

	return nil
}

// GetConfigDir returns the resviz home directory: $RESVIZ_HOME or ~/.resviz.
func GetConfigDir(lookupEnv LookupEnvFunc) (string, error) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	if home, ok := lookupEnv(EnvHome); ok && home != "" {
		return home, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(userHome, ".resviz"), nil
}

// Save writes cfg as YAML to path, creating the parent directory.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// DefaultConfigPath returns the path Load reads when no --config flag is given.
func DefaultConfigPath(lookupEnv LookupEnvFunc) (string, error) {
	dir, err := GetConfigDir(lookupEnv)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
