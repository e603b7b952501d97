package config

import (
	"path/filepath"

	"github.com/rshade/resviz/internal/logging"
)

// outputTypeFile is the logging output used when a log file is configured.
const outputTypeFile = "file"

// logFileName is the default log file inside the logs directory.
const logFileName = "resviz.log"

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level"  toml:"level"`
	Format string `yaml:"format" toml:"format"`
	File   string `yaml:"file"   toml:"file"`
}

// ToLoggingConfig converts the configuration section to a logging.Config.
//
// The conversion applies these rules:
//   - Level, Format are copied directly
//   - If File is set, Output becomes "file" and File is passed through
//   - If File is empty, Output defaults to "stderr"
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = outputTypeFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// DefaultLogFile returns the log file the interactive dashboard writes to when none
// is configured, so log lines never land on the terminal the TUI is drawing.
func DefaultLogFile(lookupEnv LookupEnvFunc) (string, error) {
	dir, err := GetConfigDir(lookupEnv)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", logFileName), nil
}
