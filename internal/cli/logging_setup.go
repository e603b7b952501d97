package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/resviz/internal/config"
	"github.com/rshade/resviz/internal/logging"
)

// setupLogging configures logging based on config file, environment, and CLI flags.
// Commands annotated as TUI commands log to a file so output never lands on the screen
// the program is drawing.
func setupLogging(cmd *cobra.Command, ver string, lookupEnv config.LookupEnvFunc) logging.LogPathResult {
	loggingCfg := config.GetLoggingConfig()
	tuiMode := cmd.Annotations[annotationTUI] == "true" && isTerminal(stdoutFile(cmd))

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		if !tuiMode {
			loggingCfg.Format = logging.FormatConsole
			loggingCfg.File = ""
		}
	}

	if tuiMode && loggingCfg.File == "" {
		file, err := config.DefaultLogFile(lookupEnv)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not resolve log file: %v\n", err)
		} else {
			loggingCfg.File = file
		}
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")

	// The TUI clears the screen, so the log path notice is only useful for debugging.
	if result.UsingFile && (!tuiMode || debug) {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).
		Str("command", cmd.Name()).
		Str("version", ver).
		Str("api_url", config.GetGlobalConfig().API.BaseURL).
		Msg("command started")

	return result
}

// cleanupLogging closes the log file handle, if any.
func cleanupLogging(cmd *cobra.Command, logResult *logging.LogPathResult) error {
	if logResult == nil {
		return nil
	}
	logger.Debug().Ctx(cmd.Context()).Str("command", cmd.Name()).Msg("command finished")
	return logResult.Close()
}
