package tui

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// OutputMode selects how results are written to the terminal.
type OutputMode int

const (
	// OutputModePlain writes uncolored text suitable for pipes and files.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes colored, non-interactive output.
	OutputModeStyled
	// OutputModeInteractive runs a full-screen Bubble Tea program.
	OutputModeInteractive
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	case OutputModePlain:
		return "plain"
	default:
		return "unknown"
	}
}

// DetectOutputMode picks the richest mode the current terminal supports.
// plain and noColor force plain output; forceColor allows styled output to a non-TTY.
func DetectOutputMode(forceColor, noColor, plain bool) OutputMode {
	profile := termenv.NewOutput(os.Stdout).EnvColorProfile()
	_, noColorEnv := os.LookupEnv("NO_COLOR")
	return resolveOutputMode(forceColor, noColor || noColorEnv, plain, IsTTY(), isTerminal(os.Stdin.Fd()), profile)
}

func resolveOutputMode(
	forceColor, noColor, plain bool,
	stdoutTTY, stdinTTY bool,
	profile termenv.Profile,
) OutputMode {
	switch {
	case plain, noColor:
		return OutputModePlain
	case !stdoutTTY:
		if forceColor {
			return OutputModeStyled
		}
		return OutputModePlain
	case profile == termenv.Ascii && !forceColor:
		return OutputModePlain
	case stdinTTY:
		return OutputModeInteractive
	default:
		return OutputModeStyled
	}
}

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return isTerminal(os.Stdout.Fd())
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// TerminalWidth returns the width of stdout, or a default when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}
