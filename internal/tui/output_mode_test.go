package tui

import (
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestResolveOutputMode(t *testing.T) {
	tests := []struct {
		name       string
		forceColor bool
		noColor    bool
		plain      bool
		stdoutTTY  bool
		stdinTTY   bool
		profile    termenv.Profile
		want       OutputMode
	}{
		{name: "full terminal", stdoutTTY: true, stdinTTY: true, profile: termenv.TrueColor, want: OutputModeInteractive},
		{name: "stdin redirected", stdoutTTY: true, profile: termenv.ANSI256, want: OutputModeStyled},
		{name: "piped", stdinTTY: true, profile: termenv.TrueColor, want: OutputModePlain},
		{name: "piped with force color", forceColor: true, want: OutputModeStyled},
		{name: "plain flag wins", plain: true, forceColor: true, stdoutTTY: true, stdinTTY: true, want: OutputModePlain},
		{name: "no color", noColor: true, stdoutTTY: true, stdinTTY: true, profile: termenv.TrueColor, want: OutputModePlain},
		{name: "dumb terminal", stdoutTTY: true, stdinTTY: true, profile: termenv.Ascii, want: OutputModePlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveOutputMode(tt.forceColor, tt.noColor, tt.plain, tt.stdoutTTY, tt.stdinTTY, tt.profile)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputMode_String(t *testing.T) {
	assert.Equal(t, "plain", OutputModePlain.String())
	assert.Equal(t, "styled", OutputModeStyled.String())
	assert.Equal(t, "interactive", OutputModeInteractive.String())
	assert.Equal(t, "unknown", OutputMode(42).String())
}

func TestTerminalWidth_NotATerminal(t *testing.T) {
	// go test does not attach stdout to a terminal.
	if IsTTY() {
		t.Skip("stdout is a terminal")
	}
	assert.Equal(t, defaultWidth, TerminalWidth())
}
