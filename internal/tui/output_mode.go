package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how results are presented.
type OutputMode int

const (
	// OutputModePlain writes unstyled text.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes Lip Gloss styled text without interaction.
	OutputModeStyled
	// OutputModeInteractive runs a Bubble Tea program.
	OutputModeInteractive
)

// fallbackWidth is used when the terminal width cannot be determined.
const fallbackWidth = 100

// DetectOutputMode picks an output mode from flags, environment and TTY state.
// NO_COLOR forces plain output; CI (or the ci flag) disables interaction.
func DetectOutputMode(forcePlain, noColor, ci bool) OutputMode {
	if forcePlain || noColor || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return OutputModePlain
	}
	if ci || os.Getenv("CI") != "" || !term.IsTerminal(int(os.Stdin.Fd())) {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// TerminalWidth returns the stdout width, or a fallback when it is not a terminal.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallbackWidth
	}
	return w
}
