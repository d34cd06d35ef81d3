package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

var (
	// ANSI Colors
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
)

var (
	// Out receives status lines.
	Out io.Writer = os.Stdout
	// Err receives error lines.
	Err io.Writer = os.Stderr

	colorEnabled bool
)

// InitColor enables ANSI colors when stdout is a terminal.
// It respects NO_COLOR (https://no-color.org/) and TERM=dumb.
func InitColor() {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		colorEnabled = false
		return
	}
	colorEnabled = term.IsTerminal(int(os.Stdout.Fd()))
}

// SetColor forces colors on or off.
func SetColor(enabled bool) {
	colorEnabled = enabled
}

func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + ColorReset
}

func PrintSuccess(label, detail string) {
	fmt.Fprintf(Out, "  %s %-10s %s\n", paint(ColorGreen, "✔"), label, paint(ColorGreen, detail))
}

func PrintError(label, detail string) {
	fmt.Fprintf(Err, "  %s %-10s %s\n", paint(ColorRed, "✘"), label, paint(ColorRed, detail))
}

func PrintWarning(label, detail string) {
	fmt.Fprintf(Out, "  %s %-10s %s\n", paint(ColorYellow, "!"), label, paint(ColorYellow, detail))
}
