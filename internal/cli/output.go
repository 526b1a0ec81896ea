package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Output destinations, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// glyph renders symbol in style unless color is disabled.
func glyph(style lipgloss.Style, symbol string) string {
	if globalNoColor {
		return symbol
	}
	return style.Render(symbol)
}

// printInfo prints an informational message
func printInfo(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stdout, "%s %s\n", glyph(infoStyle, "ℹ"), msg)
}

// printPlain prints msg without decoration
func printPlain(msg string) {
	fmt.Fprintln(stdout, msg)
}

// printErrorMsg prints an error message (different from printError which takes error type)
func printErrorMsg(msg string) {
	fmt.Fprintf(stderr, "%s %s\n", glyph(errorStyle, "✗"), msg)
}

// printProgress prints a progress indicator
func printProgress(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stdout, "%s %s\n", glyph(mutedStyle, "→"), msg)
}
