// Package output provides terminal output helpers shared by historian commands.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Symbols are the status markers printed before messages.
type Symbols struct {
	Checkmark string
	Warning   string
}

var (
	unicodeSymbols = Symbols{Checkmark: "✓", Warning: "⚠"}
	asciiSymbols   = Symbols{Checkmark: "[OK]", Warning: "[WARN]"}
)

// SelectSymbols returns ASCII markers when HISTORIAN_ASCII=1, Unicode otherwise.
func SelectSymbols() Symbols {
	if os.Getenv("HISTORIAN_ASCII") == "1" {
		return asciiSymbols
	}
	return unicodeSymbols
}

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// PrintSuccess prints a green checkmark followed by message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green(SelectSymbols().Checkmark), message)
}

// PrintWarning prints a yellow warning marker, message and a dim hint.
func PrintWarning(out io.Writer, message, hint string) {
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	if hint == "" {
		fmt.Fprintf(out, "%s %s\n", yellow(SelectSymbols().Warning), message)
		return
	}
	fmt.Fprintf(out, "%s %s %s\n", yellow(SelectSymbols().Warning), message, dim("("+hint+")"))
}

// ClearScreen moves a terminal's cursor home and clears it. Other writers
// get a labelled separator line instead.
func ClearScreen(out io.Writer) {
	if IsTerminal(out) {
		fmt.Fprint(out, "\033[H\033[2J")
		return
	}
	PrintSeparator(out, "historian")
}

// PrintSeparator prints a dim line with label centered in it.
func PrintSeparator(out io.Writer, label string) {
	magenta := color.New(color.FgMagenta, color.Faint).SprintFunc()

	label = " " + label + " "
	lineLen := (GetTerminalWidth() - len(label)) / 2
	if lineLen < 3 {
		lineLen = 3
	}

	line := strings.Repeat("─", lineLen)
	fmt.Fprintf(out, "%s%s%s\n", magenta(line), magenta(label), magenta(line))
}
