package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

// Status line colors. fatih/color drops the escapes when stdout is not a terminal.
var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	boldColor    = color.New(color.Bold)
)

// statusLine writes one formatted line to color.Output, with an optional marker
func statusLine(c *color.Color, marker, format string, args []any) {
	msg := fmt.Sprintf(format, args...)
	if marker != "" {
		msg = marker + " " + msg
	}
	_, _ = c.Fprintln(color.Output, msg)
}

func PrintSuccess(format string, args ...any) { statusLine(successColor, "✓", format, args) }

func PrintError(format string, args ...any) { statusLine(errorColor, "✗", format, args) }

func PrintInfo(format string, args ...any) { statusLine(infoColor, "ℹ", format, args) }

func PrintBold(format string, args ...any) { statusLine(boldColor, "", format, args) }

// PrintSuccessBox shows the outcome of a mutation: a colored title over a field listing
func PrintSuccessBox(title, content string) {
	printBox(Styles.SuccessBox, successColor, title, content)
}

// PrintErrorBox is PrintSuccessBox for failures
func PrintErrorBox(title, content string) {
	printBox(Styles.ErrorBox, errorColor, title, content)
}

func printBox(frame lipgloss.Style, heading *color.Color, title, content string) {
	_, _ = fmt.Fprintln(color.Output, frame.Render(heading.Sprint(title)+"\n\n"+content))
}
