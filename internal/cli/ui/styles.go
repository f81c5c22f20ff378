package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ragar/ragarctl/internal/console"
)

// Styles defines all lipgloss styles used in the CLI
var Styles = struct {
	Bold       lipgloss.Style
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Highlight  lipgloss.Style
	Header     lipgloss.Style
	Cell       lipgloss.Style
	Border     lipgloss.Style
	SuccessBox lipgloss.Style
	ErrorBox   lipgloss.Style
}{
	Bold: lipgloss.NewStyle().Bold(true),

	Title: lipgloss.NewStyle().
		Foreground(lipgloss.Color("86")).
		Bold(true).
		MarginBottom(1),

	Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
	Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).Padding(0, 1),
	Cell:      lipgloss.NewStyle().Padding(0, 1),
	Border:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

	SuccessBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("42")).
		Padding(0, 1).
		Width(60),

	ErrorBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("196")).
		Padding(0, 1).
		Width(60),
}

var classColors = map[console.ColorClass]lipgloss.Color{
	console.ColorGreen:   lipgloss.Color("42"),
	console.ColorGray:    lipgloss.Color("245"),
	console.ColorYellow:  lipgloss.Color("220"),
	console.ColorBlue:    lipgloss.Color("39"),
	console.ColorRed:     lipgloss.Color("196"),
	console.ColorPurple:  lipgloss.Color("141"),
	console.ColorOrange:  lipgloss.Color("208"),
	console.ColorUnknown: lipgloss.Color("250"),
}

// StatusStyle returns the style for a dataset, pipeline or game status
func StatusStyle(status string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(classColors[console.StatusColor(status)])
}

// Status renders a status in its color; unrecognized values read "unknown"
func Status(status string) string {
	if status == "" || console.StatusColor(status) == console.ColorUnknown {
		return StatusStyle(status).Render("unknown")
	}
	return StatusStyle(status).Render(status)
}
