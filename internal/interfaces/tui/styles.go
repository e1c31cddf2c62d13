package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	colorPrimary = lipgloss.Color("#6933ff")
	colorAccent  = lipgloss.Color("#00fced")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorWhite   = lipgloss.Color("#F9FAFB")
	colorLight   = lipgloss.Color("#d6dbe7")

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	styleLabel = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleLabelFocused = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	styleField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	styleFieldFocused = styleField.
				BorderForeground(colorAccent)

	styleButtonPrimary = lipgloss.NewStyle().
				Foreground(colorWhite).
				Background(colorPrimary).
				Padding(0, 2)

	styleButtonFocused = styleButtonPrimary.
				Underline(true).
				Bold(true)

	styleButtonDisabled = lipgloss.NewStyle().
				Foreground(colorLight).
				Background(colorMuted).
				Padding(0, 2)

	styleError = lipgloss.NewStyle().
			Foreground(colorError).
			MarginTop(1)

	styleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(1, 2).
			MarginTop(1)

	styleIdeaName = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleStrong = lipgloss.NewStyle().
			Bold(true)

	styleSummaryFocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent)

	styleHelp = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	stylePage = lipgloss.NewStyle().
			Padding(1, 2)
)

func joinDot(parts []string) string {
	return strings.Join(parts, " • ")
}
