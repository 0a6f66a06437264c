package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#A78BFA") // Light purple
	colorMuted     = lipgloss.Color("#6B7280") // Gray
)

var (
	// Prompt line above the list: "? Install to which client?"
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F3F4F6"))

	promptMarkStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// Selected item in a list.
	selectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary)

	// Normal (unselected) item in a list.
	normalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D1D5DB"))

	// Muted text (hints, secondary info).
	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Chosen value echoed after the prompt closes.
	chosenStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	// Help text at the bottom.
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)
