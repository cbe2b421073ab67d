package tui

import "github.com/charmbracelet/lipgloss"

// Color palette shared across the viewer.
var (
	primaryColor = lipgloss.Color("39")
	addedColor   = lipgloss.Color("42")
	changedColor = lipgloss.Color("214")
	deletedColor = lipgloss.Color("196")
	mutedColor   = lipgloss.Color("245")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	addedLineStyle = lipgloss.NewStyle().
			Foreground(addedColor)

	changedLineStyle = lipgloss.NewStyle().
				Foreground(changedColor)

	deletedLineStyle = lipgloss.NewStyle().
				Foreground(deletedColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)
)
