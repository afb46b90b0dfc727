package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/quiniela/internal/surface"
)

var (
	headerStyle = lipgloss.NewStyle().
			Background(surface.ColorNavy).
			Foreground(surface.ColorWhite)

	titleStyle = lipgloss.NewStyle().
			Background(surface.ColorNavy).
			Foreground(surface.ColorWhite).
			Bold(true).
			Padding(0, 1)

	subtleHeaderStyle = lipgloss.NewStyle().
				Background(surface.ColorNavy).
				Foreground(surface.ColorGray)

	refreshButtonStyle = lipgloss.NewStyle().
				Background(surface.ColorBlue).
				Foreground(surface.ColorWhite).
				Bold(true)

	badgeOKStyle = lipgloss.NewStyle().
			Foreground(surface.ColorGreen)

	badgeErrorStyle = lipgloss.NewStyle().
			Foreground(surface.ColorRed).
			Bold(true)

	badgeLoadingStyle = lipgloss.NewStyle().
				Foreground(surface.ColorOrange)

	badgePausedStyle = lipgloss.NewStyle().
				Foreground(surface.ColorGray).
				Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(surface.ColorGray)

	helpTitleStyle = lipgloss.NewStyle().
			Foreground(surface.ColorBlue).
			Bold(true).
			MarginBottom(1)
)

// refreshLabel is the clickable header control.
const refreshLabel = " ⟳ Refresh "
