package surface

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorNavy   = lipgloss.Color("17")
	ColorBlue   = lipgloss.Color("39")
	ColorGreen  = lipgloss.Color("42")
	ColorOrange = lipgloss.Color("208")
	ColorRed    = lipgloss.Color("196")
	ColorGray   = lipgloss.Color("244")
	ColorWhite  = lipgloss.Color("255")
)

var (
	sectionTitleStyle = lipgloss.NewStyle().
				Foreground(ColorBlue).
				Bold(true)

	sectionSubtitleStyle = lipgloss.NewStyle().
				Foreground(ColorGray)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorNavy).
			Padding(0, 1)

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	numberStyle = lipgloss.NewStyle().
			Foreground(ColorOrange).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(ColorGray).
				Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	statLabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	statValueStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	chartBarStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Background(ColorBlue)
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SpinnerInterval is the frame period of the loading spinner.
const SpinnerInterval = 120 * time.Millisecond

// SpinnerFrame selects the frame for t so the spinner animates on re-render.
func SpinnerFrame(t time.Time) string {
	return spinnerFrames[t.UnixMilli()/SpinnerInterval.Milliseconds()%int64(len(spinnerFrames))]
}
