package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/quiniela/internal/surface"
)

// SpinnerTickMsg triggers a re-render for loading spinners.
type SpinnerTickMsg struct{}

func spinnerTick() tea.Cmd {
	return tea.Tick(surface.SpinnerInterval, func(_ time.Time) tea.Msg {
		return SpinnerTickMsg{}
	})
}

// handleSpinnerTick re-schedules spinner ticks while any region is loading.
func (m *DashboardModel) handleSpinnerTick() tea.Cmd {
	m.relayout()
	if m.orch.Loading() {
		return spinnerTick()
	}
	m.spinnerActive = false
	return nil
}

// startSpinnerIfNeeded schedules a spinner tick if any region is loading
// and no tick chain is running yet.
func (m *DashboardModel) startSpinnerIfNeeded() tea.Cmd {
	if m.spinnerActive || !m.orch.Loading() {
		return nil
	}
	m.spinnerActive = true
	return spinnerTick()
}
