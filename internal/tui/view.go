package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/quiniela/internal/model"
	"github.com/tinytelemetry/quiniela/internal/surface"
)

// View renders the dashboard page.
func (m *DashboardModel) View(width, height int) string {
	if !m.ready {
		return "Loading dashboard..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderStatusLine(),
		m.viewport.View(),
		m.renderFooter(),
	)
}

func refreshLabelWidth() int {
	return lipgloss.Width(refreshLabel)
}

// renderHeader draws the title bar with the refresh control flush right.
func (m *DashboardModel) renderHeader() string {
	title := titleStyle.Render("Quiniela")
	source := subtleHeaderStyle.Render(m.apiBase)
	button := refreshButtonStyle.Render(refreshLabel)

	left := title + source
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(button)
	if gap < 1 {
		left = title
		gap = max(m.width-lipgloss.Width(left)-lipgloss.Width(button), 0)
	}
	return left + headerStyle.Render(strings.Repeat(" ", gap)) + button
}

// renderStatusLine shows one badge per region, like the deck title badges.
func (m *DashboardModel) renderStatusLine() string {
	badges := make([]string, 0, len(model.Regions)+1)
	for _, r := range model.Regions {
		badges = append(badges, m.regionBadge(r))
	}
	if !m.orch.Visible() {
		badges = append(badges, badgePausedStyle.Render("⏸ paused"))
	}
	line := " " + strings.Join(badges, helpStyle.Render("  │  "))
	if lipgloss.Width(line) > m.width && m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line
}

func (m *DashboardModel) regionBadge(r model.Region) string {
	name := r.Title()
	switch {
	case m.orch.InFlight(r):
		return badgeLoadingStyle.Render(surface.SpinnerFrame(m.now()) + " " + name)
	case m.orch.LastError(r) != nil:
		return badgeErrorStyle.Render("✗ " + name)
	case !m.orch.LastRenderedAt(r).IsZero():
		return badgeOKStyle.Render("✓ "+name) + helpStyle.Render(" "+m.orch.LastRenderedAt(r).Format("15:04:05"))
	default:
		return helpStyle.Render(name)
	}
}

func (m *DashboardModel) renderFooter() string {
	return m.help.View(m.keys)
}
