package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// RevealMsg marks a node visible once its stagger delay has elapsed.
type RevealMsg struct {
	ID string
}

// Init starts the first full refresh and the timers. Returning to the page
// later does not restart them.
func (m *DashboardModel) Init() tea.Cmd {
	if m.started {
		return nil
	}
	m.started = true
	initCmd := m.orch.Init()
	return tea.Batch(initCmd, m.startSpinnerIfNeeded())
}

// Update handles messages
func (m *DashboardModel) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m.afterChange(), nil

	case tea.FocusMsg:
		cmd := m.orch.Show()
		return tea.Batch(cmd, m.afterChange(), m.startSpinnerIfNeeded()), nil

	case tea.BlurMsg:
		m.orch.Hide()
		return nil, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouseEvent(msg), nil

	case RevealMsg:
		if m.revealNode(msg.ID) {
			m.relayout()
		}
		return nil, nil

	case SpinnerTickMsg:
		return m.handleSpinnerTick(), nil
	}

	if cmd, handled := m.orch.Update(msg); handled {
		return tea.Batch(cmd, m.afterChange(), m.startSpinnerIfNeeded()), nil
	}
	return nil, nil
}

func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Cmd, *PageNav) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.ForceQuit):
		m.orch.Shutdown()
		return tea.Quit, nil

	case key.Matches(msg, m.keys.Help):
		return nil, &PageNav{PageID: "help"}

	case key.Matches(msg, m.keys.Refresh):
		return m.refresh(), nil

	case key.Matches(msg, m.keys.Up):
		return m.scrollBy(-1), nil
	case key.Matches(msg, m.keys.Down):
		return m.scrollBy(1), nil
	case key.Matches(msg, m.keys.PageUp):
		return m.scrollBy(-m.viewport.Height), nil
	case key.Matches(msg, m.keys.PageDown):
		return m.scrollBy(m.viewport.Height), nil
	case key.Matches(msg, m.keys.Home):
		m.viewport.GotoTop()
		return m.checkReveal(), nil
	case key.Matches(msg, m.keys.End):
		m.viewport.GotoBottom()
		return m.checkReveal(), nil
	}
	return nil, nil
}

func (m *DashboardModel) handleMouseEvent(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		if m.onRefreshControl(msg.X, msg.Y) {
			return m.refresh()
		}

	case tea.MouseButtonWheelUp:
		if m.reverseScrollWheel {
			return m.scrollBy(scrollStep)
		}
		return m.scrollBy(-scrollStep)

	case tea.MouseButtonWheelDown:
		if m.reverseScrollWheel {
			return m.scrollBy(-scrollStep)
		}
		return m.scrollBy(scrollStep)
	}
	return nil
}

// onRefreshControl reports whether (x, y) hits the header refresh button.
func (m *DashboardModel) onRefreshControl(x, y int) bool {
	if y != 0 || m.width <= 0 {
		return false
	}
	start := m.width - refreshLabelWidth()
	return x >= start && x < m.width
}

func (m *DashboardModel) refresh() tea.Cmd {
	cmd := m.orch.FullRefresh()
	return tea.Batch(cmd, m.afterChange(), m.startSpinnerIfNeeded())
}

func (m *DashboardModel) scrollBy(delta int) tea.Cmd {
	if !m.ready || delta == 0 {
		return nil
	}
	m.viewport.SetYOffset(m.viewport.YOffset + delta)
	return m.checkReveal()
}

// afterChange re-renders and looks for nodes that became visible.
func (m *DashboardModel) afterChange() tea.Cmd {
	m.relayout()
	return m.checkReveal()
}

// checkReveal schedules a RevealMsg for every node that crossed into view.
func (m *DashboardModel) checkReveal() tea.Cmd {
	if !m.ready {
		return nil
	}
	hits := m.watcher.Check(m.spans, m.viewport.YOffset, m.viewport.Height)
	if len(hits) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(hits))
	for _, h := range hits {
		id := h.ID
		cmds = append(cmds, tea.Tick(h.Delay, func(time.Time) tea.Msg {
			return RevealMsg{ID: id}
		}))
	}
	return tea.Batch(cmds...)
}
