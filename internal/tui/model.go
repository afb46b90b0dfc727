package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/quiniela/internal/model"
	"github.com/tinytelemetry/quiniela/internal/refresh"
	"github.com/tinytelemetry/quiniela/internal/reveal"
)

const (
	headerHeight = 2
	footerHeight = 1
	scrollStep   = 3
)

// Options configures the dashboard page.
type Options struct {
	APIBase            string
	ReverseScrollWheel bool
}

// DashboardModel is the single scrolling page that shows every region.
type DashboardModel struct {
	orch    *refresh.Orchestrator
	watcher *reveal.Watcher
	keys    KeyMap
	help    help.Model

	viewport viewport.Model
	ready    bool
	width    int
	height   int
	spans    []reveal.Span

	apiBase            string
	reverseScrollWheel bool
	spinnerActive      bool
	started            bool
	now                func() time.Time
}

// NewDashboardModel creates the dashboard page around an orchestrator and
// the reveal watcher shared with its surfaces.
func NewDashboardModel(orch *refresh.Orchestrator, watcher *reveal.Watcher, opts Options) *DashboardModel {
	if watcher == nil {
		watcher = reveal.NewWatcher(reveal.DefaultThreshold)
	}
	apiBase := opts.APIBase
	if apiBase == "" {
		apiBase = model.DefaultAPIBase
	}
	return &DashboardModel{
		orch:               orch,
		watcher:            watcher,
		keys:               DefaultKeyMap(),
		help:               help.New(),
		apiBase:            apiBase,
		reverseScrollWheel: opts.ReverseScrollWheel,
		now:                time.Now,
	}
}

func (m *DashboardModel) ID() string { return "dashboard" }

func (m *DashboardModel) resize(width, height int) {
	m.width = width
	m.height = height
	vpHeight := max(height-headerHeight-footerHeight, 1)
	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.help.Width = width
}

func (m *DashboardModel) contentWidth() int {
	return max(m.width-2, 20)
}

// relayout re-renders every surface into the viewport and records where
// each node landed.
func (m *DashboardModel) relayout() {
	if !m.ready {
		return
	}
	width := m.contentWidth()
	blocks := make([]string, 0, len(model.Regions)*2)
	var spans []reveal.Span
	row := 0
	for i, r := range model.Regions {
		if i > 0 {
			blocks = append(blocks, "")
			row++
		}
		out, nodeSpans := m.orch.Surface(r).Layout(width)
		for _, s := range nodeSpans {
			s.Top += row
			spans = append(spans, s)
		}
		blocks = append(blocks, out)
		row += lipgloss.Height(out)
	}
	m.viewport.SetContent(strings.Join(blocks, "\n"))
	m.spans = spans
}

// revealNode marks id visible on whichever surface still owns it.
func (m *DashboardModel) revealNode(id string) bool {
	for _, r := range model.Regions {
		if m.orch.Surface(r).Reveal(id) {
			return true
		}
	}
	return false
}
