package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Setting is one line of the effective configuration shown on the help page.
type Setting struct {
	Name  string
	Value string
}

// HelpPage lists the key bindings and the running configuration.
type HelpPage struct {
	keys     KeyMap
	help     help.Model
	settings []Setting
}

// NewHelpPage creates the help page.
func NewHelpPage(settings []Setting) *HelpPage {
	h := help.New()
	h.ShowAll = true
	return &HelpPage{keys: DefaultKeyMap(), help: h, settings: settings}
}

func (p *HelpPage) ID() string    { return "help" }
func (p *HelpPage) Init() tea.Cmd { return nil }

func (p *HelpPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.ForceQuit):
			return tea.Quit, nil
		case key.Matches(msg, p.keys.Escape), key.Matches(msg, p.keys.Help), key.Matches(msg, p.keys.Quit):
			return nil, &PageNav{PageID: "dashboard"}
		}
	}
	return nil, nil
}

func (p *HelpPage) View(width, height int) string {
	var b strings.Builder
	b.WriteString(helpTitleStyle.Render("Keys"))
	b.WriteString("\n")
	b.WriteString(p.help.View(p.keys))

	if len(p.settings) > 0 {
		b.WriteString("\n\n")
		b.WriteString(helpTitleStyle.Render("Settings"))
		b.WriteString("\n")
		nameWidth := 0
		for _, s := range p.settings {
			nameWidth = max(nameWidth, len(s.Name))
		}
		for _, s := range p.settings {
			b.WriteString(helpStyle.Render(fmt.Sprintf("%-*s  ", nameWidth, s.Name)))
			b.WriteString(s.Value)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("esc to return"))

	return lipgloss.NewStyle().Padding(1, 2).MaxWidth(max(width, 1)).Render(b.String())
}
