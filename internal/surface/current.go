package surface

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/quiniela/internal/model"
)

// currentNodes renders one card per location in API order.
func currentNodes(results model.CurrentResults) []*Node {
	if len(results) == 0 {
		return []*Node{placeholder("No results published yet")}
	}
	nodes := make([]*Node, 0, len(results))
	for _, loc := range results {
		loc := loc
		nodes = append(nodes, &Node{
			Kind:   KindCard,
			Text:   loc.Location,
			render: func(width int) string { return renderLocationCard(loc, width) },
		})
	}
	return nodes
}

func renderLocationCard(loc model.LocationResults, width int) string {
	inner := max(width-cardStyle.GetHorizontalFrameSize(), 10)
	lines := []string{cardTitleStyle.Render(truncate(loc.Location, inner))}

	if loc.HasDraws {
		for _, d := range loc.Draws {
			lines = append(lines, drawLine(d, inner))
		}
	} else {
		lines = append(lines, mutedStyle.Width(inner).Render(loc.Message))
	}

	return cardStyle.Width(inner + cardStyle.GetHorizontalPadding()).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// drawLine lays out "draw ....... number" across width columns.
func drawLine(d model.DrawResult, width int) string {
	number := d.Number.String()
	label := truncate(d.Draw, max(width-len(number)-2, 1))
	gap := width - lipgloss.Width(label) - lipgloss.Width(number)
	if gap < 1 {
		gap = 1
	}
	return label + mutedStyle.Render(strings.Repeat(" ", gap)) + numberStyle.Render(number)
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
