package surface

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/quiniela/internal/model"
)

func recommendationNodes(recs *model.Recommendations) []*Node {
	if recs == nil {
		return []*Node{placeholder(noDataText("recommendations"))}
	}

	shown := recs.Items
	if len(shown) > model.MaxRecommendationsShown {
		shown = shown[:model.MaxRecommendationsShown]
	}

	nodes := make([]*Node, 0, len(shown)+1)
	if len(shown) == 0 {
		nodes = append(nodes, placeholder(noDataText("recommendations")))
	}
	for _, r := range shown {
		r := r
		nodes = append(nodes, &Node{
			Kind:   KindCard,
			Text:   fmt.Sprintf("%s %s", r.Type, r.Number),
			render: func(width int) string { return renderRecommendation(r, width) },
		})
	}
	if recs.Disclaimer != "" {
		text := recs.Disclaimer
		nodes = append(nodes, &Node{
			Kind: KindDisclaimer,
			Text: text,
			render: func(width int) string {
				return placeholderStyle.Width(max(width, 1)).Render(text)
			},
		})
	}
	return nodes
}

func renderRecommendation(r model.Recommendation, width int) string {
	inner := max(width-cardStyle.GetHorizontalFrameSize(), 10)
	header := numberStyle.Render(r.Number.String()) + "  " +
		cardTitleStyle.Render(r.Type) + "  " +
		statValueStyle.Render(fmt.Sprintf("%.0f%%", r.Confidence))

	body := []string{
		header,
		mutedStyle.Width(inner).Render(r.Reason),
		statLabelStyle.Render(fmt.Sprintf("Frequency: %d", r.Frequency)),
	}
	return cardStyle.Width(inner + cardStyle.GetHorizontalPadding()).
		Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}
