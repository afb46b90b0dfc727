package surface

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/quiniela/internal/model"
)

const chartHeight = 6

// monthlyNodes fills one of the two monthly containers.
func monthlyNodes(sec *Section, stats *model.MonthlyStats) []*Node {
	shown := stats.MostFrequent
	if len(shown) > model.MaxFrequentShown {
		shown = shown[:model.MaxFrequentShown]
	}

	switch sec.ID {
	case "monthly-stats":
		sec.Subtitle = strings.TrimSpace(strings.Join(nonEmpty(stats.Month, stats.Location), " · "))
		if !stats.HasStatistics() {
			return []*Node{placeholder("No statistics available for this period")}
		}
		nodes := []*Node{
			statNode("Draws analyzed", fmt.Sprintf("%d", stats.TotalDraws)),
			statNode("Unique numbers", fmt.Sprintf("%d", stats.Statistics.TotalUniqueNumbers)),
			statNode("Average frequency", fmt.Sprintf("%.2f", stats.Statistics.AvgFrequency)),
		}
		if spread := spreadText(stats.Statistics); spread != "" {
			nodes = append(nodes, statNode("Median / max / min", spread))
		}
		if len(shown) > 0 {
			nodes = append(nodes, &Node{
				Kind:   KindChart,
				Text:   "frequency chart",
				render: func(width int) string { return renderFrequencyChart(shown, width) },
			})
		}
		return nodes

	case "frequent-numbers":
		if len(shown) == 0 {
			return []*Node{placeholder(noDataText(sec.ID))}
		}
		nodes := make([]*Node, 0, len(shown))
		for i, f := range shown {
			rank, f := i+1, f
			text := fmt.Sprintf("%d. %s", rank, f.Number)
			nodes = append(nodes, &Node{
				Kind: KindEntry,
				Text: text,
				render: func(width int) string {
					return fmt.Sprintf("%-4s %s  %s  %s",
						mutedStyle.Render(fmt.Sprintf("%d.", rank)),
						numberStyle.Render(fmt.Sprintf("%-5s", f.Number)),
						statValueStyle.Render(fmt.Sprintf("%3d×", f.Frequency)),
						mutedStyle.Render(fmt.Sprintf("%5.1f%%", f.Percentage)))
				},
			})
		}
		return nodes
	}
	return nil
}

func statNode(label, value string) *Node {
	return &Node{
		Kind: KindStat,
		Text: label + ": " + value,
		render: func(int) string {
			return statLabelStyle.Render(label+": ") + statValueStyle.Render(value)
		},
	}
}

func spreadText(s *model.StatsSummary) string {
	if s.MedianFrequency == nil && s.MaxFrequency == nil && s.MinFrequency == nil {
		return ""
	}
	part := func(v string, ok bool) string {
		if !ok {
			return "-"
		}
		return v
	}
	var median, hi, lo string
	if s.MedianFrequency != nil {
		median = fmt.Sprintf("%.1f", *s.MedianFrequency)
	}
	if s.MaxFrequency != nil {
		hi = fmt.Sprintf("%d", *s.MaxFrequency)
	}
	if s.MinFrequency != nil {
		lo = fmt.Sprintf("%d", *s.MinFrequency)
	}
	return strings.Join([]string{
		part(median, s.MedianFrequency != nil),
		part(hi, s.MaxFrequency != nil),
		part(lo, s.MinFrequency != nil),
	}, " / ")
}

// renderFrequencyChart draws one bar per shown number with the numbers as
// a label row underneath.
func renderFrequencyChart(entries []model.FrequentNumber, width int) string {
	const gap = 1
	n := len(entries)
	barWidth := 1
	if n > 0 {
		barWidth = (width - gap*(n-1)) / n
	}
	barWidth = min(max(barWidth, 1), 5)
	chartWidth := n*barWidth + gap*(n-1)

	bc := barchart.New(chartWidth, chartHeight,
		barchart.WithBarGap(gap),
		barchart.WithBarWidth(barWidth),
		barchart.WithNoAxis(),
	)
	for _, f := range entries {
		bc.Push(barchart.BarData{
			Label: f.Number.String(),
			Values: []barchart.BarValue{
				{Name: f.Number.String(), Value: float64(f.Frequency), Style: chartBarStyle},
			},
		})
	}
	bc.Draw()

	labels := make([]string, len(entries))
	for i, f := range entries {
		labels[i] = lipgloss.NewStyle().Width(barWidth).Render(truncate(f.Number.String(), barWidth))
	}
	labelRow := mutedStyle.Render(strings.Join(labels, strings.Repeat(" ", gap)))

	return lipgloss.JoinVertical(lipgloss.Left, bc.View(), labelRow)
}

func nonEmpty(values ...string) []string {
	out := values[:0:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
