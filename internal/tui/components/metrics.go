package components

import (
	"github.com/Veraticus/playdash/internal/engine"
	"github.com/Veraticus/playdash/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// Metric is one headline card.
type Metric struct {
	Label string
	Value string
}

// Metrics returns the four summary cards in display order.
func Metrics(s engine.Summary) []Metric {
	return []Metric{
		{Label: "Total Apps", Value: engine.FormatInt(int64(s.Count))},
		{Label: "Average Rating", Value: s.MeanRatingLabel()},
		{Label: "Total Reviews", Value: s.TotalReviewsLabel()},
		{Label: "Paid Apps (%)", Value: s.PaidLabel()},
	}
}

// RenderMetrics draws the summary cards side by side, or stacked two per row when
// the width cannot hold four.
func RenderMetrics(s engine.Summary, width int, theme themes.Theme) string {
	metrics := Metrics(s)

	perRow := 4
	if width < 72 {
		perRow = 2
	}
	cardWidth := width/perRow - 2
	if cardWidth < 14 {
		cardWidth = 14
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cardWidth).
		Padding(0, 1)

	var rows []string
	for i := 0; i < len(metrics); i += perRow {
		var cards []string
		for _, mt := range metrics[i:min(i+perRow, len(metrics))] {
			value := theme.Bold.Render(mt.Value)
			if mt.Value == engine.NoData {
				value = theme.StatusPending.Render(mt.Value)
			}
			cards = append(cards, card.Render(lipgloss.JoinVertical(lipgloss.Left,
				lipgloss.NewStyle().Foreground(theme.Muted).Render(mt.Label),
				value,
			)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
