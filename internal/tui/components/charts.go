package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/playdash/internal/engine"
	"github.com/Veraticus/playdash/internal/tui/themes"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// RatingScaleMax is the top of the rating axis.
const RatingScaleMax = 5.0

var blocks = []rune(" ▁▂▃▄▅▆▇█")

// Panel frames a chart with its title.
func Panel(title, body string, width int, theme themes.Theme) string {
	return theme.Panel.
		Width(max(width-2, 10)).
		Render(lipgloss.JoinVertical(lipgloss.Left, theme.Bold.Render(title), body))
}

func noData(theme themes.Theme) string {
	return theme.StatusPending.Render(engine.NoData)
}

// RenderHistogram draws the rating distribution as columns, height rows tall.
func RenderHistogram(bins []engine.Bin, width, height int, theme themes.Theme) string {
	if len(bins) == 0 {
		return noData(theme)
	}
	if height < 2 {
		height = 2
	}

	colWidth := 1
	if width >= len(bins)*2 {
		colWidth = 2
	}

	peak := 0
	for _, b := range bins {
		peak = max(peak, b.Count)
	}

	bar := lipgloss.NewStyle().Foreground(theme.Primary)
	rows := make([]string, 0, height+1)
	for r := 0; r < height; r++ {
		var sb strings.Builder
		for _, b := range bins {
			eighths := 0
			if peak > 0 {
				eighths = int(math.Round(float64(b.Count) / float64(peak) * float64(height*8)))
			}
			level := eighths - (height-1-r)*8
			level = min(max(level, 0), 8)
			sb.WriteString(strings.Repeat(string(blocks[level]), colWidth))
		}
		rows = append(rows, bar.Render(sb.String()))
	}

	span := len(bins) * colWidth
	lo := fmt.Sprintf("%.1f", bins[0].Lower)
	hi := fmt.Sprintf("%.1f", bins[len(bins)-1].Upper)
	gap := max(span-len(lo)-len(hi), 1)
	axis := lipgloss.NewStyle().Foreground(theme.Muted).Render(lo + strings.Repeat(" ", gap) + hi)
	rows = append(rows, axis, lipgloss.NewStyle().Foreground(theme.Muted).Render(fmt.Sprintf("peak %d apps", peak)))

	return strings.Join(rows, "\n")
}

// RenderBars draws one horizontal bar per count, longest for the largest.
func RenderBars(counts []engine.Count, width int, theme themes.Theme) string {
	if len(counts) == 0 {
		return noData(theme)
	}

	labelWidth := 0
	peak := 0
	for _, c := range counts {
		labelWidth = max(labelWidth, len([]rune(c.Label)))
		peak = max(peak, c.Count)
	}
	labelWidth = min(labelWidth, 22)

	valueWidth := len(engine.FormatInt(int64(peak)))
	barWidth := max(width-labelWidth-valueWidth-4, 4)

	bar := lipgloss.NewStyle().Foreground(theme.Primary)
	lines := make([]string, 0, len(counts))
	for _, c := range counts {
		n := 0
		if peak > 0 {
			n = int(math.Round(float64(c.Count) / float64(peak) * float64(barWidth)))
		}
		if c.Count > 0 && n == 0 {
			n = 1
		}
		label := fmt.Sprintf("%-*s", labelWidth, truncate(c.Label, labelWidth))
		lines = append(lines, fmt.Sprintf("%s %s %s",
			label,
			bar.Render(strings.Repeat("█", n))+strings.Repeat(" ", barWidth-n),
			engine.FormatInt(int64(c.Count)),
		))
	}
	return strings.Join(lines, "\n")
}

// RenderSplit draws one progress bar per slice with its share.
func RenderSplit(slices []engine.Slice, width int, theme themes.Theme) string {
	if len(slices) == 0 {
		return noData(theme)
	}

	labelWidth := 0
	for _, s := range slices {
		labelWidth = max(labelWidth, len(s.Label))
	}
	barWidth := max(width-labelWidth-18, 8)

	lines := make([]string, 0, len(slices))
	for i, s := range slices {
		color := theme.SeriesColor(i)
		bar := progress.New(
			progress.WithSolidFill(string(color)),
			progress.WithoutPercentage(),
			progress.WithWidth(barWidth),
		)
		lines = append(lines, fmt.Sprintf("%-*s %s %5.1f%% (%s)",
			labelWidth, s.Label,
			bar.ViewAs(s.Share/100),
			s.Share,
			engine.FormatInt(int64(s.Count)),
		))
	}
	return strings.Join(lines, "\n")
}

// RenderScatter plots rating against log-scaled review count, one color per category.
func RenderScatter(points []engine.Point, width, height int, theme themes.Theme) string {
	if len(points) == 0 {
		return noData(theme)
	}

	plotWidth := max(width-6, 10)
	height = max(height, 4)

	maxLog := 0.0
	for _, p := range points {
		maxLog = math.Max(maxLog, math.Log10(float64(p.Reviews)+1))
	}
	if maxLog == 0 {
		maxLog = 1
	}

	colorOf := make(map[string]int)
	var legend []string
	grid := make([][]int, height)
	for r := range grid {
		grid[r] = make([]int, plotWidth)
		for c := range grid[r] {
			grid[r][c] = -1
		}
	}

	for _, p := range points {
		idx, ok := colorOf[p.Category]
		if !ok {
			idx = len(colorOf)
			colorOf[p.Category] = idx
			legend = append(legend, p.Category)
		}
		x := int(math.Log10(float64(p.Reviews)+1) / maxLog * float64(plotWidth-1))
		y := int((1 - p.Rating/RatingScaleMax) * float64(height-1))
		y = min(max(y, 0), height-1)
		grid[y][x] = idx
	}

	muted := lipgloss.NewStyle().Foreground(theme.Muted)
	rows := make([]string, 0, height+3)
	for r, cells := range grid {
		axis := "    │"
		switch r {
		case 0:
			axis = fmt.Sprintf("%3.0f │", RatingScaleMax)
		case height - 1:
			axis = "  0 │"
		}
		var sb strings.Builder
		for _, idx := range cells {
			if idx < 0 {
				sb.WriteRune(' ')
				continue
			}
			sb.WriteString(lipgloss.NewStyle().
				Foreground(theme.SeriesColor(idx)).
				Render("•"))
		}
		rows = append(rows, muted.Render(axis)+sb.String())
	}
	rows = append(rows,
		muted.Render("    └"+strings.Repeat("─", plotWidth)),
		muted.Render(fmt.Sprintf("     reviews (log) 0 … %s", engine.FormatCompact(int64(math.Pow(10, maxLog))))),
	)

	var keys []string
	for i, cat := range legend {
		if i == 6 {
			keys = append(keys, muted.Render(fmt.Sprintf("+%d more", len(legend)-i)))
			break
		}
		keys = append(keys, lipgloss.NewStyle().Foreground(theme.SeriesColor(i)).Render("• "+cat))
	}
	rows = append(rows, strings.Join(keys, "  "))

	return strings.Join(rows, "\n")
}

// RenderBoxes draws one box plot per price category on a shared 0-5 rating axis.
func RenderBoxes(boxes []engine.Box, width int, theme themes.Theme) string {
	if len(boxes) == 0 {
		return noData(theme)
	}

	labelWidth := 0
	for _, b := range boxes {
		labelWidth = max(labelWidth, len(b.Label))
	}
	axisWidth := max(width-labelWidth-22, 10)

	pos := func(v float64) int {
		p := int(math.Round(v / RatingScaleMax * float64(axisWidth-1)))
		return min(max(p, 0), axisWidth-1)
	}

	box := lipgloss.NewStyle().Foreground(theme.Primary)
	lines := make([]string, 0, len(boxes)+1)
	for _, b := range boxes {
		cells := []rune(strings.Repeat(" ", axisWidth))
		for i := pos(b.Min); i <= pos(b.Max); i++ {
			cells[i] = '─'
		}
		for i := pos(b.Q1); i <= pos(b.Q3); i++ {
			cells[i] = '█'
		}
		cells[pos(b.Min)] = '├'
		cells[pos(b.Max)] = '┤'
		cells[pos(b.Median)] = '┃'

		lines = append(lines, fmt.Sprintf("%-*s %s med %.2f (n=%d)",
			labelWidth, b.Label, box.Render(string(cells)), b.Median, b.Count))
	}

	axis := fmt.Sprintf("%-*s 0%s%.0f", labelWidth, "", strings.Repeat(" ", max(axisWidth-2, 1)), RatingScaleMax)
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.Muted).Render(axis))

	return strings.Join(lines, "\n")
}
