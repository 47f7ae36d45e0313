package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/playdash/internal/common"
	"github.com/Veraticus/playdash/internal/engine"
	"github.com/Veraticus/playdash/internal/tui/components"
	"github.com/charmbracelet/lipgloss"
)

const scatterHeight = 12

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	body := m.viewport.View()
	if !m.compact() {
		body = lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.sidebar.View(),
			m.theme.Normal.Render(" │ "),
			body,
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderStatusBar(),
	)
}

// renderHeader renders the title and the tab strip.
func (m Model) renderHeader() string {
	title := m.theme.Title.UnsetMarginBottom().Render("📱 Google Play Store Apps Dashboard")

	tabs := make([]string, 0, len(tabTitles))
	for i, t := range tabTitles {
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(m.theme.Muted)
		if Tab(i) == m.tab {
			style = m.theme.Selected.Padding(0, 1)
		}
		tabs = append(tabs, style.Render(t))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		m.theme.Normal.Foreground(m.theme.Border).Render(strings.Repeat("─", max(m.width, 10))),
	)
}

// renderContent renders the scrollable body of the active tab.
func (m Model) renderContent() string {
	var sections []string
	if m.compact() {
		sections = append(sections, m.sidebar.View())
	}

	if m.lastError != nil {
		sections = append(sections, m.theme.StatusError.Render("✗ "+common.Describe(m.lastError)))
	}

	switch m.tab {
	case TabOverview:
		sections = append(sections, m.renderOverview())
	case TabInsights:
		sections = append(sections, m.renderInsights())
	case TabPredict:
		sections = append(sections, m.renderPredict())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderOverview() string {
	width := m.contentWidth()
	charts := m.report.Charts

	parts := []string{
		m.theme.Title.Render("📊 Key Metrics"),
		components.RenderMetrics(m.report.Summary, width, m.theme),
	}
	if err := m.report.Err(); err != nil {
		parts = append(parts, m.theme.StatusWarning.Render("⚠ "+capitalize(err.Error())))
	}

	parts = append(parts,
		components.Panel("Distribution of Ratings",
			components.RenderHistogram(charts.RatingHistogram, width-4, 6, m.theme), width, m.theme),
		components.Panel("Top 10 Categories", components.RenderBars(charts.TopCategories, width-4, m.theme), width, m.theme),
		components.Panel("Free vs Paid Apps", components.RenderSplit(charts.TypeSplit, width-4, m.theme), width, m.theme),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderInsights() string {
	width := m.contentWidth()
	charts := m.report.Charts

	parts := []string{m.theme.Title.Render("📈 Visual Insights")}
	if err := m.report.Err(); err != nil {
		parts = append(parts, m.theme.StatusWarning.Render("⚠ "+capitalize(err.Error())))
	}

	parts = append(parts,
		components.Panel("Reviews vs Rating by Category",
			components.RenderScatter(charts.ReviewsVsRating, width-4, scatterHeight, m.theme), width, m.theme),
		components.Panel("Price Category vs Rating",
			components.RenderBoxes(charts.PriceCategoryBoxes, width-4, m.theme), width, m.theme),
		components.Panel("Content Rating Distribution",
			components.RenderBars(charts.ContentRatingCounts, width-4, m.theme), width, m.theme),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderPredict() string {
	if m.predictor == nil {
		return m.theme.StatusWarning.Render("⚠ No prediction model loaded. Set model.path to enable predictions.")
	}
	return m.form.View()
}

// renderStatusBar renders the record count and the key help.
func (m Model) renderStatusBar() string {
	r := m.report
	left := fmt.Sprintf("%s of %s apps", engine.FormatInt(int64(r.Summary.Count)), engine.FormatInt(int64(r.Total)))
	if n := r.Selection.ActiveCount(); n > 0 {
		left += fmt.Sprintf(" • %d filter(s)", n)
	}

	status := m.theme.StatusInfo.Render(left)
	if !m.config.ShowHelp {
		return status
	}

	helpView := m.help.View(m.keymap)
	if m.tab == TabPredict && !m.fullHelp {
		helpView = m.help.ShortHelpView(m.form.ShortHelp())
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, helpView)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
