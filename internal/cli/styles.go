// Package cli renders playdash command output with lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Palette. PrimaryColor is Play Store green.
var (
	PrimaryColor = lipgloss.Color("#01875F")
	SuccessColor = lipgloss.Color("#4ECDC4")
	WarningColor = lipgloss.Color("#FFE66D")
	ErrorColor   = lipgloss.Color("#FF6B6B")
	InfoColor    = lipgloss.Color("#95E1D3")
	SubtleColor  = lipgloss.Color("#666666")
)

// Shared text styles.
var (
	TitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).MarginBottom(1)
	SubtleStyle = lipgloss.NewStyle().Foreground(SubtleColor)
	BoldStyle   = lipgloss.NewStyle().Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 2, 0, 1)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	AppIcon     = "📱"
	StarIcon    = "⭐"
)

func status(color lipgloss.Color, icon, message string) string {
	return lipgloss.NewStyle().Foreground(color).Render(icon + " " + message)
}

// FormatSuccess prefixes message with a check mark.
func FormatSuccess(message string) string { return status(SuccessColor, SuccessIcon, message) }

// FormatError prefixes message with a cross.
func FormatError(message string) string { return status(ErrorColor, ErrorIcon, message) }

// FormatWarning prefixes message with a warning sign.
func FormatWarning(message string) string { return status(WarningColor, WarningIcon, message) }

// FormatInfo prefixes message with an info sign.
func FormatInfo(message string) string { return status(InfoColor, InfoIcon, message) }

// FormatTitle renders a section title with the app icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(AppIcon + " " + title)
}

// RenderBox frames content under a title.
func RenderBox(title, content string) string {
	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.UnsetMargins().Render(title),
		content,
	))
}

// RenderTable renders rows under a header with rounded borders.
func RenderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		Render()
}

// RenderKeyValues renders label/value pairs as an aligned two-column list.
func RenderKeyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}

	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		label := SubtleStyle.Width(width + 2).Render(p[0])
		lines = append(lines, label+BoldStyle.Render(p[1]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
