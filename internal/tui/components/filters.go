package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/playdash/internal/model"
	"github.com/Veraticus/playdash/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// OptionSource supplies the selector choices for a field. *dataset.Store satisfies it.
type OptionSource interface {
	FilterOptions(f model.Field) []string
}

// FilterSidebarModel holds the four filter selectors.
type FilterSidebarModel struct {
	theme    themes.Theme
	options  map[model.Field][]string
	selected map[model.Field]int
	focus    int
	width    int
}

// NewFilterSidebarModel creates a sidebar with every filter set to All.
func NewFilterSidebarModel(src OptionSource, theme themes.Theme) FilterSidebarModel {
	m := FilterSidebarModel{
		theme:    theme,
		options:  make(map[model.Field][]string, len(model.FilterFields)),
		selected: make(map[model.Field]int, len(model.FilterFields)),
		width:    28,
	}
	for _, f := range model.FilterFields {
		m.options[f] = src.FilterOptions(f)
	}
	return m
}

// Selection returns the current filter selection.
func (m FilterSidebarModel) Selection() model.FilterSelection {
	var sel model.FilterSelection
	for _, f := range model.FilterFields {
		sel = sel.With(f, m.value(f))
	}
	return sel
}

// Select sets a field to value. Values outside the options are ignored.
func (m *FilterSidebarModel) Select(f model.Field, value string) bool {
	for i, opt := range m.options[f] {
		if opt == value {
			m.selected[f] = i
			return true
		}
	}
	return false
}

// Reset sets every filter back to All.
func (m *FilterSidebarModel) Reset() {
	for _, f := range model.FilterFields {
		m.selected[f] = 0
	}
}

// Focused returns the field that arrow keys currently change.
func (m FilterSidebarModel) Focused() model.Field {
	return model.FilterFields[m.focus]
}

// FocusNext moves focus down, wrapping around.
func (m *FilterSidebarModel) FocusNext() {
	m.focus = (m.focus + 1) % len(model.FilterFields)
}

// FocusPrev moves focus up, wrapping around.
func (m *FilterSidebarModel) FocusPrev() {
	m.focus = (m.focus - 1 + len(model.FilterFields)) % len(model.FilterFields)
}

// Cycle moves the focused field's selection by delta, wrapping around, and returns
// a command announcing the new selection.
func (m *FilterSidebarModel) Cycle(delta int) tea.Cmd {
	f := m.Focused()
	n := len(m.options[f])
	if n == 0 {
		return nil
	}
	m.selected[f] = ((m.selected[f]+delta)%n + n) % n

	sel := m.Selection()
	return func() tea.Msg {
		return FilterChangedMsg{Selection: sel}
	}
}

// Resize sets the sidebar width.
func (m *FilterSidebarModel) Resize(width int) {
	m.width = width
}

// View renders the sidebar.
func (m FilterSidebarModel) View() string {
	lines := []string{m.theme.Title.Render("🔍 Filters")}

	for i, f := range model.FilterFields {
		label := m.theme.Subtitle.Render(f.Label())
		if i == m.focus {
			label = m.theme.StatusInfo.Render("▸ " + f.Label())
		}

		opts := m.options[f]
		pos := fmt.Sprintf("%d/%d", m.selected[f]+1, len(opts))
		value := truncate(m.value(f), m.width-len(pos)-6)
		if f == model.FieldCategory && value != model.All {
			value = themes.GetCategoryIcon(m.value(f)) + " " + value
		}

		style := m.theme.Normal
		if i == m.focus {
			style = m.theme.Selected
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			style.Render("‹ "+value+" ›"),
			" ",
			lipgloss.NewStyle().Foreground(m.theme.Muted).Render(pos),
		)
		lines = append(lines, label, row, "")
	}

	return lipgloss.NewStyle().Width(m.width).Render(strings.Join(lines, "\n"))
}

func (m FilterSidebarModel) value(f model.Field) string {
	opts := m.options[f]
	if len(opts) == 0 {
		return model.All
	}
	return opts[m.selected[f]]
}

func truncate(s string, limit int) string {
	if limit < 4 {
		limit = 4
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
