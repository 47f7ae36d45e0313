// Package themes holds the dashboard color schemes.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme is the set of colors and styles the dashboard renders with.
type Theme struct {
	Primary lipgloss.Color
	Border  lipgloss.Color
	Muted   lipgloss.Color

	// Series colors chart groups such as scatter categories and pie slices.
	Series []lipgloss.Color

	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	Panel         lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	StatusPending lipgloss.Style
}

type palette struct {
	primary  lipgloss.Color
	onAccent lipgloss.Color
	text     lipgloss.Color
	subtext  lipgloss.Color
	border   lipgloss.Color
	muted    lipgloss.Color
	info     lipgloss.Color
	success  lipgloss.Color
	warning  lipgloss.Color
	danger   lipgloss.Color
	series   []lipgloss.Color
}

func newTheme(p palette) Theme {
	status := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}

	return Theme{
		Primary: p.primary,
		Border:  p.border,
		Muted:   p.muted,
		Series:  p.series,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.text).MarginBottom(1),
		Subtitle: lipgloss.NewStyle().Foreground(p.subtext).MarginBottom(1),
		Normal:   lipgloss.NewStyle().Foreground(p.text),
		Bold:     lipgloss.NewStyle().Bold(true).Foreground(p.text),
		Selected: lipgloss.NewStyle().Background(p.primary).Foreground(p.onAccent).Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),

		StatusInfo:    status(p.info),
		StatusSuccess: status(p.success),
		StatusWarning: status(p.warning),
		StatusError:   status(p.danger),
		StatusPending: lipgloss.NewStyle().Foreground(p.muted).Italic(true),
	}
}

// SeriesColor returns the color of the i-th chart group, wrapping around the palette.
func (t Theme) SeriesColor(i int) lipgloss.Color {
	if len(t.Series) == 0 {
		return t.Primary
	}
	return t.Series[i%len(t.Series)]
}

// Default is the default theme.
var Default = newTheme(palette{
	primary:  "#7c3aed",
	onAccent: "#fafafa",
	text:     "#fafafa",
	subtext:  "#a3a3a3",
	border:   "#404040",
	muted:    "#737373",
	info:     "#3b82f6",
	success:  "#10b981",
	warning:  "#f59e0b",
	danger:   "#ef4444",
	series: []lipgloss.Color{
		"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
		"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
	},
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	primary:  "#cba6f7",
	onAccent: "#1e1e2e",
	text:     "#cdd6f4",
	subtext:  "#a6adc8",
	border:   "#45475a",
	muted:    "#6c7086",
	info:     "#89dceb",
	success:  "#a6e3a1",
	warning:  "#f9e2af",
	danger:   "#f38ba8",
	series: []lipgloss.Color{
		"#89b4fa", "#a6e3a1", "#f9e2af", "#f38ba8", "#cba6f7",
		"#94e2d5", "#f5c2e7", "#fab387", "#74c7ec", "#b4befe",
	},
})

// GetTheme returns a theme by name, falling back to Default.
func GetTheme(name string) Theme {
	if name == "catppuccin-mocha" {
		return CatppuccinMocha
	}
	return Default
}

// Names lists the selectable theme names.
var Names = []string{"default", "catppuccin-mocha"}

// CategoryIcons maps Play Store categories to emoji icons.
var CategoryIcons = map[string]string{
	"ART_AND_DESIGN":      "🎨",
	"BOOKS_AND_REFERENCE": "📚",
	"BUSINESS":            "💼",
	"COMMUNICATION":       "💬",
	"DATING":              "💘",
	"EDUCATION":           "🎓",
	"ENTERTAINMENT":       "🎬",
	"FAMILY":              "👪",
	"FINANCE":             "💰",
	"FOOD_AND_DRINK":      "🍔",
	"GAME":                "🎮",
	"HEALTH_AND_FITNESS":  "💪",
	"LIFESTYLE":           "🌿",
	"MAPS_AND_NAVIGATION": "🗺️",
	"MEDICAL":             "💊",
	"MUSIC_AND_AUDIO":     "🎵",
	"NEWS_AND_MAGAZINES":  "📰",
	"PHOTOGRAPHY":         "📷",
	"PRODUCTIVITY":        "✅",
	"SHOPPING":            "🛍️",
	"SOCIAL":              "👥",
	"SPORTS":              "⚽",
	"TOOLS":               "🔧",
	"TRAVEL_AND_LOCAL":    "✈️",
	"VIDEO_PLAYERS":       "📺",
	"WEATHER":             "⛅",
}

// GetCategoryIcon returns an icon for a category.
func GetCategoryIcon(category string) string {
	if icon, ok := CategoryIcons[category]; ok {
		return icon
	}
	return "📦"
}
