package sheets

import (
	"fmt"
	"strings"

	"github.com/Veraticus/playdash/internal/engine"
	"github.com/Veraticus/playdash/internal/model"
)

// Fixed worksheet titles.
const (
	SummaryTab = "Summary"
	AppsTab    = "Apps"
)

// maxTitleLen is the Sheets limit on worksheet titles.
const maxTitleLen = 100

// Tab is one worksheet of a published report.
type Tab struct {
	Title string
	Rows  [][]any
}

// BuildTabs lays a report out as worksheets: the summary, one tab per chart and,
// when includeApps is set, the matching app records.
func BuildTabs(report engine.Report, includeApps bool) []Tab {
	configs := report.Charts.All()
	tabs := make([]Tab, 0, len(configs)+2)

	tabs = append(tabs, summaryTab(report))
	for _, cfg := range configs {
		tabs = append(tabs, chartTab(cfg))
	}
	if includeApps {
		tabs = append(tabs, appsTab(report.View))
	}

	return tabs
}

// Titles returns the tab titles in order.
func Titles(tabs []Tab) []string {
	out := make([]string, len(tabs))
	for i, t := range tabs {
		out[i] = t.Title
	}
	return out
}

func summaryTab(report engine.Report) Tab {
	s := report.Summary

	var mean any = engine.NoData
	if s.MeanRating != nil {
		mean = engine.RoundTo(*s.MeanRating, 2)
	}

	rows := [][]any{
		{"Google Play Store Apps Dashboard"},
		{},
		{"Filter", "Value"},
	}
	for _, f := range model.FilterFields {
		value := model.All
		if report.Selection.Active(f) {
			value = report.Selection.Get(f)
		}
		rows = append(rows, []any{f.Label(), value})
	}

	rows = append(rows,
		[]any{},
		[]any{"Metric", "Value"},
		[]any{"Total Apps", s.Count},
		[]any{"Average Rating", mean},
		[]any{"Total Reviews", s.TotalReviews},
		[]any{"Paid Apps (%)", s.PaidPercentage},
		[]any{"Dataset Size", report.Total},
	)

	return Tab{Title: SummaryTab, Rows: rows}
}

// chartTab writes a chart in long form: one row per series point.
func chartTab(cfg engine.ChartConfig) Tab {
	x, y := cfg.XAxis, cfg.YAxis
	if x == "" {
		x = "Label"
	}
	if y == "" {
		y = "Value"
	}

	rows := [][]any{{"Series", x, y}}
	for _, s := range cfg.Series {
		for _, p := range s.Data {
			rows = append(rows, []any{s.Name, p.Label, p.Value})
		}
	}

	return Tab{Title: tabTitle(cfg.Title), Rows: rows}
}

func appsTab(view engine.View) Tab {
	rows := make([][]any, 0, view.Len()+1)
	rows = append(rows, []any{
		"App", "Category", "Rating", "Reviews", "Size_KB", "Installs_Num", "Type",
		"Price_Num", "Content Rating", "Primary_Genre", "App_Age_years", "Install_Band", "Price_Category",
	})

	view.Each(func(r *model.AppRecord) {
		rows = append(rows, []any{
			r.App, r.Category, optional(r.Rating), r.Reviews, optional(r.SizeKB), optional(r.InstallsNum),
			r.Type, r.PriceNum, r.ContentRating, r.PrimaryGenre, r.AppAgeYears, r.InstallBand, r.PriceCategory,
		})
	})

	return Tab{Title: AppsTab, Rows: rows}
}

// optional renders a missing value as an empty cell.
func optional[T float64 | int64](v *T) any {
	if v == nil {
		return ""
	}
	return *v
}

// tabTitle strips characters Sheets rejects in worksheet titles.
func tabTitle(title string) string {
	title = strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', '*', '?', ':', '/', '\\':
			return -1
		}
		return r
	}, title)
	title = strings.TrimSpace(title)
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen]
	}
	return title
}

// a1Range addresses a cell range on a named worksheet.
func a1Range(title, cells string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(title, "'", "''"), cells)
}
