package engine

import (
	"log/slog"

	"github.com/Veraticus/playdash/internal/common"
	"github.com/Veraticus/playdash/internal/model"
)

// Report is everything the dashboard shows for one filter selection.
type Report struct {
	Selection model.FilterSelection `json:"selection"`
	Charts    Charts                `json:"charts"`
	Summary   Summary               `json:"summary"`
	View      View                  `json:"-"`
	Total     int                   `json:"total"`
}

// Build filters the full view and derives the summary and charts from the result.
// It never fails: an empty selection result produces a report whose Err is
// common.ErrEmptyResult, with zero metrics and empty charts.
func Build(all View, sel model.FilterSelection) Report {
	filtered := Apply(all, sel)

	slog.Debug("Built report",
		"active_filters", sel.ActiveCount(),
		"records", filtered.Len(),
		"total", all.Len())

	return Report{
		Selection: sel,
		View:      filtered,
		Total:     all.Len(),
		Summary:   Summarize(filtered),
		Charts:    Visualize(filtered),
	}
}

// Empty reports whether no records matched.
func (r Report) Empty() bool {
	return r.Summary.Count == 0
}

// Err returns common.ErrEmptyResult for an empty report and nil otherwise.
func (r Report) Err() error {
	if r.Empty() {
		return common.ErrEmptyResult
	}
	return nil
}
