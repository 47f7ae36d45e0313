package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/playdash/internal/cli"
	"github.com/Veraticus/playdash/internal/engine"
	"github.com/Veraticus/playdash/internal/model"
	"github.com/spf13/cobra"
)

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the summary metrics for a filter selection",
		Long: `Print Total Apps, Average Rating, Total Reviews and Paid Apps (%) for the apps
matching the given filters. Omitted filters mean All.`,
		Example: `  playdash summary --category GAME --type Paid
  playdash summary --content-rating Teen --format json`,
		RunE: runSummary,
	}

	addFilterFlags(cmd)
	cmd.Flags().StringP("format", "f", formatText, "output format (text, json)")

	return cmd
}

type summaryOutput struct {
	Selection  model.FilterSelection `json:"selection"`
	MeanRating *float64              `json:"meanRating"`
	Total      int                   `json:"total"`
	Count      int                   `json:"count"`
	Reviews    int64                 `json:"totalReviews"`
	Paid       float64               `json:"paidPercentage"`
}

func runSummary(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format, formatText, formatJSON); err != nil {
		return err
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	store, err := loadStore(cmd.Context(), settings)
	if err != nil {
		return err
	}

	report := engine.Build(store.All(), selectionFromFlags(cmd, store))
	out := cmd.OutOrStdout()

	if format == formatJSON {
		s := report.Summary
		var mean *float64
		if s.MeanRating != nil {
			v := engine.RoundTo(*s.MeanRating, 2)
			mean = &v
		}
		return writeJSON(out, summaryOutput{
			Selection:  report.Selection,
			Total:      report.Total,
			Count:      s.Count,
			MeanRating: mean,
			Reviews:    s.TotalReviews,
			Paid:       s.PaidPercentage,
		})
	}

	return writeSummaryText(out, report)
}

func writeSummaryText(w io.Writer, report engine.Report) error {
	s := report.Summary
	lines := []string{
		cli.FormatTitle("Summary"),
		cli.SubtleStyle.Render("Filters: " + describeSelection(report.Selection)),
		"",
		cli.RenderKeyValues([][2]string{
			{"Total Apps", engine.FormatInt(int64(s.Count))},
			{"Average Rating", s.MeanRatingLabel()},
			{"Total Reviews", s.TotalReviewsLabel()},
			{"Paid Apps (%)", s.PaidLabel()},
		}),
	}
	if err := report.Err(); err != nil {
		lines = append(lines, "", cli.FormatWarning(err.Error()))
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func describeSelection(sel model.FilterSelection) string {
	if sel.ActiveCount() == 0 {
		return model.All
	}
	var parts []string
	for _, f := range model.FilterFields {
		if sel.Active(f) {
			parts = append(parts, fmt.Sprintf("%s=%s", f.Label(), sel.Get(f)))
		}
	}
	return strings.Join(parts, ", ")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
