package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/playdash/internal/engine"
	"github.com/spf13/cobra"
)

func chartsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Export chart data for a filter selection",
		Long: fmt.Sprintf(`Export the dashboard charts as JSON or CSV for the apps matching the given
filters. Use --chart to export a single chart.

Charts: %s`, strings.Join(engine.ChartNames, ", ")),
		Example: `  playdash charts --chart top-categories --format csv
  playdash charts --type Paid > charts.json`,
		RunE: runCharts,
	}

	addFilterFlags(cmd)
	cmd.Flags().StringP("format", "f", formatJSON, "output format (json, csv)")
	cmd.Flags().String("chart", "", "export only this chart")

	return cmd
}

func runCharts(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format, formatJSON, formatCSV); err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("chart")

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	store, err := loadStore(cmd.Context(), settings)
	if err != nil {
		return err
	}

	report := engine.Build(store.All(), selectionFromFlags(cmd, store))

	var configs []engine.ChartConfig
	if name != "" {
		cfg, err := report.Charts.ChartByName(name)
		if err != nil {
			return err
		}
		configs = []engine.ChartConfig{*cfg}
	} else {
		configs = report.Charts.All()
	}

	if format == formatCSV {
		return writeChartsCSV(cmd.OutOrStdout(), configs)
	}
	return writeJSON(cmd.OutOrStdout(), configs)
}

// writeChartsCSV flattens every chart into chart,series,label,value rows.
func writeChartsCSV(w io.Writer, configs []engine.ChartConfig) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"chart", "series", "label", "value"}); err != nil {
		return err
	}

	for _, cfg := range configs {
		for _, s := range cfg.Series {
			for _, p := range s.Data {
				row := []string{cfg.Name, s.Name, p.Label, strconv.FormatFloat(p.Value, 'f', -1, 64)}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
