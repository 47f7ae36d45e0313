package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/playdash/internal/tui"
	"github.com/Veraticus/playdash/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Long: `Open the terminal dashboard: filter the dataset from the sidebar, browse the
overview and visual insight tabs, and predict ratings from the Predict tab.

Prediction is disabled when the model artifact cannot be loaded.`,
		RunE: runDashboard,
	}

	addFilterFlags(cmd)
	cmd.Flags().String("theme", "", fmt.Sprintf("color theme %v", themes.Names))
	_ = viper.BindPFlag("tui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	store, err := loadStore(ctx, settings)
	if err != nil {
		return err
	}

	opts := []tui.Option{
		tui.WithStore(store),
		tui.WithTheme(themes.GetTheme(settings.Theme)),
		tui.WithSelection(selectionFromFlags(cmd, store)),
	}

	predictor, err := loadPredictor(settings, store)
	if err != nil {
		slog.Warn("Prediction disabled", "model", settings.ModelPath, "error", err)
	} else {
		defer predictor.Close()
		opts = append(opts, tui.WithPredictor(predictor))
	}

	return tui.Run(ctx, opts...)
}
