package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/playdash/internal/cli"
	"github.com/Veraticus/playdash/internal/config"
	"github.com/Veraticus/playdash/internal/engine"
	"github.com/Veraticus/playdash/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Publish the summary and charts to Google Sheets",
		Long: `Publish the summary metrics and every chart for a filter selection to a Google
Sheets spreadsheet, one worksheet per chart. Existing worksheets with the same titles
are overwritten.

Authenticate with a service account key (sheets.service_account) or OAuth2 client
credentials (sheets.client_id, sheets.client_secret) plus sheets.refresh_token or a
saved sheets.token_file. Each key can also be set as PLAYDASH_SHEETS_<KEY>.`,
		Example: `  playdash export --category GAME --spreadsheet-id 1AbC...
  playdash export --include-apps --name "Paid apps" --type Paid`,
		RunE: runExport,
	}

	addFilterFlags(cmd)
	cmd.Flags().String("spreadsheet-id", "", "update this spreadsheet instead of creating one")
	cmd.Flags().String("name", "", "title for a newly created spreadsheet")
	cmd.Flags().Bool("include-apps", false, "also write the matching app records")

	_ = viper.BindPFlag("sheets.spreadsheet_id", cmd.Flags().Lookup("spreadsheet-id"))
	_ = viper.BindPFlag("sheets.spreadsheet_name", cmd.Flags().Lookup("name"))

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx, interrupt := cli.WatchInterrupts(cmd.Context(), cmd.ErrOrStderr(), "Export",
		"Tabs written so far were kept. Re-run the command to publish the full report.")
	defer interrupt.Stop()

	cfg := config.LoadSheetsConfig(viper.GetViper())
	cfg.IncludeApps, _ = cmd.Flags().GetBool("include-apps")
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid sheets config: %w", err)
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	store, err := loadStore(ctx, settings)
	if err != nil {
		return err
	}

	report := engine.Build(store.All(), selectionFromFlags(cmd, store))
	if err := report.Err(); err != nil {
		slog.Warn("Publishing an empty report", "filters", describeSelection(report.Selection))
	}

	writer, err := sheets.NewWriter(ctx, cfg, slog.Default())
	if err != nil {
		return err
	}

	url, err := writer.Write(ctx, report)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Published report to "+url))
	return nil
}
