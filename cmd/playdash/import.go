package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/playdash/internal/cli"
	"github.com/Veraticus/playdash/internal/common"
	"github.com/Veraticus/playdash/internal/config"
	"github.com/Veraticus/playdash/internal/dataset"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load the cleaned CSV into the SQLite snapshot",
		Long: `Parse the cleaned dataset CSV and store it in the SQLite snapshot, replacing any
previous snapshot in a single transaction. Afterwards the dashboard can read the
snapshot with data.source=sqlite.`,
		RunE: runImport,
	}

	cmd.Flags().String("csv", "", "CSV file to import (default: data.path)")
	cmd.Flags().Bool("no-progress", false, "disable the progress bar")

	return cmd
}

func runImport(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	csvPath, _ := cmd.Flags().GetString("csv")
	if csvPath == "" {
		csvPath = settings.DataPath
	}
	csvPath = config.ExpandPath(csvPath)
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	ctx, interrupt := cli.WatchInterrupts(cmd.Context(), cmd.ErrOrStderr(), "Import",
		"The previous snapshot is unchanged. Re-run the command to try again.")
	defer interrupt.Stop()

	src := dataset.CSVSource{Path: csvPath}
	records, err := src.Load(ctx)
	if err != nil {
		return err
	}
	common.LogInfo("Parsed dataset", common.Fields{"source": src.Describe(), "records": len(records)})

	db, err := openStorage(ctx, settings.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	var progress func(done, total int)
	if !noProgress {
		bar := newImportBar(cmd.ErrOrStderr(), len(records))
		progress = func(done, _ int) {
			if err := bar.Set(done); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	}

	imp, err := db.SaveApps(ctx, csvPath, records, progress)
	if err != nil {
		if interrupt.Interrupted() {
			return nil
		}
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
		"Imported %d apps into %s (import #%d)", imp.Rows, settings.DatabasePath, imp.ID)))
	return nil
}

func newImportBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Importing apps...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
