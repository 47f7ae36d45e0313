package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/playdash/internal/common"
	"github.com/Veraticus/playdash/internal/engine"
	"github.com/Veraticus/playdash/internal/service"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Writer implements service.ReportWriter for Google Sheets.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

var _ service.ReportWriter = (*Writer)(nil)

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sheets config: %w", err)
	}

	tokenSource, err := TokenSource(ctx, config)
	if err != nil {
		return nil, err
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(oauth2.NewClient(ctx, tokenSource)))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return newWriter(srv, config, logger), nil
}

func newWriter(srv *sheets.Service, config Config, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		config:  config,
		service: srv,
		logger:  logger,
	}
}

// Write publishes the report, one worksheet per tab, and returns the spreadsheet URL.
// Existing tabs with the same titles are cleared and rewritten.
func (w *Writer) Write(ctx context.Context, report engine.Report) (string, error) {
	tabs := BuildTabs(report, w.config.IncludeApps)
	titles := Titles(tabs)

	w.logger.Info("starting report publication",
		"tabs", len(tabs),
		"apps", report.Summary.Count,
		"active_filters", report.Selection.ActiveCount())

	var spreadsheet *sheets.Spreadsheet
	err := w.retry(ctx, "open spreadsheet", func() error {
		var err error
		spreadsheet, err = w.getOrCreateSpreadsheet(ctx, titles)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	var sheetIDs map[string]int64
	err = w.retry(ctx, "prepare tabs", func() error {
		var err error
		sheetIDs, err = w.ensureTabs(ctx, spreadsheet, titles)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to prepare tabs: %w", err)
	}

	id := spreadsheet.SpreadsheetId
	for _, tab := range tabs {
		if err := w.retry(ctx, "clear "+tab.Title, func() error { return w.clearTab(ctx, id, tab.Title) }); err != nil {
			return "", fmt.Errorf("failed to clear %s: %w", tab.Title, err)
		}
		if err := w.retry(ctx, "write "+tab.Title, func() error { return w.writeData(ctx, id, tab) }); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", tab.Title, err)
		}
	}

	if w.config.EnableFormatting {
		if err := w.retry(ctx, "format tabs", func() error { return w.applyFormatting(ctx, id, tabs, sheetIDs) }); err != nil {
			// Don't fail the whole operation if formatting fails
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("report publication completed",
		"spreadsheet_id", id,
		"url", spreadsheet.SpreadsheetUrl)

	return spreadsheet.SpreadsheetUrl, nil
}

func (w *Writer) retry(ctx context.Context, name string, operation func() error) error {
	return common.WithRetry(ctx, func() error {
		return classify(operation())
	}, common.RetryOptions{
		Operation:    "sheets: " + name,
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	})
}

// classify maps API errors onto the retry policy: 429 is a rate limit, other client
// errors are permanent, server and transport errors are retried.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", common.ErrRateLimit, err)
	case apiErr.Code >= 400 && apiErr.Code < 500:
		return common.Permanent(err)
	default:
		return err
	}
}

// getOrCreateSpreadsheet opens the configured spreadsheet or creates one with every tab.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context, titles []string) (*sheets.Spreadsheet, error) {
	if w.config.SpreadsheetID != "" {
		existing, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return existing, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
	}
	for _, title := range titles {
		spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: title},
		})
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created, nil
}

// ensureTabs adds any missing worksheets and returns the sheet id of every title.
func (w *Writer) ensureTabs(ctx context.Context, spreadsheet *sheets.Spreadsheet, titles []string) (map[string]int64, error) {
	ids := make(map[string]int64, len(titles))
	for _, s := range spreadsheet.Sheets {
		if s.Properties != nil {
			ids[s.Properties.Title] = s.Properties.SheetId
		}
	}

	var requests []*sheets.Request
	for _, title := range titles {
		if _, ok := ids[title]; ok {
			continue
		}
		requests = append(requests, &sheets.Request{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		})
	}
	if len(requests) == 0 {
		return ids, nil
	}

	resp, err := w.service.Spreadsheets.BatchUpdate(spreadsheet.SpreadsheetId, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to add tabs: %w", err)
	}

	for _, reply := range resp.Replies {
		if reply.AddSheet != nil && reply.AddSheet.Properties != nil {
			p := reply.AddSheet.Properties
			ids[p.Title] = p.SheetId
		}
	}

	w.logger.Debug("added tabs", "count", len(requests))
	return ids, nil
}

// clearTab clears all data from a worksheet.
func (w *Writer) clearTab(ctx context.Context, spreadsheetID, title string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, a1Range(title, "A:Z"), &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	return err
}

// writeData writes a tab's rows in batches to stay under API request limits.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, tab Tab) error {
	for i := 0; i < len(tab.Rows); i += w.config.BatchSize {
		end := i + w.config.BatchSize
		if end > len(tab.Rows) {
			end = len(tab.Rows)
		}

		batch := tab.Rows[i:end]
		valueRange := &sheets.ValueRange{
			Values: batch,
		}

		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, a1Range(tab.Title, fmt.Sprintf("A%d", i+1)), valueRange).
			ValueInputOption("RAW").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "tab", tab.Title, "start_row", i+1, "rows", len(batch))
	}

	return nil
}

// applyFormatting bolds and freezes each tab's header row and sizes its columns.
func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, tabs []Tab, sheetIDs map[string]int64) error {
	var requests []*sheets.Request

	for _, tab := range tabs {
		id, ok := sheetIDs[tab.Title]
		if !ok {
			continue
		}

		headerRow := int64(0)
		if tab.Title == SummaryTab {
			headerRow = 2
		}

		requests = append(requests,
			&sheets.Request{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{
						SheetId:       id,
						StartRowIndex: headerRow,
						EndRowIndex:   headerRow + 1,
					},
					Cell: &sheets.CellData{
						UserEnteredFormat: &sheets.CellFormat{
							TextFormat: &sheets.TextFormat{Bold: true},
						},
					},
					Fields: "userEnteredFormat.textFormat",
				},
			},
			&sheets.Request{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{
						SheetId: id,
						GridProperties: &sheets.GridProperties{
							FrozenRowCount: headerRow + 1,
						},
					},
					Fields: "gridProperties.frozenRowCount",
				},
			},
			&sheets.Request{
				AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
					Dimensions: &sheets.DimensionRange{
						SheetId:    id,
						Dimension:  "COLUMNS",
						StartIndex: 0,
						EndIndex:   int64(width(tab.Rows)),
					},
				},
			},
		)
	}

	if len(requests) == 0 {
		return nil
	}

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return err
}

func width(rows [][]any) int {
	n := 0
	for _, r := range rows {
		if len(r) > n {
			n = len(r)
		}
	}
	return n
}
