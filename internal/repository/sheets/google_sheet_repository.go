package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/retailsheet/internal/config"
	"github.com/mamadbah2/retailsheet/internal/domain/models"
	"github.com/mamadbah2/retailsheet/internal/spreadsheet"
)

// Repository defines the spreadsheet operations supported by the Google Sheets adapter.
type Repository interface {
	ReadRows(ctx context.Context, sheetRange string) ([]models.Row, error)
	ReplaceRows(ctx context.Context, sheet string, header []string, rows [][]interface{}) error
}

// GoogleSheetRepository implements the Repository interface using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// ReadRows fetches a range whose first row is the header and keys every following row by it.
func (r *GoogleSheetRepository) ReadRows(ctx context.Context, sheetRange string) ([]models.Row, error) {
	if sheetRange == "" {
		return nil, fmt.Errorf("sheetRange must not be empty")
	}

	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, sheetRange).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", sheetRange, err)
	}

	return spreadsheet.RowsFromGrid(valuesToGrid(resp.Values)), nil
}

// ReplaceRows clears the sheet tab, creating it when missing, and writes the header
// followed by rows starting at A1.
func (r *GoogleSheetRepository) ReplaceRows(ctx context.Context, sheet string, header []string, rows [][]interface{}) error {
	if sheet == "" {
		return fmt.Errorf("sheet must not be empty")
	}

	if err := r.ensureSheet(ctx, sheet); err != nil {
		return err
	}

	if _, err := r.service.Spreadsheets.Values.Clear(r.spreadsheetID, sheet, &sheetsapi.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear sheet %s: %w", sheet, err)
	}

	payload := &sheetsapi.ValueRange{Values: buildValues(header, rows)}
	call := r.service.Spreadsheets.Values.Update(r.spreadsheetID, sheet+"!A1", payload).
		ValueInputOption("RAW").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("write sheet %s: %w", sheet, err)
	}

	r.logger.Debug("sheet replaced", zap.String("sheet", sheet), zap.Int("rows", len(rows)))
	return nil
}

func (r *GoogleSheetRepository) ensureSheet(ctx context.Context, sheet string) error {
	doc, err := r.service.Spreadsheets.Get(r.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("load spreadsheet: %w", err)
	}

	for _, s := range doc.Sheets {
		if s.Properties != nil && s.Properties.Title == sheet {
			return nil
		}
	}

	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{Properties: &sheetsapi.SheetProperties{Title: sheet}},
		}},
	}
	if _, err := r.service.Spreadsheets.BatchUpdate(r.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add sheet %s: %w", sheet, err)
	}

	r.logger.Info("sheet created", zap.String("sheet", sheet))
	return nil
}

func buildValues(header []string, rows [][]interface{}) [][]interface{} {
	values := make([][]interface{}, 0, len(rows)+1)

	head := make([]interface{}, len(header))
	for i, h := range header {
		head[i] = h
	}
	values = append(values, head)

	return append(values, rows...)
}

func valuesToGrid(values [][]interface{}) [][]string {
	grid := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v == nil {
				continue
			}
			cells[j] = fmt.Sprint(v)
		}
		grid[i] = cells
	}
	return grid
}
