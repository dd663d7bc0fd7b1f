// Package sheets implements the core.SheetSink port over the Google Sheets
// API.
package sheets

import (
	"context"
	"fmt"

	"github.com/mikey/gmail-finance-ingest/internal/core"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Header is the single header row written to an empty sheet before the first
// data row.
var Header = []interface{}{"Date", "Amount", "Category", "Description", "User ID", "Timestamp"}

// Sink is an append-only row writer backed by one spreadsheet tab. It is also
// the read source for the run's ledger snapshot.
type Sink struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetName     string
	logger        *zap.Logger

	// headerNeeded is set by ReadAllRows when the sheet was empty at
	// snapshot time; the header is then written once, with the first
	// appended row.
	headerNeeded bool
}

// NewSink creates a sheet sink sharing the given token source.
func NewSink(
	ctx context.Context,
	tokenSource oauth2.TokenSource,
	spreadsheetID string,
	sheetName string,
	logger *zap.Logger,
) (*Sink, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}

	service, err := sheetsapi.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Sink{
		service:       service,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		logger:        logger,
	}, nil
}

// ReadAllRows returns every existing row of the sheet, header included,
// as strings.
func (s *Sink) ReadAllRows(ctx context.Context) ([][]string, error) {
	readRange := fmt.Sprintf("%s!A:F", s.sheetName)
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, readRange).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet values: %w", err)
	}

	rows := toStringRows(resp.Values)
	s.headerNeeded = len(rows) == 0

	s.logger.Debug("Read existing sheet rows", zap.Int("rows", len(rows)))
	return rows, nil
}

// Append appends one transaction row. When the sheet was empty at snapshot
// time the header row goes in the same request, so a failed append writes
// neither.
func (s *Sink) Append(ctx context.Context, tx *core.Transaction) error {
	values := [][]interface{}{recordToRow(tx)}
	if s.headerNeeded {
		values = [][]interface{}{Header, recordToRow(tx)}
	}

	writeRange := fmt.Sprintf("%s!A1", s.sheetName)
	_, err := s.service.Spreadsheets.Values.Append(s.spreadsheetID, writeRange, &sheetsapi.ValueRange{
		Values: values,
	}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append sheet row: %w", err)
	}

	s.headerNeeded = false
	return nil
}

// recordToRow lays a transaction out in the sheet's column order.
func recordToRow(tx *core.Transaction) []interface{} {
	return []interface{}{
		tx.Date,
		tx.Amount,
		tx.Category,
		tx.Description,
		tx.UserID,
		tx.RecordedAt.Format("2006-01-02 15:04:05"),
	}
}

// toStringRows flattens the API's untyped cell values into strings.
func toStringRows(values [][]interface{}) [][]string {
	rows := make([][]string, 0, len(values))
	for _, row := range values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		rows = append(rows, cells)
	}
	return rows
}
