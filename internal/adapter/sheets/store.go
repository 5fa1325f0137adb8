// Package sheets implements the store boundary on Google Sheets: the
// destination is one worksheet whose first row is the column header and
// whose remaining rows are incident records keyed by incident_id.
package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/emberwatch/calfire-incident-etl/internal/domain"
)

// Store reads and writes the full tabular contents of one worksheet.
// It implements pipeline.Store.
type Store struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
	batchSize     int
	logger        *slog.Logger
}

// NewStore creates a Sheets-backed store using service-account credentials.
// batchSize bounds the number of rows per value range in a write, keeping
// individual API payloads under the service's request size limits.
func NewStore(ctx context.Context, credentialsFile, spreadsheetID, sheetName string, batchSize int, logger *slog.Logger) (*Store, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Store{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		batchSize:     batchSize,
		logger:        logger,
	}, nil
}

// ReadAll returns the sheet's current rows as incident records, in sheet
// order. An empty or header-only sheet reads as an empty store. Rows that
// no longer decode (manual edits) fail the read rather than being silently
// dropped: reconciling against a partial prior image would lose history.
func (s *Store) ReadAll(ctx context.Context) ([]domain.IncidentRecord, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.sheetName).Context(ctx).Do()
	if err != nil {
		return nil, &domain.StoreReadError{Err: err}
	}

	rows := resp.Values
	if len(rows) <= 1 {
		return nil, nil
	}

	cols := columnIndex(rows[0])
	if _, ok := cols["incident_id"]; !ok {
		return nil, &domain.StoreReadError{Err: fmt.Errorf("sheet %s has no incident_id header", s.sheetName)}
	}

	records := make([]domain.IncidentRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := decodeRow(cols, row)
		if err != nil {
			return nil, &domain.StoreReadError{Err: fmt.Errorf("sheet row %d: %w", i+2, err)}
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteAll replaces the sheet's full contents with the merged image: header
// first, then one row per record in image order. The sheet is cleared
// before the write so stale rows from a manually shrunk image cannot
// survive below the new contents.
func (s *Store) WriteAll(ctx context.Context, records []domain.IncidentRecord) error {
	if _, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, s.sheetName, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return &domain.StoreWriteError{Err: fmt.Errorf("clear sheet: %w", err)}
	}

	rows := make([][]any, 0, len(records)+1)
	headerRow := make([]any, len(header))
	for i, name := range header {
		headerRow[i] = name
	}
	rows = append(rows, headerRow)
	for _, rec := range records {
		rows = append(rows, encodeRow(rec))
	}

	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             s.chunkRanges(rows),
	}
	if _, err := s.svc.Spreadsheets.Values.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return &domain.StoreWriteError{Err: err}
	}

	s.logger.Debug("sheet replaced", "rows", len(records), "sheet", s.sheetName)
	return nil
}

// chunkRanges splits the outgoing rows into value ranges of at most
// batchSize rows each, all applied in one BatchUpdate call.
func (s *Store) chunkRanges(rows [][]any) []*sheets.ValueRange {
	chunk := s.batchSize
	if chunk <= 0 {
		chunk = len(rows)
	}

	var ranges []*sheets.ValueRange
	for start := 0; start < len(rows); start += chunk {
		end := min(start+chunk, len(rows))
		ranges = append(ranges, &sheets.ValueRange{
			Range:  fmt.Sprintf("%s!A%d", s.sheetName, start+1),
			Values: rows[start:end],
		})
	}
	return ranges
}
