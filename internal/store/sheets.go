package store

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsStore implements Store on top of the Google Sheets values API using
// a service account.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewSheetsStore creates a SheetsStore for the given spreadsheet, reading
// service-account credentials from credsFile.
func NewSheetsStore(ctx context.Context, spreadsheetID, credsFile string) (*SheetsStore, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("sheets: spreadsheet id is required")
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}

	return &SheetsStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
	}, nil
}

// ReadRange returns all rows in the range as strings. Cells are rendered as
// their displayed text so callers never see sheet-internal typed values.
func (s *SheetsStore) ReadRange(ctx context.Context, rangeID string) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rangeID).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, rangeID, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprintf("%v", cell)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// AppendValue appends a single-cell row after the last row of the range.
func (s *SheetsStore) AppendValue(ctx context.Context, rangeID string, value string) error {
	body := &sheets.ValueRange{
		Values: [][]interface{}{{value}},
	}

	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, rangeID, body).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("%w: append to %s: %v", ErrUnavailable, rangeID, err)
	}

	return nil
}

// ClearRange removes all values in the range.
func (s *SheetsStore) ClearRange(ctx context.Context, rangeID string) error {
	_, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, rangeID, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("%w: clear %s: %v", ErrUnavailable, rangeID, err)
	}

	return nil
}
