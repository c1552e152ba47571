package store

import (
	"context"
	"errors"
)

// ErrUnavailable indicates a transport or auth failure against the record
// store. Callers must not retry internally; retry policy belongs to whatever
// serves the chat command.
var ErrUnavailable = errors.New("record store unavailable")

// Store is a narrow interface over the club's tabular record store.
//
// Ranges are A1-notation strings (e.g. "Rotation!A:A"). Reads return the
// literal cell text; empty cells yield empty strings. No row-shape
// validation happens at this layer.
type Store interface {
	// ReadRange returns all rows within the range, in sheet order.
	ReadRange(ctx context.Context, rangeID string) ([][]string, error)

	// AppendValue appends a single-cell row to the end of the range.
	AppendValue(ctx context.Context, rangeID string, value string) error

	// ClearRange removes every value in the range.
	ClearRange(ctx context.Context, rangeID string) error
}
