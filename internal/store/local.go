package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// LocalStore implements Store on top of a SQLite database. It exists so the
// bot can run without sheet credentials (development, integration tests)
// against the exact same range semantics.
type LocalStore struct {
	db *sql.DB
}

// NewLocalStore opens (or creates) a SQLite-backed store at dbPath.
// Use ":memory:" for an ephemeral store.
func NewLocalStore(dbPath string) (*LocalStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection keeps in-memory databases consistent and is plenty
	// for this workload.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS cells (
			range_id TEXT NOT NULL,
			row INTEGER NOT NULL,
			col INTEGER NOT NULL,
			value TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (range_id, row, col)
		);

		CREATE INDEX IF NOT EXISTS idx_range_row ON cells(range_id, row);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &LocalStore{db: db}, nil
}

// Close closes the database connection.
func (s *LocalStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ReadRange returns all rows stored under the range, in row order.
func (s *LocalStore) ReadRange(ctx context.Context, rangeID string) ([][]string, error) {
	query := `
		SELECT row, col, value
		FROM cells
		WHERE range_id = ?
		ORDER BY row ASC, col ASC
	`

	rows, err := s.db.QueryContext(ctx, query, rangeID)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, rangeID, err)
	}
	defer rows.Close()

	var (
		result  [][]string
		current []string
		lastRow = -1
	)

	for rows.Next() {
		var rowNum, colNum int
		var value string
		if err := rows.Scan(&rowNum, &colNum, &value); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", ErrUnavailable, rangeID, err)
		}

		if rowNum != lastRow {
			if current != nil {
				result = append(result, current)
			}
			current = nil
			lastRow = rowNum
		}

		// Fill gaps so column positions survive the round trip as empty
		// strings, the same way the sheets API renders blank cells.
		for len(current) < colNum {
			current = append(current, "")
		}
		current = append(current, value)
	}
	if current != nil {
		result = append(result, current)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate %s: %v", ErrUnavailable, rangeID, err)
	}

	return result, nil
}

// AppendValue appends a single-cell row to the end of the range.
func (s *LocalStore) AppendValue(ctx context.Context, rangeID string, value string) error {
	query := `
		INSERT INTO cells (range_id, row, col, value)
		VALUES (?, (SELECT COALESCE(MAX(row), -1) + 1 FROM cells WHERE range_id = ?), 0, ?)
	`

	if _, err := s.db.ExecContext(ctx, query, rangeID, rangeID, value); err != nil {
		return fmt.Errorf("%w: append to %s: %v", ErrUnavailable, rangeID, err)
	}

	return nil
}

// ClearRange removes every value in the range.
func (s *LocalStore) ClearRange(ctx context.Context, rangeID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM cells WHERE range_id = ?", rangeID); err != nil {
		return fmt.Errorf("%w: clear %s: %v", ErrUnavailable, rangeID, err)
	}

	return nil
}

// InsertRow appends a multi-cell row to the range. Not part of the Store
// interface; used to seed local databases for development and testing.
func (s *LocalStore) InsertRow(ctx context.Context, rangeID string, cells ...string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var rowNum int
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(row), -1) + 1 FROM cells WHERE range_id = ?", rangeID,
	).Scan(&rowNum)
	if err != nil {
		return fmt.Errorf("failed to find next row: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO cells (range_id, row, col, value) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for col, value := range cells {
		if _, err := stmt.ExecContext(ctx, rangeID, rowNum, col, value); err != nil {
			return fmt.Errorf("failed to insert cell: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
