package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/krlohnes/album-club-bot/internal/store"
)

// ErrNoCurrent indicates the current-album range is empty. The club fills
// that range in by hand when a new album starts, so an empty range is a
// normal state shortly after a reset.
var ErrNoCurrent = errors.New("no current album set")

// Ranges names the store ranges the catalog reads from.
type Ranges struct {
	Albums  string // full candidate catalog, one album per row
	Last    string // single row: last selection's genre and contributor
	Current string // single row: the currently featured album
}

// Reader reads albums and selection metadata out of the record store.
// It holds no cache; every call reads fresh.
type Reader struct {
	store  store.Store
	ranges Ranges
}

// NewReader creates a Reader over the given store and ranges.
func NewReader(s store.Store, r Ranges) *Reader {
	return &Reader{store: s, ranges: r}
}

// List reads and parses the full candidate catalog.
func (r *Reader) List(ctx context.Context) ([]Album, error) {
	rows, err := r.store.ReadRange(ctx, r.ranges.Albums)
	if err != nil {
		return nil, err
	}

	albums := make([]Album, 0, len(rows))
	for i, row := range rows {
		album, err := ParseRow(row, i)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		albums = append(albums, album)
	}

	return albums, nil
}

// LastSelection reads the most recent pick's genre and contributor.
// Missing cells read as empty strings, which disables the matching
// exclusion filter.
func (r *Reader) LastSelection(ctx context.Context) (genre, contributor string, err error) {
	rows, err := r.store.ReadRange(ctx, r.ranges.Last)
	if err != nil {
		return "", "", err
	}

	if len(rows) == 0 {
		return "", "", nil
	}

	row := rows[0]
	if len(row) > 0 {
		genre = row[0]
	}
	if len(row) > 1 {
		contributor = row[1]
	}

	return genre, contributor, nil
}

// Current reads the currently featured album. Returns ErrNoCurrent when the
// range is empty.
func (r *Reader) Current(ctx context.Context) (Album, error) {
	rows, err := r.store.ReadRange(ctx, r.ranges.Current)
	if err != nil {
		return Album{}, err
	}

	if len(rows) == 0 {
		return Album{}, ErrNoCurrent
	}

	album, err := ParseRow(rows[0], 0)
	if err != nil {
		return Album{}, fmt.Errorf("read current album: %w", err)
	}

	return album, nil
}
