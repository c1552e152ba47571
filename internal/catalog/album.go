package catalog

import (
	"fmt"
)

// Album is one row of the club's album catalog.
type Album struct {
	Artist  string // Artist name
	Title   string // Album title
	Genre   string // Genre as entered by the club
	AddedBy string // Club member who added the album
	Row     int    // Position within the catalog range, stable per read
}

// String renders the album the way the bot announces it.
func (a Album) String() string {
	return fmt.Sprintf("Album: %s, Artist: %s, Genre: %s, Added By: %s",
		a.Title, a.Artist, a.Genre, a.AddedBy)
}

// ParseRow builds an Album from a raw store row. The catalog stores albums
// as artist, title, genre, added-by; rows with fewer than four cells are
// rejected here so shape problems surface at the boundary instead of deep
// in the selection path.
func ParseRow(cells []string, row int) (Album, error) {
	if len(cells) < 4 {
		return Album{}, fmt.Errorf("catalog row %d has %d cells, want at least 4", row, len(cells))
	}

	return Album{
		Artist:  cells[0],
		Title:   cells[1],
		Genre:   cells[2],
		AddedBy: cells[3],
		Row:     row,
	}, nil
}
