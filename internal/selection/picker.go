// Package selection picks the club's next album.
//
// A pick reads the catalog, the rotation, and the last selection fresh from
// the store, filters out anything that would repeat a contributor or genre,
// and draws uniformly from what is left. Picking never commits anything:
// rotation state only changes when a pick is actually served.
package selection

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"

	"github.com/krlohnes/album-club-bot/internal/catalog"
	"github.com/krlohnes/album-club-bot/internal/rotation"
	"github.com/rs/zerolog"
)

// ErrNoEligibleAlbum indicates that no catalog row survived filtering.
// Surfaced instead of resampling so an over-constrained catalog is a clear
// answer, not a hang.
var ErrNoEligibleAlbum = errors.New("no eligible album")

// Picker selects the next album under the club's fairness constraints.
type Picker struct {
	catalog  *catalog.Reader
	rotation *rotation.Tracker
	intn     func(n int) int
	logger   zerolog.Logger
}

// NewPicker creates a Picker. The random source is the shared math/rand/v2
// generator; tests swap it via SetIntn.
func NewPicker(c *catalog.Reader, r *rotation.Tracker, logger zerolog.Logger) *Picker {
	return &Picker{
		catalog:  c,
		rotation: r,
		intn:     rand.IntN,
		logger:   logger.With().Str("component", "selection").Logger(),
	}
}

// SetIntn replaces the random index source. intn must return a value in
// [0, n). Used by tests for deterministic picks.
func (p *Picker) SetIntn(intn func(n int) int) {
	p.intn = intn
}

// Next returns a uniformly random album satisfying all three exclusions:
// contributor not in rotation, genre differing from the last pick's genre,
// and contributor differing from the last pick's contributor.
func (p *Picker) Next(ctx context.Context) (catalog.Album, error) {
	albums, err := p.catalog.List(ctx)
	if err != nil {
		return catalog.Album{}, err
	}

	rot, err := p.rotation.Current(ctx)
	if err != nil {
		return catalog.Album{}, err
	}

	lastGenre, lastContributor, err := p.catalog.LastSelection(ctx)
	if err != nil {
		return catalog.Album{}, err
	}

	eligible := make([]catalog.Album, 0, len(albums))
	for _, a := range albums {
		if _, featured := rot[a.AddedBy]; featured {
			continue
		}
		if strings.EqualFold(a.Genre, lastGenre) {
			continue
		}
		if strings.EqualFold(a.AddedBy, lastContributor) {
			continue
		}
		eligible = append(eligible, a)
	}

	if len(eligible) == 0 {
		return catalog.Album{}, ErrNoEligibleAlbum
	}

	pick := eligible[p.intn(len(eligible))]

	p.logger.Debug().
		Int("catalog_size", len(albums)).
		Int("eligible", len(eligible)).
		Str("title", pick.Title).
		Str("added_by", pick.AddedBy).
		Msg("Selected album")

	return pick, nil
}
