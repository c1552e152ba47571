// Package rotation tracks which club members have been featured recently.
//
// The rotation lives in the record store as a column of contributor names.
// Once every roster member appears in the rotation the column is cleared and
// turn-taking starts over.
package rotation

import (
	"context"

	"github.com/krlohnes/album-club-bot/internal/store"
	"github.com/rs/zerolog"
)

// Ranges names the store ranges the tracker operates on.
type Ranges struct {
	Rotation string // recently featured contributors, one per row
	Roster   string // all known contributors, one per row
}

// Tracker maintains the recently-featured set against the record store.
type Tracker struct {
	store  store.Store
	ranges Ranges
	logger zerolog.Logger
}

// NewTracker creates a Tracker over the given store and ranges.
func NewTracker(s store.Store, r Ranges, logger zerolog.Logger) *Tracker {
	return &Tracker{
		store:  s,
		ranges: r,
		logger: logger.With().Str("component", "rotation").Logger(),
	}
}

// Current returns the set of recently featured contributors.
func (t *Tracker) Current(ctx context.Context) (map[string]struct{}, error) {
	return t.readSet(ctx, t.ranges.Rotation)
}

// Roster returns all known contributors in store order, deduplicated.
func (t *Tracker) Roster(ctx context.Context) ([]string, error) {
	rows, err := t.store.ReadRange(ctx, t.ranges.Roster)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(rows))
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		if _, ok := seen[row[0]]; ok {
			continue
		}
		seen[row[0]] = struct{}{}
		names = append(names, row[0])
	}

	return names, nil
}

// Record appends a contributor to the rotation and clears the rotation once
// it covers the whole roster. Duplicate records of the same contributor are
// harmless: membership is tested with set semantics, so they never
// double-count toward fullness.
func (t *Tracker) Record(ctx context.Context, contributor string) error {
	if err := t.store.AppendValue(ctx, t.ranges.Rotation, contributor); err != nil {
		return err
	}

	current, err := t.readSet(ctx, t.ranges.Rotation)
	if err != nil {
		return err
	}
	// The re-read may lag the append we just made; union it in so the
	// fullness check never misses its own write.
	current[contributor] = struct{}{}

	roster, err := t.Roster(ctx)
	if err != nil {
		return err
	}
	if len(roster) == 0 {
		return nil
	}

	for _, name := range roster {
		if _, ok := current[name]; !ok {
			return nil
		}
	}

	t.logger.Info().
		Str("contributor", contributor).
		Int("roster_size", len(roster)).
		Msg("Rotation full, clearing")

	return t.store.ClearRange(ctx, t.ranges.Rotation)
}

func (t *Tracker) readSet(ctx context.Context, rangeID string) (map[string]struct{}, error) {
	rows, err := t.store.ReadRange(ctx, rangeID)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		set[row[0]] = struct{}{}
	}

	return set, nil
}
