// Package bot wires the selection core to Discord.
package bot

import (
	"context"
	"errors"

	"github.com/krlohnes/album-club-bot/internal/catalog"
	"github.com/krlohnes/album-club-bot/internal/config"
	"github.com/krlohnes/album-club-bot/internal/prefetch"
	"github.com/krlohnes/album-club-bot/internal/review"
	"github.com/krlohnes/album-club-bot/internal/rotation"
	"github.com/krlohnes/album-club-bot/internal/selection"
	"github.com/krlohnes/album-club-bot/internal/store"
	"github.com/rs/zerolog"
)

// User-facing replies. The store and catalog are external systems, so the
// error texts stay vague on purpose; details go to the log.
const (
	replyFetchError = "Try again later!"
	replyNoEligible = "Nothing fits right now! Wait for the rotation or last genre to change."
	replyWarmingUp  = "Still warming up, ask me again in a few seconds."
	replyNoCurrent  = "No album is currently being featured."
	replyResetDone  = "Reviewer queue reshuffled."
)

// App owns every component that serves chat commands. Handlers return
// user-facing reply text and log failures themselves.
type App struct {
	Store     store.Store
	Catalog   *catalog.Reader
	Rotation  *rotation.Tracker
	Selection *selection.Picker
	Reviewers *review.Picker
	Albums    *prefetch.Cache

	logger zerolog.Logger
}

// NewApp builds the component graph over a store. links may be nil.
func NewApp(s store.Store, ranges config.RangesConfig, links prefetch.LinkFinder, logger zerolog.Logger) *App {
	reader := catalog.NewReader(s, catalog.Ranges{
		Albums:  ranges.Albums,
		Last:    ranges.Last,
		Current: ranges.Current,
	})
	tracker := rotation.NewTracker(s, rotation.Ranges{
		Rotation: ranges.Rotation,
		Roster:   ranges.Roster,
	}, logger)
	picker := selection.NewPicker(reader, tracker, logger)

	return &App{
		Store:     s,
		Catalog:   reader,
		Rotation:  tracker,
		Selection: picker,
		Reviewers: review.NewPicker(reader, tracker, logger),
		Albums:    prefetch.New(picker, tracker, links, logger),
		logger:    logger.With().Str("component", "bot").Logger(),
	}
}

// NextAlbum serves the prefetched pick.
func (a *App) NextAlbum() string {
	res, ok := a.Albums.Consume()
	if !ok {
		if errors.Is(a.Albums.Err(), selection.ErrNoEligibleAlbum) {
			return replyNoEligible
		}
		return replyWarmingUp
	}
	return formatNext(res)
}

// CurrentAlbum reports the album the club is currently on.
func (a *App) CurrentAlbum(ctx context.Context) string {
	album, err := a.Catalog.Current(ctx)
	if errors.Is(err, catalog.ErrNoCurrent) {
		return replyNoCurrent
	}
	if err != nil {
		a.logger.Error().Err(err).Msg("Failed to read current album")
		return replyFetchError
	}
	return formatCurrent(album)
}

// NextReviewer pops the next reviewer from the queue.
func (a *App) NextReviewer(ctx context.Context) string {
	name, err := a.Reviewers.Next(ctx)
	if err != nil {
		a.logger.Error().Err(err).Msg("Failed to pick next reviewer")
		return replyFetchError
	}
	return formatReviewer(name)
}

// ResetReviewers rebuilds the reviewer queue.
func (a *App) ResetReviewers(ctx context.Context) string {
	if err := a.Reviewers.Reset(ctx); err != nil {
		a.logger.Error().Err(err).Msg("Failed to reset reviewer queue")
		return replyFetchError
	}
	return replyResetDone
}
