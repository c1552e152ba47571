// Package prefetch keeps the next album pick computed ahead of demand.
//
// Selection plus the external link lookup can take seconds; serving a
// precomputed result keeps chat replies instant. Rotation state is only
// committed when a result is actually served, so an unconsumed prefetch
// never pollutes the rotation.
package prefetch

import (
	"context"
	"sync"
	"time"

	"github.com/krlohnes/album-club-bot/internal/catalog"
	"github.com/krlohnes/album-club-bot/internal/rotation"
	"github.com/krlohnes/album-club-bot/internal/selection"
	"github.com/rs/zerolog"
)

// refreshTimeout bounds each background refresh, which is detached from any
// chat request.
const refreshTimeout = 30 * time.Second

// LinkFinder locates a streaming link for an album. Lookups are
// best-effort; an error just means no link.
type LinkFinder interface {
	AlbumLink(ctx context.Context, title, artist string) (string, error)
}

// Result is a prefetched pick, optionally enriched with a streaming link.
type Result struct {
	Album catalog.Album
	Link  string
}

// Cache holds at most one prefetched Result. Consuming it records the pick's
// contributor into the rotation and refreshes the slot, both in the
// background.
type Cache struct {
	mu         sync.Mutex
	next       *Result
	refreshing bool
	lastErr    error

	picker   *selection.Picker
	rotation *rotation.Tracker
	links    LinkFinder
	logger   zerolog.Logger
	wg       sync.WaitGroup
}

// New creates a Cache. links may be nil, in which case results carry no
// link.
func New(p *selection.Picker, r *rotation.Tracker, links LinkFinder, logger zerolog.Logger) *Cache {
	return &Cache{
		picker:   p,
		rotation: r,
		links:    links,
		logger:   logger.With().Str("component", "prefetch").Logger(),
	}
}

// Initialize computes the first result synchronously. The bot should not
// come up without a pick ready, so failures propagate.
func (c *Cache) Initialize(ctx context.Context) error {
	res, err := c.compute(ctx)

	c.mu.Lock()
	c.next = res
	c.lastErr = err
	c.mu.Unlock()
	return err
}

// Consume takes the prefetched result. ok is false while the cache is still
// warming up (or repairing after a failed refresh); in that case a refresh
// is kicked off so a later call can succeed.
//
// On success the consumed contributor is recorded into the rotation and a
// new result is computed, both in a detached background task whose failure
// is logged, never surfaced.
func (c *Cache) Consume() (res *Result, ok bool) {
	c.mu.Lock()
	res = c.next
	c.next = nil
	contributor := ""
	spawn := false
	if res != nil {
		// Every served result must commit its contributor, even when a
		// refresh is still tearing down; only empty-slot repairs dedupe
		// on the refreshing flag.
		contributor = res.Album.AddedBy
		spawn = true
	} else if !c.refreshing {
		spawn = true
	}
	if spawn {
		c.refreshing = true
		c.wg.Add(1)
	}
	c.mu.Unlock()

	if spawn {
		go c.refresh(contributor)
	}

	return res, res != nil
}

// Wait blocks until any in-flight background refresh finishes. Used during
// shutdown.
func (c *Cache) Wait() {
	c.wg.Wait()
}

// Err reports why the slot is empty: the error from the most recent compute,
// or nil after a success. Callers use it to phrase "nothing eligible"
// differently from a transient failure.
func (c *Cache) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// refresh records the consumed contributor (when there was one) and
// repopulates the slot. Runs detached from any caller.
func (c *Cache) refresh(contributor string) {
	defer c.wg.Done()
	defer func() {
		c.mu.Lock()
		c.refreshing = false
		c.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if contributor != "" {
		if err := c.rotation.Record(ctx, contributor); err != nil {
			c.logger.Error().Err(err).
				Str("contributor", contributor).
				Msg("Failed to record contributor, leaving cache empty")
			c.mu.Lock()
			c.lastErr = err
			c.mu.Unlock()
			return
		}
	}

	res, err := c.compute(ctx)

	c.mu.Lock()
	c.next = res
	c.lastErr = err
	c.mu.Unlock()

	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to prefetch next album, leaving cache empty")
		return
	}

	c.logger.Debug().Str("title", res.Album.Title).Msg("Prefetched next album")
}

// compute runs a selection and best-effort link enrichment.
func (c *Cache) compute(ctx context.Context) (*Result, error) {
	album, err := c.picker.Next(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{Album: album}
	if c.links != nil {
		link, err := c.links.AlbumLink(ctx, album.Title, album.Artist)
		if err != nil {
			c.logger.Warn().Err(err).
				Str("title", album.Title).
				Msg("Link lookup failed, serving without link")
		} else {
			res.Link = link
		}
	}

	return res, nil
}
