// Package review hands out reviewer assignments for the current album.
package review

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"

	"github.com/krlohnes/album-club-bot/internal/catalog"
	"github.com/krlohnes/album-club-bot/internal/rotation"
	"github.com/rs/zerolog"
)

// Picker maintains a process-local shuffled queue of reviewer names. The
// queue is the roster minus the current album's contributor, refilled
// whenever it runs dry.
//
// The mutex covers the whole read-modify-pop sequence, including the store
// reads during a refill: refills are rare and two concurrent callers must
// never both trigger one.
type Picker struct {
	mu      sync.Mutex
	queue   []string
	catalog *catalog.Reader
	roster  *rotation.Tracker
	shuffle func([]string)
	logger  zerolog.Logger
}

// NewPicker creates a Picker. The shuffle uses the shared math/rand/v2
// generator; tests swap it via SetShuffle.
func NewPicker(c *catalog.Reader, r *rotation.Tracker, logger zerolog.Logger) *Picker {
	return &Picker{
		catalog: c,
		roster:  r,
		shuffle: func(names []string) {
			rand.Shuffle(len(names), func(i, j int) {
				names[i], names[j] = names[j], names[i]
			})
		},
		logger: logger.With().Str("component", "review").Logger(),
	}
}

// SetShuffle replaces the permutation applied at refill time. Used by tests
// for deterministic queues.
func (p *Picker) SetShuffle(shuffle func([]string)) {
	p.shuffle = shuffle
}

// Next pops the next reviewer, refilling the queue first if it is empty.
func (p *Picker) Next(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.queue) == 0 {
		if err := p.refillLocked(ctx); err != nil {
			return "", err
		}
	}

	if len(p.queue) == 0 {
		return "", errors.New("no reviewers available")
	}

	name := p.queue[0]
	p.queue = p.queue[1:]
	return name, nil
}

// Reset discards whatever is queued and rebuilds it from the store.
func (p *Picker) Reset(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refillLocked(ctx)
}

// refillLocked rebuilds the queue from roster minus the current album's
// contributor, randomly permuted. Caller holds p.mu.
func (p *Picker) refillLocked(ctx context.Context) error {
	exclude := ""
	current, err := p.catalog.Current(ctx)
	switch {
	case err == nil:
		exclude = current.AddedBy
	case errors.Is(err, catalog.ErrNoCurrent):
		// No album featured yet; everyone is eligible.
	default:
		return err
	}

	roster, err := p.roster.Roster(ctx)
	if err != nil {
		return err
	}

	queue := make([]string, 0, len(roster))
	for _, name := range roster {
		if name == exclude {
			continue
		}
		queue = append(queue, name)
	}
	p.shuffle(queue)
	p.queue = queue

	p.logger.Debug().
		Int("queue_size", len(queue)).
		Str("excluded", exclude).
		Msg("Refilled reviewer queue")

	return nil
}
