// Package storetest provides an in-memory store.Store for unit tests.
package storetest

import (
	"context"
	"sync"

	"github.com/krlohnes/album-club-bot/internal/store"
)

// Fake is an in-memory implementation of store.Store. Seed ranges through
// Set, inject failures through Fail, and inspect writes through Appends and
// Clears. Safe for concurrent use.
type Fake struct {
	mu     sync.Mutex
	ranges map[string][][]string
	errs   map[string]error

	// Appends records every AppendValue call as rangeID, value pairs.
	Appends [][2]string
	// Clears records every cleared rangeID in order.
	Clears []string
}

// New creates an empty Fake.
func New() *Fake {
	return &Fake{
		ranges: make(map[string][][]string),
		errs:   make(map[string]error),
	}
}

// Set replaces the contents of a range.
func (f *Fake) Set(rangeID string, rows [][]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ranges[rangeID] = rows
}

// SetColumn replaces a range with one single-cell row per value.
func (f *Fake) SetColumn(rangeID string, values ...string) {
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{v}
	}
	f.Set(rangeID, rows)
}

// Fail makes every operation on the range return err.
func (f *Fake) Fail(rangeID string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[rangeID] = err
}

// Rows returns a copy of the current contents of a range.
func (f *Fake) Rows(rangeID string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	rows := make([][]string, len(f.ranges[rangeID]))
	copy(rows, f.ranges[rangeID])
	return rows
}

// ReadRange implements store.Store.
func (f *Fake) ReadRange(_ context.Context, rangeID string) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.errs[rangeID]; err != nil {
		return nil, err
	}

	rows := make([][]string, len(f.ranges[rangeID]))
	copy(rows, f.ranges[rangeID])
	return rows, nil
}

// AppendValue implements store.Store.
func (f *Fake) AppendValue(_ context.Context, rangeID string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.errs[rangeID]; err != nil {
		return err
	}

	f.ranges[rangeID] = append(f.ranges[rangeID], []string{value})
	f.Appends = append(f.Appends, [2]string{rangeID, value})
	return nil
}

// ClearRange implements store.Store.
func (f *Fake) ClearRange(_ context.Context, rangeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.errs[rangeID]; err != nil {
		return err
	}

	f.ranges[rangeID] = nil
	f.Clears = append(f.Clears, rangeID)
	return nil
}

var _ store.Store = (*Fake)(nil)
