package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/chris-regnier/thankful/internal/entry"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound   = errors.New("entry not found")
	ErrStorage    = errors.New("storage error")
	ErrValidation = errors.New("validation error")
)

// ListOptions controls filtering and paging for List operations.
type ListOptions struct {
	StartDate *time.Time // inclusive lower bound (nil = no lower bound)
	EndDate   *time.Time // inclusive upper bound (nil = no upper bound)
	Limit     int        // 0 = no limit
	Offset    int        // pagination offset
}

// Repository defines persistence for gratitude entries keyed by calendar date.
type Repository interface {
	// GetByDate returns the entry stored for date, or ErrNotFound.
	GetByDate(ctx context.Context, date time.Time) (entry.Entry, error)

	// Upsert inserts or replaces the entry for e.Date. An existing entry keeps
	// its ID and CreatedAt. Returns the stored entry.
	Upsert(ctx context.Context, e entry.Entry) (entry.Entry, error)

	// List returns entries ordered by date, most recent first.
	List(ctx context.Context, opts ListOptions) ([]entry.Entry, error)

	// Delete removes the entry for date, or returns ErrNotFound.
	Delete(ctx context.Context, date time.Time) error

	Close() error
}

// Stamp prepares e for writing on top of existing (nil when absent): the date
// is normalized, identity and creation time are carried over or assigned, and
// UpdatedAt is set to now.
func Stamp(existing *entry.Entry, e entry.Entry, now time.Time) (entry.Entry, error) {
	if e.Date.IsZero() {
		return entry.Entry{}, fmt.Errorf("%w: entry date must be set", ErrValidation)
	}
	e.Date = entry.NormalizeDate(e.Date)
	now = now.UTC().Truncate(time.Second)

	if existing != nil {
		e.ID = existing.ID
		e.CreatedAt = existing.CreatedAt
	}
	if e.ID != "" && entry.ValidateID(e.ID) != nil {
		// hand-edited or foreign files get a fresh ID
		e.ID = ""
	}
	if e.ID == "" {
		id, err := entry.NewID()
		if err != nil {
			return entry.Entry{}, fmt.Errorf("%w: generating entry ID: %v", ErrStorage, err)
		}
		e.ID = id
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	return e, nil
}

// Filter applies opts to entries in memory: range bounds, descending date
// order, then offset and limit. Used by backends without a query engine.
func Filter(entries []entry.Entry, opts ListOptions) []entry.Entry {
	var out []entry.Entry
	for _, e := range entries {
		d := entry.NormalizeDate(e.Date)
		if opts.StartDate != nil && d.Before(entry.NormalizeDate(*opts.StartDate)) {
			continue
		}
		if opts.EndDate != nil && d.After(entry.NormalizeDate(*opts.EndDate)) {
			continue
		}
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})

	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return []entry.Entry{}
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	if out == nil {
		out = []entry.Entry{}
	}
	return out
}
