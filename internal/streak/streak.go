// Package streak computes journaling streaks from stored entries.
package streak

import (
	"context"
	"strings"
	"time"

	"github.com/chris-regnier/thankful/internal/entry"
	"github.com/chris-regnier/thankful/internal/storage"
)

// Lister is the subset of storage.Repository needed for streaks.
type Lister interface {
	List(ctx context.Context, opts storage.ListOptions) ([]entry.Entry, error)
}

// Status summarizes recent journaling activity.
type Status struct {
	Today  bool `json:"today"`  // an entry with content exists for today
	Streak int  `json:"streak"` // consecutive days with entries
	Total  int  `json:"total"`  // entries in the window
}

// Window bounds how far back streaks are computed.
const Window = 365

// Compute reports whether today has an entry and the current streak. The
// streak counts back from today, or from yesterday when today is still
// unwritten, so an open streak is not broken before the day is over. Entries
// whose content is blank do not count.
func Compute(ctx context.Context, repo Lister, now time.Time) (Status, error) {
	today := entry.NormalizeDate(now)

	// Query a generous window for streak computation.
	startDate := today.AddDate(0, 0, -Window)
	entries, err := repo.List(ctx, storage.ListOptions{
		StartDate: &startDate,
		EndDate:   &today,
	})
	if err != nil {
		return Status{}, err
	}

	// Build a set of dates that have entries
	var st Status
	daySet := make(map[string]bool, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Content) == "" {
			continue
		}
		daySet[e.Key()] = true
		if entry.SameDay(e.Date, now) {
			st.Today = true
		}
	}
	st.Total = len(daySet)

	check := today
	if !st.Today {
		check = today.AddDate(0, 0, -1)
	}
	for daySet[entry.FormatDate(check)] {
		st.Streak++
		check = check.AddDate(0, 0, -1)
	}

	return st, nil
}
