package mcptools

import (
	"time"

	"github.com/chris-regnier/thankful/internal/entry"
)

// resolveDate returns the canonical key for date, or today's key when date
// is empty.
func (s *Server) resolveDate(date string) (string, error) {
	if date == "" {
		return entry.FormatDate(s.now()), nil
	}
	t, err := entry.ParseDate(date)
	if err != nil {
		return "", err
	}
	return entry.FormatDate(t), nil
}

func parseBound(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := entry.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
