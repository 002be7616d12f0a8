package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chris-regnier/thankful/internal/entry"
)

// Live wraps a Repository and lets callers watch a date for changes. Every
// successful Upsert or Delete that goes through Live is published to the
// watchers of that date.
type Live struct {
	Repository

	mu   sync.Mutex
	subs map[string]map[*Subscription]struct{}
}

// NewLive wraps repo with change notification.
func NewLive(repo Repository) *Live {
	return &Live{
		Repository: repo,
		subs:       make(map[string]map[*Subscription]struct{}),
	}
}

// Subscription is a live view of the entry stored for one date. C receives
// the current value on subscribe and the new value after each change; nil
// means no entry exists. A slow reader only ever sees the latest value.
type Subscription struct {
	C <-chan *entry.Entry

	ch     chan *entry.Entry
	key    string
	live   *Live
	once   sync.Once
	stop   func() bool
	closed bool // guarded by live.mu
}

// Watch subscribes to the entry for date. The subscription ends when ctx is
// done or Cancel is called, at which point C is closed.
func (l *Live) Watch(ctx context.Context, date time.Time) (*Subscription, error) {
	key := entry.FormatDate(entry.NormalizeDate(date))
	ch := make(chan *entry.Entry, 1)
	s := &Subscription{C: ch, ch: ch, key: key, live: l}

	l.mu.Lock()
	defer l.mu.Unlock()
	current, err := l.Repository.GetByDate(ctx, date)
	switch {
	case err == nil:
		s.offer(&current)
	case errors.Is(err, ErrNotFound):
		s.offer(nil)
	default:
		return nil, err
	}
	if l.subs[key] == nil {
		l.subs[key] = make(map[*Subscription]struct{})
	}
	l.subs[key][s] = struct{}{}

	// Cancel takes l.mu, so the callback cannot observe s half-registered.
	s.stop = context.AfterFunc(ctx, s.Cancel)
	return s, nil
}

// Upsert writes through to the wrapped repository and notifies watchers.
func (l *Live) Upsert(ctx context.Context, e entry.Entry) (entry.Entry, error) {
	saved, err := l.Repository.Upsert(ctx, e)
	if err != nil {
		return saved, err
	}
	l.publish(saved.Key(), &saved)
	return saved, nil
}

// Delete removes through the wrapped repository and notifies watchers.
func (l *Live) Delete(ctx context.Context, date time.Time) error {
	if err := l.Repository.Delete(ctx, date); err != nil {
		return err
	}
	l.publish(entry.FormatDate(entry.NormalizeDate(date)), nil)
	return nil
}

// Close ends every subscription and closes the wrapped repository.
func (l *Live) Close() error {
	l.mu.Lock()
	var all []*Subscription
	for _, set := range l.subs {
		for s := range set {
			all = append(all, s)
		}
	}
	l.mu.Unlock()

	for _, s := range all {
		s.Cancel()
	}
	return l.Repository.Close()
}

func (l *Live) publish(key string, e *entry.Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for s := range l.subs[key] {
		if e == nil {
			s.offer(nil)
			continue
		}
		cp := *e
		s.offer(&cp)
	}
}

// offer replaces any unread value with e. Callers hold live.mu.
func (s *Subscription) offer(e *entry.Entry) {
	if s.closed {
		return
	}
	select {
	case s.ch <- e:
		return
	default:
	}
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- e:
	default:
	}
}

// Cancel ends the subscription and closes C. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.live.mu.Lock()
		if set := s.live.subs[s.key]; set != nil {
			delete(set, s)
			if len(set) == 0 {
				delete(s.live.subs, s.key)
			}
		}
		s.closed = true
		close(s.ch)
		stop := s.stop
		s.live.mu.Unlock()
		if stop != nil {
			stop()
		}
	})
}
