// Package session holds the editable state of one journal entry while it is
// open on screen: the text buffer, its emptiness flag, background saving, and
// the strings derived from the entry date.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/chris-regnier/thankful/internal/entry"
	"github.com/chris-regnier/thankful/internal/observable"
	"github.com/chris-regnier/thankful/internal/prompt"
	"github.com/chris-regnier/thankful/internal/resources"
	"github.com/chris-regnier/thankful/internal/storage"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrClosed is returned when waiting on a session that has been closed.
var ErrClosed = errors.New("session closed")

// Repository is the subset of storage.Live a session needs.
type Repository interface {
	Watch(ctx context.Context, date time.Time) (*storage.Subscription, error)
	Upsert(ctx context.Context, e entry.Entry) (entry.Entry, error)
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the source of the current time used by the date-dependent
// strings.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithRand sets the random source used to pick the inspiration and shuffle
// the prompts.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithErrorHandler sets the function called when a background save fails.
// The default logs the failure.
func WithErrorHandler(fn func(error)) Option {
	return func(s *Session) { s.onError = fn }
}

type saveJob struct {
	gen     uint64
	content string
}

// Session is the state holder for the entry of one calendar date.
type Session struct {
	date    time.Time
	repo    Repository
	res     resources.Provider
	now     func() time.Time
	rng     *rand.Rand
	logger  *zap.Logger
	onError func(error)

	content *observable.Value[string]
	isEmpty *observable.Value[bool]
	current *observable.Value[*entry.Entry]

	inspiration string

	promptMu     sync.Mutex
	prompts      *prompt.Queue
	promptString string

	ctx    context.Context
	cancel context.CancelFunc
	group  errgroup.Group
	sub    *storage.Subscription
	derive sync.Mutex

	loaded     chan struct{}
	loadedOnce sync.Once

	wake chan struct{}

	mu         sync.Mutex // guards the fields below
	pending    *saveJob
	requested  uint64
	completed  uint64
	progress   chan struct{}
	lastErr    error
	firstErr   error
	written    string
	hasWritten bool

	closeOnce sync.Once
	closeErr  error
}

// New opens a session for the date in dateString (YYYY-MM-DD). It fails if
// the date cannot be parsed or the repository cannot be watched. The stored
// entry, if any, is loaded in the background; see WaitLoaded.
func New(ctx context.Context, dateString string, repo Repository, res resources.Provider, opts ...Option) (*Session, error) {
	date, err := entry.ParseDate(dateString)
	if err != nil {
		return nil, err
	}

	s := &Session{
		date:     date,
		repo:     repo,
		res:      res,
		now:      time.Now,
		logger:   zap.NewNop(),
		content:  observable.New(""),
		isEmpty:  observable.New(true),
		current:  observable.New[*entry.Entry](nil),
		loaded:   make(chan struct{}),
		wake:     make(chan struct{}, 1),
		progress: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.onError == nil {
		s.onError = func(err error) {
			s.logger.Error("saving entry failed",
				zap.String("date", entry.FormatDate(s.date)),
				zap.Error(err))
		}
	}

	s.inspiration = prompt.Pick(s.rng, res.Strings(resources.Inspirations))
	s.prompts = prompt.NewQueue(res.Strings(resources.Prompts), s.rng)

	s.content.Subscribe(func(string) {
		s.derive.Lock()
		defer s.derive.Unlock()
		s.isEmpty.Set(len(s.content.Get()) == 0)
	})

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.sub, err = repo.Watch(s.ctx, date)
	if err != nil {
		s.cancel()
		return nil, fmt.Errorf("watching entry for %s: %w", entry.FormatDate(date), err)
	}

	s.group.Go(s.watchLoop)
	s.group.Go(s.saveLoop)

	s.logger.Debug("session opened", zap.String("date", entry.FormatDate(date)))
	return s, nil
}

// Date returns the calendar date this session edits.
func (s *Session) Date() time.Time {
	return s.date
}

// Content is the editable entry text.
func (s *Session) Content() *observable.Value[string] {
	return s.content
}

// IsEmpty reports whether Content is empty. It is recomputed on every
// assignment to Content.
func (s *Session) IsEmpty() *observable.Value[bool] {
	return s.isEmpty
}

// Entry reflects the stored entry for the date, nil while none exists. It
// follows the repository for the lifetime of the session.
func (s *Session) Entry() *observable.Value[*entry.Entry] {
	return s.current
}

// SetContent assigns the entry text.
func (s *Session) SetContent(text string) {
	s.content.Set(text)
}

// WaitLoaded blocks until the first read of the stored entry has been applied.
func (s *Session) WaitLoaded(ctx context.Context) error {
	select {
	case <-s.loaded:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return ErrClosed
	}
}

func (s *Session) watchLoop() error {
	defer s.markLoaded()
	for e := range s.sub.C {
		s.current.Set(e)
		if e != nil && !s.isOwnWrite(e) {
			s.content.Set(e.Content)
		}
		s.markLoaded()
	}
	return nil
}

func (s *Session) markLoaded() {
	s.loadedOnce.Do(func() { close(s.loaded) })
}

// isOwnWrite reports whether e carries the text of this session's latest
// save. Such an echo must not clobber edits made while the save was running.
func (s *Session) isOwnWrite(e *entry.Entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasWritten && e.Content == s.written
}

// Save persists the current content in the background. Saves run one at a
// time in call order; a save that has not started when a newer one is
// requested is superseded by it, so the last call always wins. Failures go
// to the error handler and are reported again by Close.
func (s *Session) Save() {
	if s.ctx.Err() != nil {
		s.logger.Debug("save after close ignored", zap.String("date", entry.FormatDate(s.date)))
		return
	}

	text := s.content.Get()

	s.mu.Lock()
	s.requested++
	s.pending = &saveJob{gen: s.requested, content: text}
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Session) saveLoop() error {
	for {
		select {
		case <-s.ctx.Done():
			return nil
		case <-s.wake:
		}

		s.mu.Lock()
		job := s.pending
		s.pending = nil
		if job != nil {
			s.written = job.content
			s.hasWritten = true
		}
		s.mu.Unlock()
		if job == nil {
			continue
		}
		if s.ctx.Err() != nil {
			return nil
		}

		_, err := s.repo.Upsert(s.ctx, entry.New(s.date, job.content))
		if err != nil && s.ctx.Err() != nil {
			// cancelled by Close, not a failure
			return nil
		}
		if err != nil {
			s.onError(err)
		} else {
			s.logger.Debug("entry saved",
				zap.String("date", entry.FormatDate(s.date)),
				zap.Int("length", len(job.content)))
		}
		s.finish(job.gen, err)
	}
}

func (s *Session) finish(gen uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = gen
	s.lastErr = err
	if err != nil && s.firstErr == nil {
		s.firstErr = err
	}
	close(s.progress)
	s.progress = make(chan struct{})
}

// Flush waits until every save requested so far has been written and
// returns the error of the most recent one.
func (s *Session) Flush(ctx context.Context) error {
	s.mu.Lock()
	target := s.requested
	s.mu.Unlock()

	for {
		s.mu.Lock()
		if s.completed >= target {
			err := s.lastErr
			s.mu.Unlock()
			return err
		}
		ch := s.progress
		s.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		case <-s.ctx.Done():
			return ErrClosed
		}
	}
}

func (s *Session) isToday() bool {
	return s.date.Equal(entry.NormalizeDate(s.now()))
}

// DateLabel returns "Today", "Yesterday", or the long-form date, judged
// against the clock at call time.
func (s *Session) DateLabel() string {
	today := entry.NormalizeDate(s.now())
	switch {
	case s.date.Equal(today):
		return s.res.String(resources.Today)
	case s.date.Equal(today.AddDate(0, 0, -1)):
		return s.res.String(resources.Yesterday)
	default:
		return entry.FormatLong(s.date)
	}
}

// Hint returns the last drawn prompt, or the default question in the tense
// matching the date.
func (s *Session) Hint() string {
	s.promptMu.Lock()
	p := s.promptString
	s.promptMu.Unlock()
	if p != "" {
		return p
	}
	if s.isToday() {
		return s.res.String(resources.WhatAreYouThankfulFor)
	}
	return s.res.String(resources.WhatWereYouThankfulFor)
}

// DrawNextPrompt advances the prompt rotation and makes the drawn prompt the
// hint.
func (s *Session) DrawNextPrompt() string {
	s.promptMu.Lock()
	defer s.promptMu.Unlock()
	s.promptString = s.prompts.Next()
	return s.promptString
}

// PromptCount returns the number of prompts in one rotation.
func (s *Session) PromptCount() int {
	s.promptMu.Lock()
	defer s.promptMu.Unlock()
	return s.prompts.Len()
}

// Inspiration returns the quote chosen when the session was opened.
func (s *Session) Inspiration() string {
	return s.inspiration
}

// ThankfulPhrase returns "I am thankful for" for today and "I was thankful
// for" otherwise.
func (s *Session) ThankfulPhrase() string {
	if s.isToday() {
		return s.res.String(resources.IAm)
	}
	return s.res.String(resources.IWas)
}

// ShareText composes the shareable sentence for the entry.
func (s *Session) ShareText() string {
	return fmt.Sprintf("%s %s %s", s.DateLabel(), s.ThankfulPhrase(), entry.Decapitalize(s.content.Get()))
}

// Close tears the session down: pending saves are dropped, an in-flight save
// is cancelled, and the repository watch ends. When Close returns nothing
// started by the session is still running. The first save failure, if any,
// is returned.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		s.sub.Cancel()
		err := s.group.Wait()

		s.mu.Lock()
		s.pending = nil
		if s.firstErr != nil {
			err = s.firstErr
		}
		s.mu.Unlock()

		s.closeErr = err
		s.logger.Debug("session closed", zap.String("date", entry.FormatDate(s.date)))
	})
	return s.closeErr
}
