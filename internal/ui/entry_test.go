package ui

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/thankful/internal/config"
	"github.com/chris-regnier/thankful/internal/entry"
	"github.com/chris-regnier/thankful/internal/resources"
	"github.com/chris-regnier/thankful/internal/session"
	"github.com/chris-regnier/thankful/internal/storage"
	"github.com/chris-regnier/thankful/internal/storage/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var screenStrings = resources.Static{
	Values: map[string]string{
		resources.Today:                  "Today",
		resources.Yesterday:              "Yesterday",
		resources.WhatAreYouThankfulFor:  "What are you thankful for?",
		resources.WhatWereYouThankfulFor: "What were you thankful for?",
		resources.IAm:                    "I am thankful for",
		resources.IWas:                   "I was thankful for",
	},
	Arrays: map[string][]string{
		resources.Inspirations: {"Gratitude turns what we have into enough."},
		resources.Prompts:      {"Who helped you today?", "What made you smile?"},
	},
}

var screenNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)

type screenFixture struct {
	live   *storage.Live
	sess   *session.Session
	copied []string
}

func newScreen(t *testing.T) (*screenFixture, entryModel) {
	t.Helper()
	s, err := markdown.New(t.TempDir())
	require.NoError(t, err)
	live := storage.NewLive(s)
	t.Cleanup(func() { live.Close() })

	sess, err := session.New(context.Background(), "2024-06-15", live, screenStrings,
		session.WithClock(func() time.Time { return screenNow }),
		session.WithRand(rand.New(rand.NewPCG(1, 2))),
	)
	require.NoError(t, err)
	t.Cleanup(func() { sess.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	require.NoError(t, sess.WaitLoaded(ctx))

	f := &screenFixture{live: live, sess: sess}
	m := newEntryModel(ctx, sess, EntryScreenConfig{
		Theme: ResolveTheme(config.ThemeConfig{}),
		Copy: func(s string) error {
			f.copied = append(f.copied, s)
			return nil
		},
	})
	t.Cleanup(m.close)
	return f, m
}

func press(t *testing.T, m entryModel, msg tea.Msg) (entryModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(entryModel), cmd
}

func typeText(t *testing.T, m entryModel, text string) entryModel {
	t.Helper()
	for _, r := range text {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestEntryScreenTypingUpdatesSession(t *testing.T) {
	f, m := newScreen(t)
	assert.Equal(t, "What are you thankful for?", m.editor.Placeholder)
	assert.True(t, f.sess.IsEmpty().Get())

	m = typeText(t, m, "Sunshine")
	assert.Equal(t, "Sunshine", f.sess.Content().Get())
	assert.False(t, f.sess.IsEmpty().Get())
	assert.True(t, m.dirty())
	assert.Contains(t, stripANSI(m.footer()), "Unsaved changes")
}

func TestEntryScreenSave(t *testing.T) {
	f, m := newScreen(t)
	m = typeText(t, m, "Tea")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.Equal(t, "Saving...", m.status)

	m, _ = press(t, m, cmd())
	assert.Equal(t, "Saved", m.status)
	assert.NoError(t, m.err)

	got, err := f.live.GetByDate(context.Background(), f.sess.Date())
	require.NoError(t, err)
	assert.Equal(t, "Tea", got.Content)
}

func TestEntryScreenNextPrompt(t *testing.T) {
	f, m := newScreen(t)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Contains(t, screenStrings.Arrays[resources.Prompts], m.editor.Placeholder)
	assert.Equal(t, f.sess.Hint(), m.editor.Placeholder)
	assert.Equal(t, "", f.sess.Content().Get(), "drawing a prompt must not edit the text")
}

func TestEntryScreenCopyShareText(t *testing.T) {
	f, m := newScreen(t)
	m = typeText(t, m, "Friends")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})

	assert.Equal(t, []string{"Today I am thankful for friends"}, f.copied)
	assert.Equal(t, "Copied to clipboard", m.status)
}

func TestEntryScreenCopyFailure(t *testing.T) {
	_, m := newScreen(t)
	m.cfg.Copy = func(string) error { return errors.New("no clipboard") }
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "Copy failed: no clipboard", m.status)
}

func TestEntryScreenQuitSavesDirtyText(t *testing.T) {
	f, m := newScreen(t)
	m = typeText(t, m, "Rain")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)

	m, cmd = press(t, m, cmd())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())

	got, err := f.live.GetByDate(context.Background(), f.sess.Date())
	require.NoError(t, err)
	assert.Equal(t, "Rain", got.Content)
}

func TestEntryScreenQuitWithoutChanges(t *testing.T) {
	f, m := newScreen(t)
	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, err := f.live.GetByDate(context.Background(), f.sess.Date())
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestEntryScreenFollowsExternalChanges(t *testing.T) {
	f, m := newScreen(t)
	_, err := f.live.Upsert(context.Background(), entry.New(f.sess.Date(), "From elsewhere"))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return f.sess.Content().Get() == "From elsewhere"
	}, 2*time.Second, 10*time.Millisecond)

	msg := m.waitForChange()()
	require.IsType(t, sessionChangedMsg{}, msg)
	m, cmd := press(t, m, msg)
	assert.NotNil(t, cmd)
	assert.Equal(t, "From elsewhere", m.editor.Value())
	assert.False(t, m.dirty())
}

func TestEntryScreenView(t *testing.T) {
	_, m := newScreen(t)
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	view := stripANSI(m.View())
	assert.Contains(t, view, "Today")
	assert.Contains(t, view, "Gratitude turns what we have into enough.")
	assert.Contains(t, view, "Nothing written yet")
	assert.Contains(t, view, "ctrl+s save")
	assert.Equal(t, 30, countLines(view))
}
