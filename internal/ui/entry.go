package ui

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/thankful/internal/entry"
	"github.com/chris-regnier/thankful/internal/session"
)

// EntryScreenConfig holds configuration for the entry screen.
type EntryScreenConfig struct {
	Theme    Theme
	MaxWidth int
	// Copy writes the share text to the clipboard. Defaults to the system
	// clipboard.
	Copy func(string) error
}

// sessionChangedMsg signals that the session content or stored entry moved.
type sessionChangedMsg struct{}

// savedMsg carries the outcome of waiting for queued saves.
type savedMsg struct{ err error }

type entryModel struct {
	ctx      context.Context
	sess     *session.Session
	cfg      EntryScreenConfig
	editor   textarea.Model
	changed  chan struct{}
	unsub    []func()
	status   string
	quitting bool
	done     bool
	err      error
	width    int
	height   int
}

func newEntryModel(ctx context.Context, sess *session.Session, cfg EntryScreenConfig) entryModel {
	if cfg.Copy == nil {
		cfg.Copy = clipboard.WriteAll
	}

	ta := textarea.New()
	ta.Placeholder = sess.Hint()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(10)
	ta.SetValue(sess.Content().Get())
	ta.Focus()

	m := entryModel{
		ctx:     ctx,
		sess:    sess,
		cfg:     cfg,
		editor:  ta,
		changed: make(chan struct{}, 1),
	}
	notify := func() {
		select {
		case m.changed <- struct{}{}:
		default:
		}
	}
	m.unsub = append(m.unsub,
		sess.Content().Subscribe(func(string) { notify() }),
		sess.Entry().Subscribe(func(*entry.Entry) { notify() }),
	)
	return m
}

func (m entryModel) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.changed:
			return sessionChangedMsg{}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m entryModel) flush() tea.Cmd {
	return func() tea.Msg {
		return savedMsg{err: m.sess.Flush(m.ctx)}
	}
}

// dirty reports whether the text differs from what is stored.
func (m entryModel) dirty() bool {
	stored := m.sess.Entry().Get()
	if stored == nil {
		return !m.sess.IsEmpty().Get()
	}
	return stored.Content != m.sess.Content().Get()
}

func (m entryModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.waitForChange())
}

func (m entryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(m.contentWidth())
		m.editor.SetHeight(max(m.height-8, 3))
		return m, nil

	case sessionChangedMsg:
		if content := m.sess.Content().Get(); content != m.editor.Value() {
			m.editor.SetValue(content)
		}
		return m, m.waitForChange()

	case savedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = "Save failed: " + msg.err.Error()
		} else {
			m.status = "Saved"
		}
		if m.quitting {
			m.done = true
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			m.sess.Save()
			m.status = "Saving..."
			return m, m.flush()
		case "ctrl+p":
			m.sess.DrawNextPrompt()
			m.editor.Placeholder = m.sess.Hint()
			return m, nil
		case "ctrl+y":
			if err := m.cfg.Copy(m.sess.ShareText()); err != nil {
				m.status = "Copy failed: " + err.Error()
			} else {
				m.status = "Copied to clipboard"
			}
			return m, nil
		case "esc", "ctrl+c":
			m.quitting = true
			if !m.dirty() {
				m.done = true
				return m, tea.Quit
			}
			m.sess.Save()
			return m, m.flush()
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if v := m.editor.Value(); v != m.sess.Content().Get() {
		m.sess.SetContent(v)
		m.status = ""
	}
	return m, cmd
}

func (m entryModel) contentWidth() int {
	if m.cfg.MaxWidth > 0 && m.width > m.cfg.MaxWidth {
		return m.cfg.MaxWidth
	}
	return m.width
}

func (m entryModel) footer() string {
	state := m.status
	if state == "" {
		switch {
		case m.sess.IsEmpty().Get():
			state = "Nothing written yet"
		case m.dirty():
			state = "Unsaved changes"
		default:
			state = "Saved"
		}
	}
	help := "ctrl+s save • ctrl+p prompt • ctrl+y copy • esc quit"
	return m.cfg.Theme.AccentStyle().Render(state) + "\n" + m.cfg.Theme.HelpStyle().Render(help)
}

func (m entryModel) View() string {
	if m.done {
		return ""
	}
	t := m.cfg.Theme
	body := lipgloss.JoinVertical(lipgloss.Left,
		t.HeaderStyle().Render(m.sess.DateLabel()),
		t.QuoteStyle().Render(m.sess.Inspiration()),
		"",
		m.editor.View(),
		"",
		m.footer(),
	)
	if m.width == 0 {
		return body
	}
	return t.PaintScreen(body, m.width, m.height, m.contentWidth())
}

func (m entryModel) close() {
	for _, unsub := range m.unsub {
		unsub()
	}
}

// RunEntryScreen opens the full-screen editor for the session's entry. It
// returns once the user quits, after any unsaved text has been saved. A save
// failure reported while the screen was open is returned.
func RunEntryScreen(ctx context.Context, sess *session.Session, cfg EntryScreenConfig) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newEntryModel(ctx, sess, cfg)
	defer m.close()

	result, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if em, ok := result.(entryModel); ok && em.err != nil {
		return em.err
	}
	return nil
}
