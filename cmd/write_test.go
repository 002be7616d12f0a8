package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/chris-regnier/thankful/internal/entry"
	"github.com/chris-regnier/thankful/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEditor struct {
	got     string
	content string
	changed bool
	err     error
}

func (f *fakeEditor) Edit(ctx context.Context, initial string) (string, bool, error) {
	f.got = initial
	return f.content, f.changed, f.err
}

func TestEditorRunSavesChanges(t *testing.T) {
	live := setupTestEnv(t)
	seedEntry(t, live, "2024-06-15", "draft")

	ed := &fakeEditor{content: "final words", changed: true}
	var buf bytes.Buffer
	require.NoError(t, editorRun(context.Background(), &buf, "", ed))

	assert.Equal(t, "draft", ed.got)
	assert.Contains(t, buf.String(), "Saved entry for 2024-06-15")

	got, err := live.GetByDate(context.Background(), testNow)
	require.NoError(t, err)
	assert.Equal(t, "final words", got.Content)
}

func TestEditorRunNoChanges(t *testing.T) {
	live := setupTestEnv(t)
	var buf bytes.Buffer
	require.NoError(t, editorRun(context.Background(), &buf, "2024-06-01", &fakeEditor{}))
	assert.Equal(t, "No changes.\n", buf.String())

	entries, err := live.List(context.Background(), storage.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEditorRunEditorFailure(t *testing.T) {
	setupTestEnv(t)
	boom := errors.New("editor crashed")
	err := editorRun(context.Background(), &bytes.Buffer{}, "", &fakeEditor{err: boom})
	assert.True(t, errors.Is(err, boom))
}

func TestEditorRunInvalidDate(t *testing.T) {
	setupTestEnv(t)
	err := editorRun(context.Background(), &bytes.Buffer{}, "June 1st", &fakeEditor{})
	assert.True(t, errors.Is(err, entry.ErrInvalidDate))
}

func TestEditorRunJSON(t *testing.T) {
	setupTestEnv(t)
	jsonOutput = true

	var buf bytes.Buffer
	require.NoError(t, editorRun(context.Background(), &buf, "2024-06-14", &fakeEditor{content: "x", changed: true}))

	var got entry.Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "x", got.Content)
	assert.Len(t, got.ID, 8)
	assert.Equal(t, "2024-06-14", got.Date.Format("2006-01-02"))
}
