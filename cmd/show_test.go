package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/chris-regnier/thankful/internal/entry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowExistingEntry(t *testing.T) {
	live := setupTestEnv(t)
	e := seedEntry(t, live, "2024-06-15", "Morning light")

	var buf bytes.Buffer
	require.NoError(t, showRun(context.Background(), &buf, ""))

	out := stripANSI(buf.String())
	assert.Contains(t, out, "Today (2024-06-15)")
	assert.Contains(t, out, e.ID)
	assert.Contains(t, out, "Morning light")
}

func TestShowPastEntryUsesLongDate(t *testing.T) {
	live := setupTestEnv(t)
	seedEntry(t, live, "2023-01-01", "New year")

	var buf bytes.Buffer
	require.NoError(t, showRun(context.Background(), &buf, "2023-01-01"))
	assert.Contains(t, stripANSI(buf.String()), "Sunday, January 1, 2023 (2023-01-01)")
}

func TestShowMissingEntry(t *testing.T) {
	setupTestEnv(t)
	var buf bytes.Buffer
	require.NoError(t, showRun(context.Background(), &buf, "2024-06-14"))
	assert.Equal(t, "No entry for Yesterday yet. What were you thankful for?\n", buf.String())
}

func TestShowJSON(t *testing.T) {
	live := setupTestEnv(t)
	seedEntry(t, live, "2024-06-15", "json please")
	jsonOutput = true

	var buf bytes.Buffer
	require.NoError(t, showRun(context.Background(), &buf, ""))

	var got entry.Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "json please", got.Content)
}

func TestShowInvalidDate(t *testing.T) {
	setupTestEnv(t)
	err := showRun(context.Background(), &bytes.Buffer{}, "2024-13-45")
	assert.ErrorIs(t, err, entry.ErrInvalidDate)
}
