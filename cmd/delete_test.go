package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/chris-regnier/thankful/internal/entry"
	"github.com/chris-regnier/thankful/internal/storage"
	"github.com/chris-regnier/thankful/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteForced(t *testing.T) {
	live := setupTestEnv(t)
	e := seedEntry(t, live, "2024-06-10", "delete me")

	var buf bytes.Buffer
	require.NoError(t, deleteRun(context.Background(), &buf, "2024-06-10", nil))
	assert.Equal(t, "Deleted entry for 2024-06-10.\n", buf.String())

	_, err := live.GetByDate(context.Background(), e.Date)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteDeclined(t *testing.T) {
	live := setupTestEnv(t)
	e := seedEntry(t, live, "2024-06-10", "keep me")

	var asked entry.Entry
	var buf bytes.Buffer
	require.NoError(t, deleteRun(context.Background(), &buf, "2024-06-10", func(e entry.Entry) (bool, error) {
		asked = e
		return false, nil
	}))
	assert.Equal(t, "Cancelled.\n", buf.String())
	assert.Equal(t, e.ID, asked.ID)

	_, err := live.GetByDate(context.Background(), e.Date)
	assert.NoError(t, err)
}

func TestDeleteNotFound(t *testing.T) {
	setupTestEnv(t)
	err := deleteRun(context.Background(), &bytes.Buffer{}, "2024-06-10", nil)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteJSONOutput(t *testing.T) {
	live := setupTestEnv(t)
	seedEntry(t, live, "2024-06-10", "bye")
	jsonOutput = true

	var buf bytes.Buffer
	require.NoError(t, deleteRun(context.Background(), &buf, "2024-06-10", nil))

	var got ui.DeleteResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.True(t, got.Deleted)
	assert.Equal(t, "2024-06-10", got.Date)
}
