package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCreatesEntry(t *testing.T) {
	live := setupTestEnv(t)

	var buf bytes.Buffer
	require.NoError(t, addRun(context.Background(), &buf, nil, "", "the smell of rain"))
	assert.Contains(t, buf.String(), "Saved entry for 2024-06-15")

	got, err := live.GetByDate(context.Background(), testNow)
	require.NoError(t, err)
	assert.Equal(t, "the smell of rain", got.Content)
}

func TestAddAppendsLine(t *testing.T) {
	live := setupTestEnv(t)
	first := seedEntry(t, live, "2024-06-10", "coffee")

	require.NoError(t, addRun(context.Background(), &bytes.Buffer{}, nil, "2024-06-10", "sunshine"))

	got, err := live.GetByDate(context.Background(), first.Date)
	require.NoError(t, err)
	assert.Equal(t, "coffee\nsunshine", got.Content)
	assert.Equal(t, first.ID, got.ID)
}

func TestAddReplace(t *testing.T) {
	live := setupTestEnv(t)
	seedEntry(t, live, "2024-06-15", "old")
	addReplace = true
	t.Cleanup(func() { addReplace = false })

	require.NoError(t, addRun(context.Background(), &bytes.Buffer{}, nil, "", "new"))

	got, err := live.GetByDate(context.Background(), testNow)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Content)
}

func TestAddFromStdin(t *testing.T) {
	live := setupTestEnv(t)
	require.NoError(t, addRun(context.Background(), &bytes.Buffer{}, strings.NewReader("a good book\n"), "", "-"))

	got, err := live.GetByDate(context.Background(), testNow)
	require.NoError(t, err)
	assert.Equal(t, "a good book", got.Content)
}

func TestAddRejectsBlankText(t *testing.T) {
	setupTestEnv(t)
	err := addRun(context.Background(), &bytes.Buffer{}, strings.NewReader("  \n"), "", "-")
	assert.EqualError(t, err, "nothing to add")
}
