package cmd

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/chris-regnier/thankful/internal/config"
	"github.com/chris-regnier/thankful/internal/entry"
	"github.com/chris-regnier/thankful/internal/resources"
	"github.com/chris-regnier/thankful/internal/storage"
	"github.com/chris-regnier/thankful/internal/storage/markdown"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testNow is mid-morning on 2024-06-15 local time.
var testNow = time.Date(2024, 6, 15, 9, 30, 0, 0, time.Local)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// setupTestEnv points the package globals at a fresh markdown store with the
// English catalog and a fixed clock.
func setupTestEnv(t *testing.T) *storage.Live {
	t.Helper()
	dir := t.TempDir()
	s, err := markdown.New(dir)
	require.NoError(t, err)

	bundle, err := resources.Load("en", "")
	require.NoError(t, err)

	store = storage.NewLive(s)
	strs = bundle
	logger = zap.NewNop()
	appConfig = &config.Config{Storage: "markdown", DataDir: dir, MaxWidth: 100}
	jsonOutput = false
	nowFunc = func() time.Time { return testNow }

	live := store
	t.Cleanup(func() {
		live.Close()
		nowFunc = time.Now
	})
	return live
}

func seedEntry(t *testing.T, live *storage.Live, date, content string) entry.Entry {
	t.Helper()
	day, err := entry.ParseDate(date)
	require.NoError(t, err)
	e, err := live.Upsert(context.Background(), entry.New(day, content))
	require.NoError(t, err)
	return e
}
