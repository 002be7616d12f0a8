package diskv

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chris-regnier/thankful/internal/entry"
	"github.com/chris-regnier/thankful/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestKeyPathTransformRoundTrip(t *testing.T) {
	pk := keyToPathTransform("2024-03-09")
	assert.Equal(t, []string{"2024", "03"}, pk.Path)
	assert.Equal(t, "09.json", pk.FileName)
	assert.Equal(t, "2024-03-09", pathToKeyTransform(pk))
}

func TestListLogsAndSkipsUnreadableDocuments(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	dir := t.TempDir()
	s, err := New(dir, WithLogger(zap.New(core)))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = s.Upsert(ctx, entry.New(time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), "good"))
	require.NoError(t, err)

	bad := filepath.Join(dir, "kv", "2024", "01", "02.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(bad), 0o755))
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))

	entries, err := s.List(ctx, storage.ListOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "good", entries[0].Content)

	warned := logs.FilterMessage("skipping unreadable entry").All()
	require.Len(t, warned, 1)
	assert.Equal(t, "2024-01-02", warned[0].ContextMap()["key"])
}
