package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/chris-regnier/thankful/internal/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptPrintsDistinctPrompts(t *testing.T) {
	setupTestEnv(t)
	k := len(strs.Strings(resources.Prompts))
	require.Greater(t, k, 3)

	var buf bytes.Buffer
	require.NoError(t, promptRun(context.Background(), &buf, 3))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	seen := map[string]bool{}
	for _, l := range lines {
		assert.Contains(t, strs.Strings(resources.Prompts), l)
		seen[l] = true
	}
	assert.Len(t, seen, 3)
}

func TestPromptStopsAfterOneRotation(t *testing.T) {
	setupTestEnv(t)
	k := len(strs.Strings(resources.Prompts))

	var buf bytes.Buffer
	require.NoError(t, promptRun(context.Background(), &buf, k+5))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, k)
	seen := map[string]bool{}
	for _, l := range lines {
		seen[l] = true
	}
	assert.Len(t, seen, k)
}

func TestPromptJSON(t *testing.T) {
	setupTestEnv(t)
	jsonOutput = true

	var buf bytes.Buffer
	require.NoError(t, promptRun(context.Background(), &buf, 0))

	var got []string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Len(t, got, 1)
}

func TestInspire(t *testing.T) {
	setupTestEnv(t)
	var buf bytes.Buffer
	require.NoError(t, inspireRun(context.Background(), &buf))
	assert.Contains(t, strs.Strings(resources.Inspirations), strings.TrimSpace(buf.String()))
}
