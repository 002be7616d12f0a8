package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, _, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "thankful.log")
	logger, closeLog, err := New(Options{Level: "info", File: path})
	require.NoError(t, err)

	logger.Info("saved entry")
	logger.Debug("hidden")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "saved entry"))
	assert.False(t, strings.Contains(string(data), "hidden"))
}

func TestNewDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	logger, closeLog, err := New(Options{Debug: true, File: path})
	require.NoError(t, err)
	logger.Debug("visible")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
}

func TestNewDefaultsToWarn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warn.log")
	logger, closeLog, err := New(Options{File: path})
	require.NoError(t, err)

	logger.Info("quiet")
	logger.Warn("loud")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
	assert.Contains(t, string(data), "WARN")
}

// openHandles counts descriptors of this process that point at path.
func openHandles(t *testing.T, path string) int {
	t.Helper()
	fds, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Skip("no /proc/self/fd on this platform")
	}
	n := 0
	for _, fd := range fds {
		target, err := os.Readlink(filepath.Join("/proc/self/fd", fd.Name()))
		if err == nil && target == path {
			n++
		}
	}
	return n
}

func TestCloseReleasesLogFile(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	path := filepath.Join(dir, "screen.log")

	logger, closeLog, err := New(Options{File: path})
	require.NoError(t, err)
	logger.Warn("screen opened")
	require.Equal(t, 1, openHandles(t, path))

	closeLog()
	assert.Equal(t, 0, openHandles(t, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "screen opened")
}

func TestCloseWithoutFile(t *testing.T) {
	_, closeLog, err := New(Options{})
	require.NoError(t, err)
	assert.NotPanics(t, closeLog)
}
