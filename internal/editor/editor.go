// Package editor hands entry text to an external editor process.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ErrNoEditor is returned for an empty editor command.
var ErrNoEditor = errors.New("empty editor command")

// ResolveEditor determines which editor to use based on config, env vars, and fallback.
func ResolveEditor(configEditor string) string {
	if configEditor != "" {
		return configEditor
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	if ed := os.Getenv("VISUAL"); ed != "" {
		return ed
	}
	return "vi"
}

// Editor runs an external editor command on a temporary file.
type Editor struct {
	Command string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// New returns an Editor attached to the process terminal.
func New(command string) Editor {
	return Editor{Command: command, Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Edit opens initial in the editor and returns the saved text with trailing
// newlines removed. changed is false when the text comes back unmodified.
// Clearing the file is a change: an empty entry is valid.
func (ed Editor) Edit(ctx context.Context, initial string) (content string, changed bool, err error) {
	parts := strings.Fields(ed.Command)
	if len(parts) == 0 {
		return "", false, ErrNoEditor
	}

	tmp, err := os.CreateTemp("", "thankful-*.md")
	if err != nil {
		return "", false, fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(initial); err != nil {
		tmp.Close()
		return "", false, fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", false, fmt.Errorf("writing temp file: %w", err)
	}

	cmd := exec.CommandContext(ctx, parts[0], append(parts[1:], tmpName)...)
	cmd.Stdin = ed.Stdin
	cmd.Stdout = ed.Stdout
	cmd.Stderr = ed.Stderr
	if err := cmd.Run(); err != nil {
		return "", false, fmt.Errorf("editor exited with error: %w", err)
	}

	data, err := os.ReadFile(tmpName)
	if err != nil {
		return "", false, fmt.Errorf("reading edited file: %w", err)
	}

	result := strings.TrimRight(string(data), "\n")
	if result == strings.TrimRight(initial, "\n") {
		return initial, false, nil
	}
	return result, true, nil
}
