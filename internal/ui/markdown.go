package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

type rendererKey struct {
	width int
	style string
}

var (
	renderersMu sync.Mutex
	renderers   = map[rendererKey]*glamour.TermRenderer{}
)

func markdownRenderer(width int, style string) (*glamour.TermRenderer, error) {
	if width < 1 {
		width = 80
	}
	if style == "" {
		style = "dark"
	}
	key := rendererKey{width: width, style: style}

	renderersMu.Lock()
	defer renderersMu.Unlock()
	if r, ok := renderers[key]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	renderers[key] = r
	return r, nil
}

// RenderMarkdown renders entry content as rich terminal text using the given
// glamour style ("dark", "light", "notty", ...). The content is returned
// unchanged if rendering fails.
func RenderMarkdown(content string, width int, style string) string {
	if content == "" {
		return ""
	}
	r, err := markdownRenderer(width, style)
	if err != nil {
		return content
	}
	renderersMu.Lock()
	rendered, err := r.Render(content)
	renderersMu.Unlock()
	if err != nil {
		return content
	}
	return strings.Trim(rendered, "\n")
}
