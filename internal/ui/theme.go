package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/thankful/internal/config"
)

// DefaultPreset is used when the configured preset is empty or unknown.
const DefaultPreset = "default-dark"

// Theme holds resolved lipgloss colors for TUI rendering.
type Theme struct {
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Accent        lipgloss.Color
	Muted         lipgloss.Color
	Danger        lipgloss.Color
	Background    lipgloss.Color
	MarkdownStyle string
}

// Built-in presets.
var presets = map[string]Theme{
	"default-dark": {
		Primary:       lipgloss.Color("15"),
		Secondary:     lipgloss.Color("243"),
		Accent:        lipgloss.Color("214"),
		Muted:         lipgloss.Color("241"),
		Danger:        lipgloss.Color("9"),
		Background:    lipgloss.Color("235"),
		MarkdownStyle: "dark",
	},
	"default-light": {
		Primary:       lipgloss.Color("0"),
		Secondary:     lipgloss.Color("240"),
		Accent:        lipgloss.Color("166"),
		Muted:         lipgloss.Color("245"),
		Danger:        lipgloss.Color("1"),
		Background:    lipgloss.Color("254"),
		MarkdownStyle: "light",
	},
	"dracula": {
		Primary:       lipgloss.Color("#F8F8F2"),
		Secondary:     lipgloss.Color("#6272A4"),
		Accent:        lipgloss.Color("#FFB86C"),
		Muted:         lipgloss.Color("#6272A4"),
		Danger:        lipgloss.Color("#FF5555"),
		Background:    lipgloss.Color("#282A36"),
		MarkdownStyle: "dark",
	},
	"catppuccin-mocha": {
		Primary:       lipgloss.Color("#CDD6F4"),
		Secondary:     lipgloss.Color("#585B70"),
		Accent:        lipgloss.Color("#F9E2AF"),
		Muted:         lipgloss.Color("#6C7086"),
		Danger:        lipgloss.Color("#F38BA8"),
		Background:    lipgloss.Color("#1E1E2E"),
		MarkdownStyle: "dark",
	},
	"catppuccin-latte": {
		Primary:       lipgloss.Color("#4C4F69"),
		Secondary:     lipgloss.Color("#9CA0B0"),
		Accent:        lipgloss.Color("#DF8E1D"),
		Muted:         lipgloss.Color("#9CA0B0"),
		Danger:        lipgloss.Color("#D20F39"),
		Background:    lipgloss.Color("#EFF1F5"),
		MarkdownStyle: "light",
	},
	"gruvbox-dark": {
		Primary:       lipgloss.Color("#EBDBB2"),
		Secondary:     lipgloss.Color("#665C54"),
		Accent:        lipgloss.Color("#FABD2F"),
		Muted:         lipgloss.Color("#928374"),
		Danger:        lipgloss.Color("#FB4934"),
		Background:    lipgloss.Color("#282828"),
		MarkdownStyle: "dark",
	},
}

// Presets returns the sorted names of the built-in themes.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidatePreset reports an error naming the available presets when name is
// set but unknown.
func ValidatePreset(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := presets[name]; !ok {
		return fmt.Errorf("unknown theme preset %q (available: %s)", name, strings.Join(Presets(), ", "))
	}
	return nil
}

// ResolveTheme builds a Theme from config, starting with a preset
// and applying any explicit overrides.
func ResolveTheme(cfg config.ThemeConfig) Theme {
	theme, ok := presets[cfg.Preset]
	if !ok {
		theme = presets[DefaultPreset]
	}

	override := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	override(&theme.Primary, cfg.Primary)
	override(&theme.Secondary, cfg.Secondary)
	override(&theme.Accent, cfg.Accent)
	override(&theme.Muted, cfg.Muted)
	override(&theme.Danger, cfg.Danger)
	override(&theme.Background, cfg.Background)
	if cfg.MarkdownStyle != "" {
		theme.MarkdownStyle = cfg.MarkdownStyle
	}

	return theme
}

// HelpStyle returns a lipgloss style for help/footer text.
func (t Theme) HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted).Background(t.Background)
}

// HeaderStyle returns a lipgloss style for the date label.
func (t Theme) HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Background(t.Background)
}

// QuoteStyle returns a lipgloss style for the inspiration line.
func (t Theme) QuoteStyle() lipgloss.Style {
	return lipgloss.NewStyle().Italic(true).Foreground(t.Secondary).Background(t.Background)
}

// AccentStyle returns a lipgloss style for accented/focused elements.
func (t Theme) AccentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent).Background(t.Background)
}

// DangerStyle returns a lipgloss style for warnings/delete prompts.
func (t Theme) DangerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Danger).Background(t.Background)
}

// bgEscapeCode returns the raw ANSI sequence that sets the theme background,
// for use with \x1b[K.
func (t Theme) bgEscapeCode() string {
	s := string(t.Background)
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		var r, g, b int
		fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b)
		return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
	}
	return "\x1b[48;5;" + s + "m"
}

// PaintScreen pads every line to termWidth, centering a block of
// contentWidth, and pads vertically to termHeight with the theme background.
func (t Theme) PaintScreen(content string, termWidth, termHeight, contentWidth int) string {
	bgPad := lipgloss.NewStyle().Background(t.Background)
	clearEOL := t.bgEscapeCode() + "\x1b[K"

	leftPad := 0
	if contentWidth > 0 && contentWidth < termWidth {
		leftPad = (termWidth - contentWidth) / 2
	}
	leftStr := bgPad.Render(strings.Repeat(" ", leftPad))

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		rightPad := max(termWidth-leftPad-lipgloss.Width(line), 0)

		var b strings.Builder
		if leftPad > 0 {
			b.WriteString(leftStr)
		}
		b.WriteString(line)
		if rightPad > 0 {
			b.WriteString(bgPad.Render(strings.Repeat(" ", rightPad)))
		}
		b.WriteString(clearEOL)
		lines[i] = b.String()
	}

	emptyLine := bgPad.Render(strings.Repeat(" ", termWidth)) + clearEOL
	for len(lines) < termHeight {
		lines = append(lines, emptyLine)
	}
	if termHeight > 0 && len(lines) > termHeight {
		lines = lines[:termHeight]
	}

	return strings.Join(lines, "\n")
}
