// Package theme holds the color palette and pre-built lipgloss styles shared
// by the terminal UI and the CLI.
package theme

import (
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name   string
	IsDark bool

	// Semantic colors
	Primary   string // lipgloss.Color is built from these hex strings
	Secondary string
	Tertiary  string

	// Background hierarchy (dark→light)
	BgBase     string
	BgMantle   string
	BgSurface0 string
	BgSurface1 string
	BgSurface2 string

	// Foreground hierarchy (dim→bright)
	FgMuted  string
	FgSubtle string
	FgBase   string
	FgBright string

	// Status colors
	Success string
	Warning string
	Error   string
	Info    string

	// Lazy-built styles
	styles     *Styles
	stylesOnce sync.Once
}

var (
	current     *Theme
	currentOnce sync.Once
)

// Current returns the active theme. Only Catppuccin Mocha ships today.
func Current() *Theme {
	currentOnce.Do(func() {
		current = NewCatppuccinMocha()
	})
	return current
}

// S returns the pre-built styles for this theme.
// Styles are lazily initialized on first call.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

// buildStyles constructs the pre-built styles from theme colors.
func (t *Theme) buildStyles() *Styles {
	c := lipgloss.Color
	return &Styles{
		HeaderTitle: lipgloss.NewStyle().Foreground(c(t.Primary)).Bold(true),

		ModalContainer: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.Secondary)).
			Background(c(t.BgBase)).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().Foreground(c(t.Primary)).Bold(true),

		Label:        lipgloss.NewStyle().Foreground(c(t.FgSubtle)),
		LabelFocused: lipgloss.NewStyle().Foreground(c(t.Secondary)).Bold(true),
		Value:        lipgloss.NewStyle().Foreground(c(t.FgBase)),
		Placeholder:  lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		FieldError:   lipgloss.NewStyle().Foreground(c(t.Error)),

		Banner: lipgloss.NewStyle().
			Foreground(c(t.Error)).
			Border(lipgloss.NormalBorder()).
			BorderForeground(c(t.Error)).
			Padding(0, 1),
		Success: lipgloss.NewStyle().Foreground(c(t.Success)).Bold(true),

		ProgressDone: lipgloss.NewStyle().Foreground(c(t.Primary)),
		ProgressTodo: lipgloss.NewStyle().Foreground(c(t.BgSurface1)),

		HintKey:       lipgloss.NewStyle().Foreground(c(t.FgBright)).Bold(true),
		HintDesc:      lipgloss.NewStyle().Foreground(c(t.FgSubtle)),
		HintSeparator: lipgloss.NewStyle().Foreground(c(t.BgSurface2)),

		ButtonNormal: lipgloss.NewStyle().
			Foreground(c(t.FgBase)).
			Background(c(t.BgSurface0)).
			Padding(0, 2).
			MarginLeft(1).
			MarginRight(1),
		ButtonDisabled: lipgloss.NewStyle().
			Foreground(c(t.FgMuted)).
			Background(c(t.BgMantle)).
			Padding(0, 2).
			MarginLeft(1).
			MarginRight(1),
		ButtonFocused: lipgloss.NewStyle().
			Foreground(c(t.BgBase)).
			Background(c(t.Secondary)).
			Bold(true).
			Padding(0, 2).
			MarginLeft(1).
			MarginRight(1),
	}
}
