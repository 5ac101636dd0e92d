// Package tui renders the styled tables and boxes used by the vvm CLI.
// The switcher executable deliberately avoids this package so lipgloss
// stays out of its binary.
package tui

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// theme bundles the lipgloss styles shared across renderers. It is
// built on first use because lipgloss probes the terminal during
// style construction.
type theme struct {
	primary lipgloss.Color
	success lipgloss.Color
	muted   lipgloss.Color

	title   lipgloss.Style
	version lipgloss.Style
	dim     lipgloss.Style
	infoBox lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	active  lipgloss.Style
	border  lipgloss.Style

	checkMark string
}

var loadTheme = sync.OnceValue(func() *theme {
	// Force TrueColor to skip the slow terminal capability probe
	// See: https://github.com/charmbracelet/lipgloss/issues/86
	lipgloss.SetColorProfile(termenv.TrueColor)

	t := &theme{
		primary: lipgloss.Color("39"),  // cyan
		success: lipgloss.Color("42"),  // green
		muted:   lipgloss.Color("245"), // gray
	}
	secondary := lipgloss.Color("213") // magenta

	t.title = lipgloss.NewStyle().Bold(true).Foreground(t.primary).MarginBottom(1)
	t.version = lipgloss.NewStyle().Bold(true).Foreground(secondary)
	t.dim = lipgloss.NewStyle().Foreground(t.muted)
	t.infoBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.primary).Padding(0, 1)
	t.header = lipgloss.NewStyle().Bold(true).Foreground(t.primary).PaddingRight(2)
	t.cell = lipgloss.NewStyle().PaddingRight(2)
	t.active = lipgloss.NewStyle().Foreground(t.success)
	t.border = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.muted).Padding(0, 1)
	t.checkMark = lipgloss.NewStyle().Foreground(t.success).Render("✓")
	return t
})

// RenderTitle styles text as a section title.
func RenderTitle(text string) string {
	return loadTheme().title.Render(text)
}

// RenderVersion styles a version tag for display.
func RenderVersion(version string) string {
	return loadTheme().version.Render(version)
}

// RenderInfoBox wraps content in a rounded border.
func RenderInfoBox(content string) string {
	return loadTheme().infoBox.Render(content)
}

// GetCheckMark returns the green check used to mark the active version.
func GetCheckMark() string {
	return loadTheme().checkMark
}
