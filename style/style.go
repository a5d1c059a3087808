// Package style renders text for the CLI and the remote with lipgloss.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mpvremote/mpvremote/color"
)

func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a renderer that paints its input with c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(c).Render(s) }
}

var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }
)

// Title renders the header of a remote screen.
func Title(s string) string {
	return New().Foreground(Base).Background(AccentColor).Bold(true).Padding(0, 1).Render(s)
}

// ErrorTitle renders the header of the error screen.
func ErrorTitle(s string) string {
	return New().Foreground(Base).Background(color.Red).Bold(true).Padding(0, 1).Render(s)
}
