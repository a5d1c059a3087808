package style

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, used where ANSI colors are too coarse: the progress bar,
// list selection and dialog borders.
var (
	Base     = lipgloss.Color("#1e1e2e")
	Text     = lipgloss.Color("#cdd6f4")
	Mauve    = lipgloss.Color("#cba6f7")
	Red      = lipgloss.Color("#f38ba8")
	Peach    = lipgloss.Color("#fab387")
	Blue     = lipgloss.Color("#89b4fa")
	Lavender = lipgloss.Color("#b4befe")

	AccentColor = Mauve
	HiRed       = Red
)
