package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mpvremote/mpvremote/color"
	"github.com/mpvremote/mpvremote/icon"
	"github.com/mpvremote/mpvremote/style"
	"github.com/mpvremote/mpvremote/util"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

// playerHeaderHeight is the number of lines above the playlist in the player view.
const playerHeaderHeight = 9

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case playerState:
		output = b.viewPlayer()
	case libraryState:
		output = listExtraPaddingStyle.Render(b.libraryC.View())
	case urlsState:
		output = listExtraPaddingStyle.Render(b.urlsC.View())
	case draftState:
		output = listExtraPaddingStyle.Render(b.draftC.View())
	case addURLState:
		output = b.viewAddURL()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewPlayer() string {
	d := b.display
	fit := func(s string) string {
		return truncate.StringWithTail(s, uint(util.Max(b.width, 10)), "…")
	}

	nowPlaying := style.Faint("nothing is playing")
	if d.Loaded {
		state := icon.Get(icon.Play)
		if d.Paused {
			state = icon.Get(icon.Pause)
		}
		nowPlaying = fmt.Sprintf("%s %s", state, style.Fg(color.Purple)(d.NowPlaying))
	}

	busy := ""
	if b.busy {
		busy = b.spinnerC.View()
	}

	timing := style.Faint("--:-- / --:--")
	if d.Loaded {
		timing = fmt.Sprintf("%s / %s %s",
			util.FormatSeconds(d.TimePos),
			util.FormatSeconds(d.Duration),
			style.Faint("(-"+util.FormatSeconds(d.Remaining)+")"),
		)
	}

	flag := func(on bool, i icon.Icon, name string) string {
		label := icon.Get(i) + " " + name
		if on {
			return style.Fg(style.AccentColor)(label)
		}
		return style.Faint(label)
	}

	flags := strings.Join([]string{
		fmt.Sprintf("vol %d%%", d.Volume),
		flag(d.Mute, icon.Mute, "mute"),
		flag(d.Fullscreen, icon.Fullscreen, "fullscreen"),
		flag(d.Repeat, icon.Repeat, "repeat"),
		flag(d.CanPrev, icon.Previous, "prev"),
		flag(d.CanNext, icon.Next, "next"),
	}, "  ")

	lines := []string{
		style.Title(b.serverTitle()),
		"",
		fit(nowPlaying + " " + busy),
		b.progressC.ViewAs(b.scrubPos / 100),
		timing,
		fit(flags),
		"",
	}

	if len(d.Playlist) > 0 {
		lines = append(lines, b.playlistC.View())
	} else {
		lines = append(lines, style.Faint("the playlist is empty"))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewAddURL() string {
	return b.renderLines(true, []string{
		style.Title("Add URL"),
		"",
		b.inputC.View(),
		"",
		style.Faint(fmt.Sprintf("%s saved", util.Quantify(b.urls.Len(), "url", "urls"))),
	})
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(describe(b.lastError))
	errorMsg := wrap.String(errorBody, util.Max(b.width, 10))
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " Cannot talk to " + b.client.Server(),
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := lipgloss.Height(strings.Join(lines, "\n"))
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
