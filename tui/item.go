package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mpvremote/mpvremote/icon"
	"github.com/mpvremote/mpvremote/style"
	"github.com/mpvremote/mpvremote/uri"
)

type itemKind int

const (
	libraryItem itemKind = iota
	urlItem
	draftItem
	playlistItem
)

// listItem implements the list.Item interface for everything the remote can play.
type listItem struct {
	kind   itemKind
	target string
	index  int
	marked bool
}

// Local reports whether the item names a file on the server rather than a remote stream.
func (t *listItem) Local() bool {
	return !uri.IsRemote(t.target)
}

func (t *listItem) getMark() string {
	switch t.kind {
	case playlistItem:
		return lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Play))
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Mark))
	}
}

func (t *listItem) Title() (title string) {
	switch t.kind {
	case draftItem, playlistItem:
		title = fmt.Sprintf("%d. %s", t.index+1, t.target)
	default:
		title = t.target
	}

	if t.marked {
		title = fmt.Sprintf("%s %s", title, t.getMark())
	}
	return
}

func (t *listItem) Description() string {
	switch {
	case t.kind == libraryItem:
		return style.Faint("media root")
	case t.Local():
		return style.Faint("server file")
	default:
		return style.Faint("remote stream")
	}
}

func (t *listItem) FilterValue() string {
	return t.target
}
