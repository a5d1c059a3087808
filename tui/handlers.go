package tui

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mpvremote/mpvremote/client"
	"github.com/mpvremote/mpvremote/draft"
	"github.com/mpvremote/mpvremote/log"
	"github.com/mpvremote/mpvremote/poll"
	"github.com/samber/lo"
)

type displayMsg poll.Display

// commandMsg carries the outcome of one command sent to the server.
type commandMsg struct {
	message string
	err     error
}

type libraryMsg []string

type draftMsg []string

type urlsMsg []string

func urlItems(items []string) []list.Item {
	return lo.Map(items, func(u string, i int) list.Item {
		return &listItem{kind: urlItem, target: u, index: i}
	})
}

func libraryItems(files []string) []list.Item {
	return lo.Map(files, func(f string, i int) list.Item {
		return &listItem{kind: libraryItem, target: f, index: i}
	})
}

func draftItems(items []string) []list.Item {
	return lo.Map(items, func(item string, i int) list.Item {
		return &listItem{kind: draftItem, target: item, index: i}
	})
}

func playlistItems(d poll.Display) []list.Item {
	return lo.Map(d.Playlist, func(name string, i int) list.Item {
		return &listItem{kind: playlistItem, target: name, index: i, marked: i == d.Highlight}
	})
}

func (b *statefulBubble) waitForDisplay() tea.Cmd {
	return func() tea.Msg {
		select {
		case d := <-b.displays:
			return displayMsg(d)
		case <-b.ctx.Done():
			return nil
		}
	}
}

// run sends a command and reports its message.
func (b *statefulBubble) run(fn func(context.Context) (client.Response, error)) tea.Cmd {
	b.busy = true
	return func() tea.Msg {
		res, err := fn(b.ctx)
		if err != nil {
			log.Warnf("command failed: %v", err)
		}
		return commandMsg{message: res.Message, err: err}
	}
}

// sync fetches the status once and starts polling if something is playing.
func (b *statefulBubble) sync() tea.Cmd {
	return func() tea.Msg {
		d, err := b.poller.Refresh(b.ctx)
		if err != nil {
			return err
		}

		if d.Active() {
			b.poller.Kick(b.ctx)
		}
		return nil
	}
}

func (b *statefulBubble) loadLibrary() tea.Cmd {
	return func() tea.Msg {
		files, err := b.client.List(b.ctx)
		if err != nil {
			return commandMsg{err: err}
		}
		return libraryMsg(files)
	}
}

func (b *statefulBubble) loadDraft() tea.Cmd {
	return func() tea.Msg {
		items, err := draft.Items()
		if err != nil {
			return commandMsg{err: err}
		}
		return draftMsg(items)
	}
}

func (b *statefulBubble) appendToDraft(item string) tea.Cmd {
	return func() tea.Msg {
		items, err := draft.Append(item)
		if err != nil {
			return commandMsg{err: err}
		}
		return draftMsg(items)
	}
}

func (b *statefulBubble) removeFromDraft(index int) tea.Cmd {
	return func() tea.Msg {
		items, err := draft.Remove(index)
		if err != nil {
			return commandMsg{err: err}
		}
		return draftMsg(items)
	}
}

func (b *statefulBubble) clearDraft() tea.Cmd {
	return func() tea.Msg {
		if err := draft.Clear(); err != nil {
			return commandMsg{err: err}
		}
		return draftMsg{}
	}
}

func (b *statefulBubble) playDraft(index int) tea.Cmd {
	return b.run(func(ctx context.Context) (client.Response, error) {
		return draft.Play(ctx, b.client, index)
	})
}

func (b *statefulBubble) addURL(u string) tea.Cmd {
	return func() tea.Msg {
		if _, err := b.urls.Add(u); err != nil {
			return commandMsg{err: err}
		}
		return urlsMsg(b.urls.Items())
	}
}

func (b *statefulBubble) removeURL(u string) tea.Cmd {
	return func() tea.Msg {
		if _, err := b.urls.Remove(u); err != nil {
			return commandMsg{err: err}
		}
		return urlsMsg(b.urls.Items())
	}
}

func (b *statefulBubble) play(item *listItem, replace bool) tea.Cmd {
	return b.run(func(ctx context.Context) (client.Response, error) {
		return b.client.Play(ctx, item.target, item.Local(), replace)
	})
}

// quit stops playback first when asked to.
func (b *statefulBubble) quit() tea.Cmd {
	b.poller.Stop()
	if !b.options.StopOnExit || !b.display.Loaded {
		return tea.Quit
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(b.ctx, b.options.StopTimeout)
		defer cancel()

		if _, err := b.client.Stop(ctx); err != nil {
			log.Warnf("stop on exit: %v", err)
		}
		return tea.Quit()
	}
}

// describe turns a command failure into something short enough for the status line.
func describe(err error) string {
	var statusErr *client.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message
	}
	return err.Error()
}

// fatal reports whether err means the server cannot be used at all.
func fatal(err error) bool {
	var statusErr *client.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status == http.StatusUnauthorized || statusErr.Status == http.StatusServiceUnavailable
	}

	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
