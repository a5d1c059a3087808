package tui

import (
	"context"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mpvremote/mpvremote/client"
	"github.com/mpvremote/mpvremote/poll"
)

const (
	seekStep   = 5.0
	volumeStep = 5
)

func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(b.sync(), b.waitForDisplay(), b.loadLibrary(), b.loadDraft(), b.spinnerC.Tick)
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if cmd := b.notifier.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case error:
		b.raiseError(msg)
		return b, tea.Batch(cmds...)
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case displayMsg:
		b.applyDisplay(msg)
		return b, tea.Batch(append(cmds, b.waitForDisplay())...)
	case commandMsg:
		b.busy = false
		if msg.err != nil {
			if fatal(msg.err) {
				b.raiseError(msg.err)
				return b, tea.Batch(cmds...)
			}
			cmds = append(cmds, notify(describe(msg.err)))
		} else if msg.message != "" {
			cmds = append(cmds, notify(msg.message))
		}

		// every command may have changed the player; poll until it settles
		b.poller.Kick(b.ctx)
		return b, tea.Batch(cmds...)
	case libraryMsg:
		cmds = append(cmds, b.libraryC.SetItems(libraryItems(msg)))
		return b, tea.Batch(cmds...)
	case draftMsg:
		cmds = append(cmds, b.draftC.SetItems(draftItems(msg)))
		return b, tea.Batch(cmds...)
	case urlsMsg:
		cmds = append(cmds, b.urlsC.SetItems(urlItems(msg)))
		return b, tea.Batch(cmds...)
	case scrubDoneMsg:
		if target, ok := b.scrub.release(msg); ok {
			cmds = append(cmds, b.run(func(ctx context.Context) (client.Response, error) {
				return b.client.Seek(ctx, target)
			}))
		}
		return b, tea.Batch(cmds...)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, b.quit()
		}

		if b.state != addURLState && b.state != errorState && !b.filtering() {
			switch {
			case bubblesKey.Matches(msg, b.keymap.tab):
				b.nextTab()
				return b, tea.Batch(cmds...)
			case bubblesKey.Matches(msg, b.keymap.quit):
				return b, b.quit()
			}
		}
	}

	var cmd tea.Cmd
	switch b.state {
	case playerState:
		cmd = b.updatePlayer(msg)
	case libraryState:
		cmd = b.updateLibrary(msg)
	case urlsState:
		cmd = b.updateURLs(msg)
	case draftState:
		cmd = b.updateDraft(msg)
	case addURLState:
		cmd = b.updateAddURL(msg)
	case errorState:
		cmd = b.updateError(msg)
	}

	return b, tea.Batch(append(cmds, cmd)...)
}

func (b *statefulBubble) filtering() bool {
	switch b.state {
	case libraryState:
		return b.libraryC.FilterState() == list.Filtering
	case urlsState:
		return b.urlsC.FilterState() == list.Filtering
	case draftState:
		return b.draftC.FilterState() == list.Filtering
	default:
		return false
	}
}

func (b *statefulBubble) applyDisplay(d displayMsg) {
	b.display = poll.Display(d)
	if !b.scrub.Dragging() {
		b.scrubPos = b.display.Scrub
	}
	b.playlistC.SetItems(playlistItems(b.display))
	if b.display.Highlight >= 0 {
		b.playlistC.Select(b.display.Highlight)
	}
}

func (b *statefulBubble) updatePlayer(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return cmd
	}

	if b.busy {
		return nil
	}

	d := b.display
	switch {
	case bubblesKey.Matches(keyMsg, b.keymap.pause):
		if !d.CanPause {
			return notify("nothing is playing")
		}
		return b.run(b.client.Pause)
	case bubblesKey.Matches(keyMsg, b.keymap.stop):
		return b.run(b.client.Stop)
	case bubblesKey.Matches(keyMsg, b.keymap.mute):
		return b.run(b.client.Mute)
	case bubblesKey.Matches(keyMsg, b.keymap.fullscreen):
		return b.run(b.client.Fullscreen)
	case bubblesKey.Matches(keyMsg, b.keymap.repeat):
		return b.run(b.client.Repeat)
	case bubblesKey.Matches(keyMsg, b.keymap.next):
		if !d.CanNext {
			return notify("there is no next item to play")
		}
		return b.run(b.client.Next)
	case bubblesKey.Matches(keyMsg, b.keymap.previous):
		if !d.CanPrev {
			return notify("there is no previous item to play")
		}
		return b.run(b.client.Previous)
	case bubblesKey.Matches(keyMsg, b.keymap.seekBack, b.keymap.seekForward):
		if !d.Loaded {
			return nil
		}
		delta := seekStep
		if bubblesKey.Matches(keyMsg, b.keymap.seekBack) {
			delta = -seekStep
		}
		var cmd tea.Cmd
		b.scrubPos, cmd = b.scrub.nudge(b.scrubPos, delta)
		return cmd
	case bubblesKey.Matches(keyMsg, b.keymap.volumeUp, b.keymap.volumeDown):
		volume := d.Volume + volumeStep
		if bubblesKey.Matches(keyMsg, b.keymap.volumeDown) {
			volume = d.Volume - volumeStep
		}
		volume = min(max(volume, 0), 100)
		return b.run(func(ctx context.Context) (client.Response, error) {
			return b.client.Volume(ctx, volume)
		})
	case bubblesKey.Matches(keyMsg, b.keymap.refresh):
		return tea.Batch(b.sync(), b.loadLibrary())
	}

	var cmd tea.Cmd
	b.playlistC, cmd = b.playlistC.Update(msg)
	return cmd
}

func selected(l *list.Model) (*listItem, bool) {
	item, ok := l.SelectedItem().(*listItem)
	return item, ok && item != nil
}

func (b *statefulBubble) updateLibrary(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !b.filtering() && !b.busy {
		item, ok := selected(&b.libraryC)
		switch {
		case bubblesKey.Matches(keyMsg, b.keymap.play, b.keymap.replace) && ok:
			return b.play(item, bubblesKey.Matches(keyMsg, b.keymap.replace))
		case bubblesKey.Matches(keyMsg, b.keymap.appendDraft) && ok:
			return b.appendToDraft(item.target)
		case bubblesKey.Matches(keyMsg, b.keymap.refresh):
			return b.loadLibrary()
		}
	}

	var cmd tea.Cmd
	b.libraryC, cmd = b.libraryC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateURLs(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !b.filtering() && !b.busy {
		item, ok := selected(&b.urlsC)
		switch {
		case bubblesKey.Matches(keyMsg, b.keymap.play, b.keymap.replace) && ok:
			return b.play(item, bubblesKey.Matches(keyMsg, b.keymap.replace))
		case bubblesKey.Matches(keyMsg, b.keymap.appendDraft) && ok:
			return b.appendToDraft(item.target)
		case bubblesKey.Matches(keyMsg, b.keymap.remove) && ok:
			return b.removeURL(item.target)
		case bubblesKey.Matches(keyMsg, b.keymap.addURL):
			b.inputC.SetValue("")
			b.newState(addURLState)
			return b.inputC.Focus()
		}
	}

	var cmd tea.Cmd
	b.urlsC, cmd = b.urlsC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateDraft(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !b.filtering() && !b.busy {
		item, ok := selected(&b.draftC)
		switch {
		case bubblesKey.Matches(keyMsg, b.keymap.play) && ok:
			return b.playDraft(item.index)
		case bubblesKey.Matches(keyMsg, b.keymap.playDraft):
			return b.playDraft(0)
		case bubblesKey.Matches(keyMsg, b.keymap.remove) && ok:
			return b.removeFromDraft(item.index)
		case bubblesKey.Matches(keyMsg, b.keymap.clear):
			return b.clearDraft()
		}
	}

	var cmd tea.Cmd
	b.draftC, cmd = b.draftC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateAddURL(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(keyMsg, b.keymap.confirm):
			value := b.inputC.Value()
			b.inputC.Blur()
			b.previousState()
			return b.addURL(value)
		case bubblesKey.Matches(keyMsg, b.keymap.back):
			b.inputC.Blur()
			b.previousState()
			return nil
		}
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(keyMsg, b.keymap.quit):
			return b.quit()
		case bubblesKey.Matches(keyMsg, b.keymap.back):
			b.previousState()
			return b.sync()
		}
	}
	return nil
}
