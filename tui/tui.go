package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mpvremote/mpvremote/client"
	"github.com/mpvremote/mpvremote/urls"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Client *client.Client
	URLs   *urls.List

	// Interval between status polls while something is playing.
	Interval time.Duration

	// StopOnExit stops playback when the remote quits.
	StopOnExit  bool
	StopTimeout time.Duration
}

// Run starts the remote and blocks until the user quits.
func Run(ctx context.Context, options *Options) error {
	if options.StopTimeout <= 0 {
		options.StopTimeout = 5 * time.Second
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bubble := newBubble(ctx, options)
	defer bubble.poller.Stop()

	_, err := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
