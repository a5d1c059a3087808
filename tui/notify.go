package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mpvremote/mpvremote/style"
)

const notificationLifetime = 3 * time.Second

// notifier shows the message of the last command next to the help line.
type notifier struct {
	message string
	seq     int
}

type notifyMsg string

type clearNotificationMsg struct {
	seq int
}

func notify(message string) tea.Cmd {
	return func() tea.Msg {
		return notifyMsg(message)
	}
}

func (n *notifier) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case notifyMsg:
		n.message = string(msg)
		n.seq++
		seq := n.seq
		return tea.Tick(notificationLifetime, func(time.Time) tea.Msg {
			return clearNotificationMsg{seq: seq}
		})
	case clearNotificationMsg:
		if msg.seq == n.seq {
			n.message = ""
		}
	}
	return nil
}

// View appends the notification to the last line of content.
func (n *notifier) View(content string) string {
	if n.message == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(n.message)
	return strings.Join(lines, "\n")
}
