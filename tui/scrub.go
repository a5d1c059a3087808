package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// scrubDelay is how long the user must leave the scrub bar alone before the seek is sent.
const scrubDelay = 400 * time.Millisecond

// scrubber tracks a scrub in progress. The poller reads Dragging from its own goroutine.
type scrubber struct {
	mu       sync.Mutex
	dragging bool
	target   float64
	seq      int
}

type scrubDoneMsg struct {
	seq int
}

func (s *scrubber) Dragging() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dragging
}

// nudge moves the scrub target by delta percent starting at from, and returns the debounce tick.
func (s *scrubber) nudge(from, delta float64) (float64, tea.Cmd) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dragging {
		s.target = from
		s.dragging = true
	}

	s.target = min(max(s.target+delta, 0), 100)
	s.seq++

	seq := s.seq
	return s.target, tea.Tick(scrubDelay, func(time.Time) tea.Msg {
		return scrubDoneMsg{seq: seq}
	})
}

// release ends the scrub if msg is the latest tick. It returns the target to seek to.
func (s *scrubber) release(msg scrubDoneMsg) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dragging || msg.seq != s.seq {
		return 0, false
	}

	s.dragging = false
	return s.target, true
}
