package player

import (
	"math"
	"path"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// State is a point-in-time copy of the engine properties the server cares about.
type State struct {
	Filename    mo.Option[string]
	Pause       bool
	Mute        bool
	Fullscreen  bool
	RepeatAll   bool
	Volume      int
	TimePos     mo.Option[float64]
	PercentPos  mo.Option[float64]
	Duration    mo.Option[float64]
	Playlist    []string
	PlaylistPos int
}

// Idle returns the state of an engine with nothing loaded.
func Idle() State {
	return State{Volume: 100, PlaylistPos: -1}
}

// Loaded reports whether a file is loaded.
func (s State) Loaded() bool {
	return s.Filename.IsPresent() && s.PlaylistPos >= 0
}

// Current returns the playlist entry being played.
func (s State) Current() mo.Option[string] {
	if s.PlaylistPos < 0 || s.PlaylistPos >= len(s.Playlist) {
		return mo.None[string]()
	}
	return mo.Some(s.Playlist[s.PlaylistPos])
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	c := s
	c.Playlist = append([]string(nil), s.Playlist...)
	return c
}

// Normalize returns s with the loaded invariants applied:
// a filename is present iff a playlist position is, and the
// percent position is present iff the filename is.
func (s State) Normalize() State {
	n := s.Clone()
	n.Volume = lo.Clamp(n.Volume, 0, 100)

	if !n.Loaded() {
		n.Filename = mo.None[string]()
		n.PlaylistPos = -1
		n.TimePos = mo.None[float64]()
		n.PercentPos = mo.None[float64]()
		n.Duration = mo.None[float64]()
		return n
	}

	if !n.PercentPos.IsPresent() {
		n.PercentPos = mo.Some(0.0)
	}
	if p, ok := n.PercentPos.Get(); ok {
		n.PercentPos = mo.Some(math.Max(0, math.Min(100, p)))
	}

	return n
}

// DisplayName returns the name an engine reports for target: the last path
// element, with any query string kept for remote streams.
func DisplayName(target string) string {
	t := strings.TrimRight(target, "/")
	if i := strings.Index(t, "://"); i >= 0 {
		rest := t[i+3:]
		if j := strings.LastIndex(rest, "/"); j >= 0 {
			return rest[j+1:]
		}
		return rest
	}
	return path.Base(strings.ReplaceAll(t, "\\", "/"))
}

// notifier fans change signals out to subscribers. Sends never block:
// each subscriber has a one-slot buffer, and a pending signal is enough.
type notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]chan struct{}
}

func (n *notifier) subscribe() (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs == nil {
		n.subs = make(map[int]chan struct{})
	}

	id := n.next
	n.next++
	ch := make(chan struct{}, 1)
	n.subs[id] = ch

	return ch, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *notifier) broadcast() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
