package poll

import (
	"github.com/mpvremote/mpvremote/status"
	"github.com/samber/lo"
)

// Display is the presentation-independent view a client renders.
type Display struct {
	Loaded     bool
	NowPlaying string
	Paused     bool

	// CanPause is false when nothing is loaded.
	CanPause bool

	// Scrub is the scrub bar position in percent.
	Scrub     float64
	TimePos   float64
	Duration  float64
	Remaining float64

	Playlist  []string
	Highlight int
	CanNext   bool
	CanPrev   bool

	Volume     int
	Mute       bool
	Fullscreen bool
	Repeat     bool

	// Err is the last fetch failure, cleared by the next successful fetch.
	Err error
}

// Reconcile folds a fetched snapshot into the previous display.
// While dragging the scrub position is left to the user.
func Reconcile(prev Display, snap status.Snapshot, dragging bool) Display {
	d := Display{
		Loaded:     snap.Loaded(),
		Paused:     snap.Pause,
		Playlist:   lo.Ternary(snap.PlaylistNames == nil, []string{}, snap.PlaylistNames),
		Highlight:  snap.PlaylistPos,
		Volume:     snap.Volume,
		Mute:       snap.Mute,
		Fullscreen: snap.Fullscreen,
		Repeat:     snap.Repeat,
	}

	if snap.Filename != nil {
		d.NowPlaying = *snap.Filename
	}

	d.CanPause = d.Loaded
	d.CanNext = d.Highlight >= 0 && d.Highlight < len(d.Playlist)-1
	d.CanPrev = d.Highlight > 0

	d.TimePos = deref(snap.TimePos)
	d.Duration = deref(snap.Duration)
	d.Remaining = deref(snap.TimeRemaining)

	switch {
	case dragging:
		d.Scrub = prev.Scrub
	case d.Loaded:
		d.Scrub = deref(snap.PercentPos)
	default:
		d.Scrub = 0
	}

	return d
}

// Idle is the display before anything was fetched.
func Idle() Display {
	return Display{Playlist: []string{}, Highlight: -1, Volume: 100}
}

// Active reports whether the loop should keep polling after this display.
func (d Display) Active() bool {
	return d.Loaded && !d.Paused
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
