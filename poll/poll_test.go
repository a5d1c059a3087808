package poll

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mpvremote/mpvremote/constant"
	"github.com/mpvremote/mpvremote/status"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

type scripted struct {
	mu    sync.Mutex
	snaps []status.Snapshot
	errs  []error
	calls atomic.Int32
}

// Status replays the script and then repeats its last entry.
func (s *scripted) Status(context.Context) (status.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := int(s.calls.Add(1)) - 1
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	if err != nil {
		return status.Snapshot{}, err
	}
	return s.snaps[min(i, len(s.snaps)-1)], nil
}

type dragging bool

func (d dragging) Dragging() bool { return bool(d) }

func playing(name string, percent float64, pos int, playlist ...string) status.Snapshot {
	return status.Snapshot{
		Version:       constant.SchemaVersion,
		Filename:      lo.ToPtr(name),
		PercentPos:    lo.ToPtr(percent),
		TimePos:       lo.ToPtr(percent),
		Duration:      lo.ToPtr(100.0),
		TimeRemaining: lo.ToPtr(100 - percent),
		PlaylistNames: playlist,
		PlaylistPos:   pos,
		Volume:        80,
	}
}

func idle() status.Snapshot {
	return status.Snapshot{Version: constant.SchemaVersion, PlaylistNames: []string{}, PlaylistPos: -1, Volume: 100}
}

func waitStopped(p *Poller) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !p.Running() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func TestReconcile(t *testing.T) {
	Convey("Reconcile", t, func() {
		Convey("Should mirror a playing snapshot", func() {
			d := Reconcile(Idle(), playing("b.mp4", 42, 1, "a.mp4", "b.mp4", "c.mp4"), false)
			So(d.Loaded, ShouldBeTrue)
			So(d.NowPlaying, ShouldEqual, "b.mp4")
			So(d.CanPause, ShouldBeTrue)
			So(d.Scrub, ShouldEqual, 42.0)
			So(d.Remaining, ShouldEqual, 58.0)
			So(d.Highlight, ShouldEqual, 1)
			So(d.CanNext, ShouldBeTrue)
			So(d.CanPrev, ShouldBeTrue)
			So(d.Volume, ShouldEqual, 80)
		})

		Convey("Should disable next on the last entry and previous on the first", func() {
			last := Reconcile(Idle(), playing("c.mp4", 1, 2, "a.mp4", "b.mp4", "c.mp4"), false)
			So(last.CanNext, ShouldBeFalse)
			So(last.CanPrev, ShouldBeTrue)

			first := Reconcile(Idle(), playing("a.mp4", 1, 0, "a.mp4", "b.mp4"), false)
			So(first.CanNext, ShouldBeTrue)
			So(first.CanPrev, ShouldBeFalse)
		})

		Convey("Should keep the scrub position while dragging", func() {
			prev := Idle()
			prev.Scrub = 75
			d := Reconcile(prev, playing("a.mp4", 10, 0, "a.mp4"), true)
			So(d.Scrub, ShouldEqual, 75.0)
			So(d.TimePos, ShouldEqual, 10.0)
		})

		Convey("Should reset everything when idle", func() {
			prev := Reconcile(Idle(), playing("a.mp4", 10, 0, "a.mp4"), false)
			d := Reconcile(prev, idle(), false)
			So(d.Loaded, ShouldBeFalse)
			So(d.CanPause, ShouldBeFalse)
			So(d.NowPlaying, ShouldBeEmpty)
			So(d.Scrub, ShouldEqual, 0.0)
			So(d.Highlight, ShouldEqual, -1)
			So(d.CanNext, ShouldBeFalse)
			So(d.CanPrev, ShouldBeFalse)
			So(d.Active(), ShouldBeFalse)
		})
	})
}

func TestPoller(t *testing.T) {
	Convey("Given a poller with a short interval", t, func() {
		ctx := context.Background()

		Convey("It should stop by itself once nothing is playing", func() {
			f := &scripted{snaps: []status.Snapshot{
				playing("a.mp4", 10, 0, "a.mp4"),
				playing("a.mp4", 20, 0, "a.mp4"),
				idle(),
			}}

			var updates atomic.Int32
			p := New(f, WithInterval(5*time.Millisecond), WithHandler(func(Display) { updates.Add(1) }))
			p.Kick(ctx)

			So(waitStopped(p), ShouldBeTrue)
			So(f.calls.Load(), ShouldEqual, 3)
			So(updates.Load(), ShouldEqual, 3)
			So(p.Display().Loaded, ShouldBeFalse)
		})

		Convey("It should stop by itself once paused", func() {
			paused := playing("a.mp4", 30, 0, "a.mp4")
			paused.Pause = true
			f := &scripted{snaps: []status.Snapshot{playing("a.mp4", 10, 0, "a.mp4"), paused}}

			p := New(f, WithInterval(5*time.Millisecond))
			p.Kick(ctx)

			So(waitStopped(p), ShouldBeTrue)
			So(p.Display().Paused, ShouldBeTrue)
			So(p.Display().Scrub, ShouldEqual, 30.0)
		})

		Convey("It should not stop on a stale paused snapshot right after a kick", func() {
			stale := playing("a.mp4", 30, 0, "a.mp4")
			stale.Pause = true
			f := &scripted{snaps: []status.Snapshot{stale, playing("a.mp4", 31, 0, "a.mp4"), idle()}}

			var sawPlaying atomic.Bool
			p := New(f, WithInterval(5*time.Millisecond), WithHandler(func(d Display) {
				if d.Loaded && !d.Paused {
					sawPlaying.Store(true)
				}
			}))
			p.Kick(ctx)

			So(waitStopped(p), ShouldBeTrue)
			So(f.calls.Load(), ShouldEqual, 3)
			So(sawPlaying.Load(), ShouldBeTrue)
		})

		Convey("It should still stop on a second idle snapshot", func() {
			f := &scripted{snaps: []status.Snapshot{idle()}}

			p := New(f, WithInterval(5*time.Millisecond))
			p.Kick(ctx)

			So(waitStopped(p), ShouldBeTrue)
			So(f.calls.Load(), ShouldEqual, 2)
		})

		Convey("It should keep polling through fetch errors", func() {
			f := &scripted{
				snaps: []status.Snapshot{{}, playing("a.mp4", 10, 0, "a.mp4"), idle()},
				errs:  []error{errors.New("connection refused")},
			}

			p := New(f, WithInterval(5*time.Millisecond))
			p.Kick(ctx)

			So(waitStopped(p), ShouldBeTrue)
			So(f.calls.Load(), ShouldEqual, 3)
			So(p.Display().Err, ShouldBeNil)
		})

		Convey("A new kick should supersede the previous loop", func() {
			f := &scripted{snaps: []status.Snapshot{playing("a.mp4", 10, 0, "a.mp4")}}

			p := New(f, WithInterval(time.Hour))
			first := p.Kick(ctx)
			second := p.Kick(ctx)

			So(second, ShouldEqual, first+1)
			So(p.Generation(), ShouldEqual, second)
			So(p.Running(), ShouldBeTrue)

			p.Stop()
			So(p.Running(), ShouldBeFalse)
			So(p.Generation(), ShouldBeGreaterThan, second)
		})

		Convey("Refresh should fetch once without starting a loop", func() {
			f := &scripted{snaps: []status.Snapshot{playing("a.mp4", 10, 0, "a.mp4", "b.mp4")}}

			p := New(f, WithScrubber(dragging(false)))
			d, err := p.Refresh(ctx)
			So(err, ShouldBeNil)
			So(d.CanNext, ShouldBeTrue)
			So(p.Running(), ShouldBeFalse)
			So(f.calls.Load(), ShouldEqual, 1)
		})
	})
}
