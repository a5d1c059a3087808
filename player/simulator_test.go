package player

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSimulator(t *testing.T) {
	ctx := context.Background()

	Convey("Given a simulator with one-minute files", t, func() {
		sim := NewSimulator(WithDurations(func(string) time.Duration { return time.Minute }))
		So(sim.Load(ctx, "a", LoadAppend), ShouldBeNil)
		So(sim.Load(ctx, "b", LoadAppend), ShouldBeNil)

		Convey("Appending to an idle playlist should not start playback", func() {
			So(sim.State().Loaded(), ShouldBeFalse)
			So(sim.State().Playlist, ShouldHaveLength, 2)
		})

		Convey("Advance should move through the playlist and go idle at the end", func() {
			So(sim.PlaylistPlayIndex(ctx, 0), ShouldBeNil)

			sim.Advance(30 * time.Second)
			So(sim.State().PercentPos.OrElse(0), ShouldAlmostEqual, 50, 0.001)

			sim.Advance(time.Minute)
			So(sim.State().PlaylistPos, ShouldEqual, 1)

			sim.Advance(time.Minute)
			So(sim.State().Loaded(), ShouldBeFalse)
			So(sim.State().Playlist, ShouldBeEmpty)
		})

		Convey("Advance should wrap around when looping", func() {
			So(sim.Set(ctx, PropLoopPlaylist, "inf"), ShouldBeNil)
			So(sim.PlaylistPlayIndex(ctx, 1), ShouldBeNil)
			sim.Advance(time.Minute)
			So(sim.State().PlaylistPos, ShouldEqual, 0)
		})

		Convey("Advance should not move a paused file", func() {
			So(sim.PlaylistPlayIndex(ctx, 0), ShouldBeNil)
			So(sim.Set(ctx, PropPause, true), ShouldBeNil)
			sim.Advance(10 * time.Second)
			So(sim.State().TimePos.OrElse(-1), ShouldEqual, 0.0)
		})

		Convey("PlaylistClear should keep only the current entry", func() {
			So(sim.PlaylistPlayIndex(ctx, 1), ShouldBeNil)
			So(sim.PlaylistClear(ctx), ShouldBeNil)
			So(sim.State().Playlist, ShouldResemble, []string{"b"})
			So(sim.State().PlaylistPos, ShouldEqual, 0)
		})

		Convey("Boundaries should be enforced", func() {
			So(sim.PlaylistPrev(ctx), ShouldNotBeNil)
			So(sim.PlaylistPlayIndex(ctx, 2), ShouldNotBeNil)
			So(sim.PlaylistPlayIndex(ctx, 1), ShouldBeNil)
			So(sim.PlaylistNext(ctx), ShouldNotBeNil)
		})

		Convey("Subscribers should be notified of changes", func() {
			changes, unsubscribe := sim.Subscribe()
			defer unsubscribe()

			So(sim.Set(ctx, PropMute, true), ShouldBeNil)
			select {
			case <-changes:
			case <-time.After(time.Second):
				So("no notification", ShouldBeEmpty)
			}
		})
	})
}
