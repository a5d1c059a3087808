package status

import (
	"encoding/json"
	"testing"

	"github.com/mpvremote/mpvremote/player"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestProject(t *testing.T) {
	Convey("Project", t, func() {
		Convey("Given an idle player", func() {
			snap := Project(player.Idle())

			Convey("Optional fields should be null on the wire", func() {
				data, err := json.Marshal(snap)
				So(err, ShouldBeNil)

				var wire map[string]any
				So(json.Unmarshal(data, &wire), ShouldBeNil)
				So(wire, ShouldContainKey, "filename")
				So(wire["filename"], ShouldBeNil)
				So(wire["percent_pos"], ShouldBeNil)
				So(wire["time_remaining"], ShouldBeNil)
				So(wire["playlist_pos"], ShouldEqual, -1.0)
				So(wire["playlist_names"], ShouldResemble, []any{})
				So(wire["version"], ShouldEqual, 1.0)
			})

			Convey("It should not be loaded", func() {
				So(snap.Loaded(), ShouldBeFalse)
				_, ok := snap.Current()
				So(ok, ShouldBeFalse)
			})
		})

		Convey("Given a playing file", func() {
			snap := Project(player.State{
				Filename:    mo.Some("b.mp4"),
				Volume:      70,
				TimePos:     mo.Some(30.0),
				PercentPos:  mo.Some(25.0),
				Duration:    mo.Some(120.0),
				Playlist:    []string{"a.mp4", "b.mp4"},
				PlaylistPos: 1,
				RepeatAll:   true,
			})

			Convey("time_remaining should be duration minus time_pos", func() {
				So(*snap.TimeRemaining, ShouldEqual, 90.0)
			})

			Convey("Underscored keys should carry the state", func() {
				data, err := json.Marshal(snap)
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `"filename":"b.mp4"`)
				So(string(data), ShouldContainSubstring, `"repeat":true`)
				So(string(data), ShouldContainSubstring, `"playlist_names":["a.mp4","b.mp4"]`)
			})

			Convey("Current should return the active entry", func() {
				cur, ok := snap.Current()
				So(ok, ShouldBeTrue)
				So(cur, ShouldEqual, "b.mp4")
			})
		})

		Convey("Given a stream without a known duration", func() {
			snap := Project(player.State{
				Filename:    mo.Some("live"),
				Playlist:    []string{"https://example.com/live"},
				PlaylistPos: 0,
				TimePos:     mo.Some(5.0),
			})

			So(snap.TimeRemaining, ShouldBeNil)
			So(*snap.PercentPos, ShouldEqual, 0.0)
		})
	})
}

func TestSchema(t *testing.T) {
	Convey("Schema should describe every wire field", t, func() {
		data, err := json.Marshal(Schema())
		So(err, ShouldBeNil)
		for _, field := range []string{"time_pos", "percent_pos", "time_remaining", "playlist_names", "playlist_pos", "version"} {
			So(string(data), ShouldContainSubstring, field)
		}
	})
}
