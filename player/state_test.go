package player

import (
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Normalize", t, func() {
		Convey("Should clear positional fields when nothing is loaded", func() {
			s := State{
				Filename:    mo.Some("stale.mp4"),
				PlaylistPos: -1,
				TimePos:     mo.Some(3.0),
				PercentPos:  mo.Some(1.0),
				Volume:      150,
			}.Normalize()

			So(s.Filename.IsPresent(), ShouldBeFalse)
			So(s.TimePos.IsPresent(), ShouldBeFalse)
			So(s.PercentPos.IsPresent(), ShouldBeFalse)
			So(s.Volume, ShouldEqual, 100)
		})

		Convey("Should give a loaded file a percent position", func() {
			s := State{Filename: mo.Some("a"), Playlist: []string{"a"}, PlaylistPos: 0}.Normalize()
			So(s.PercentPos.IsPresent(), ShouldBeTrue)
		})

		Convey("Should not share the playlist with the original", func() {
			orig := State{Playlist: []string{"a"}}
			n := orig.Normalize()
			n.Playlist[0] = "b"
			So(orig.Playlist[0], ShouldEqual, "a")
		})
	})
}

func TestDisplayName(t *testing.T) {
	Convey("DisplayName should mirror what the player reports", t, func() {
		So(DisplayName("/srv/media/movie.mp4"), ShouldEqual, "movie.mp4")
		So(DisplayName("movie.mp4"), ShouldEqual, "movie.mp4")
		So(DisplayName("https://example.com/v/clip.webm?x=1"), ShouldEqual, "clip.webm?x=1")
		So(DisplayName("https://example.com"), ShouldEqual, "example.com")
	})
}

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		_, err := sanitizeMediaTarget("--script=evil.lua")
		So(err, ShouldNotBeNil)

		_, err = sanitizeMediaTarget("file:///etc/passwd")
		So(err, ShouldNotBeNil)

		out, err := sanitizeMediaTarget("/srv/media/../media/a.mp4")
		So(err, ShouldBeNil)
		So(out, ShouldEqual, "/srv/media/a.mp4")

		out, err = sanitizeMediaTarget("https://example.com/a.mp4")
		So(err, ShouldBeNil)
		So(out, ShouldEqual, "https://example.com/a.mp4")
	})
}
