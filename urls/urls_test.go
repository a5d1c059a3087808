package urls

import (
	"errors"
	"testing"

	"github.com/mpvremote/mpvremote/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestList(t *testing.T) {
	Convey("Given an empty url list", t, func() {
		filesystem.SetMemMapFs()
		l := lo.Must(LoadFrom("/config/.urls"))
		So(l.Items(), ShouldBeEmpty)

		Convey("Adding urls should persist them in order", func() {
			So(lo.Must(l.Add("https://example.com/b.m3u8")), ShouldBeTrue)
			So(lo.Must(l.Add(" http://example.com/a.mp4 ")), ShouldBeTrue)

			data := lo.Must(filesystem.API().ReadFile("/config/.urls"))
			So(string(data), ShouldEqual, "https://example.com/b.m3u8\nhttp://example.com/a.mp4\n")

			Convey("And reloading should read them back", func() {
				again := lo.Must(LoadFrom("/config/.urls"))
				So(again.Items(), ShouldResemble, []string{"https://example.com/b.m3u8", "http://example.com/a.mp4"})
			})

			Convey("And adding a duplicate should not change anything", func() {
				So(lo.Must(l.Add("http://example.com/a.mp4")), ShouldBeFalse)
				So(l.Len(), ShouldEqual, 2)
			})

			Convey("And removing one should rewrite the file", func() {
				So(lo.Must(l.Remove("https://example.com/b.m3u8")), ShouldBeTrue)
				So(lo.Must(l.Remove("https://example.com/b.m3u8")), ShouldBeFalse)

				data := lo.Must(filesystem.API().ReadFile("/config/.urls"))
				So(string(data), ShouldEqual, "http://example.com/a.mp4\n")
				So(l.Contains("http://example.com/a.mp4"), ShouldBeTrue)
			})

			Convey("And clearing should empty the file", func() {
				So(l.Clear(), ShouldBeNil)
				data := lo.Must(filesystem.API().ReadFile("/config/.urls"))
				So(string(data), ShouldBeEmpty)
			})

			Convey("And filtering should rank fuzzy matches", func() {
				So(l.Filter("m3u8"), ShouldResemble, []string{"https://example.com/b.m3u8"})
				So(l.Filter(""), ShouldHaveLength, 2)
				So(l.Filter("nothing-like-it"), ShouldBeEmpty)
			})
		})

		Convey("Adding something that is not remote should fail", func() {
			_, err := l.Add("/home/user/movie.mkv")
			So(errors.Is(err, ErrNotRemote), ShouldBeTrue)
			So(l.Len(), ShouldEqual, 0)
		})
	})

	Convey("Loading a file with blanks and duplicates should clean it", t, func() {
		filesystem.SetMemMapFs()
		lo.Must0(filesystem.API().WriteFile("/config/.urls", []byte("http://a\n\nhttp://b\r\nhttp://a\n"), 0o644))

		l := lo.Must(LoadFrom("/config/.urls"))
		So(l.Items(), ShouldResemble, []string{"http://a", "http://b"})
	})
}
