package open

import (
	"errors"
	"testing"

	"github.com/mpvremote/mpvremote/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestURL(t *testing.T) {
	Convey("Opening something that is not an http url should be refused", t, func() {
		err := URL("/home/user/movie.mkv")
		So(errors.Is(err, ErrNotRemote), ShouldBeTrue)
	})
}

func TestLauncher(t *testing.T) {
	Convey("Given a url", t, func() {
		u := "https://example.com/live.m3u8"

		Convey("Linux should use xdg-open", func() {
			name, args, ok := launcher(constant.Linux, u)
			So(ok, ShouldBeTrue)
			So(name, ShouldEqual, "xdg-open")
			So(args, ShouldResemble, []string{u})
		})

		Convey("macOS should use open", func() {
			name, _, ok := launcher(constant.Darwin, u)
			So(ok, ShouldBeTrue)
			So(name, ShouldEqual, "open")
		})

		Convey("Windows should go through the url protocol handler", func() {
			_, args, ok := launcher(constant.Windows, u)
			So(ok, ShouldBeTrue)
			So(args, ShouldResemble, []string{"url.dll,FileProtocolHandler", u})
		})

		Convey("Unknown platforms should not be supported", func() {
			_, _, ok := launcher("plan9", u)
			So(ok, ShouldBeFalse)
		})
	})
}
