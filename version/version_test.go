package version

import (
	"context"
	"errors"
	"testing"

	"github.com/mpvremote/mpvremote/client"
	"github.com/mpvremote/mpvremote/constant"
	"github.com/mpvremote/mpvremote/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

type fakeServer struct {
	url    string
	health client.Health
	err    error
	calls  int
}

func (f *fakeServer) Server() string { return f.url }

func (f *fakeServer) Health(context.Context) (client.Health, error) {
	f.calls++
	return f.health, f.err
}

func TestCompare(t *testing.T) {
	Convey("Compare", t, func() {
		So(lo.Must(Compare("1.2.3", "1.2.3")), ShouldEqual, 0)
		So(lo.Must(Compare("v1.3.0", "1.2.9")), ShouldEqual, 1)
		So(lo.Must(Compare("0.9.0", "1.0.0")), ShouldEqual, -1)
		So(lo.Must(Compare("1.2.3-rc.1", "1.2.3")), ShouldEqual, 0)
		_, err := Compare("1.2", "1.2.0")
		So(err, ShouldNotBeNil)
	})
}

func TestCompatible(t *testing.T) {
	Convey("Compatible", t, func() {
		Convey("Should accept the same build", func() {
			ok, err := Compatible(Remote{Version: constant.Version, Schema: constant.SchemaVersion})
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
		})

		Convey("Should reject another schema", func() {
			ok, err := Compatible(Remote{Version: constant.Version, Schema: constant.SchemaVersion + 1})
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("Should reject another major version", func() {
			ok, err := Compatible(Remote{Version: "99.0.0", Schema: constant.SchemaVersion})
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("Should fail on garbage", func() {
			_, err := Compatible(Remote{Version: "latest", Schema: constant.SchemaVersion})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestOf(t *testing.T) {
	Convey("Given a server reporting its version", t, func() {
		f := &fakeServer{
			url:    "http://test-of:5555",
			health: client.Health{Status: "ok", Version: "0.3.1", Schema: constant.SchemaVersion},
		}

		Convey("Of should fetch once and then use the cache", func() {
			remote, err := Of(context.Background(), f)
			So(err, ShouldBeNil)
			So(remote.Version, ShouldEqual, "0.3.1")

			remote, err = Of(context.Background(), f)
			So(err, ShouldBeNil)
			So(remote.Schema, ShouldEqual, constant.SchemaVersion)
			So(f.calls, ShouldEqual, 1)
		})
	})

	Convey("Given an unreachable server", t, func() {
		f := &fakeServer{url: "http://test-unreachable:5555", err: errors.New("connection refused")}

		Convey("Of should return the error", func() {
			_, err := Of(context.Background(), f)
			So(err, ShouldNotBeNil)
		})
	})
}
