package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/mpvremote/mpvremote/constant"
	"github.com/mpvremote/mpvremote/filesystem"
	"github.com/mpvremote/mpvremote/media"
	"github.com/mpvremote/mpvremote/player"
	"github.com/mpvremote/mpvremote/server"
	"github.com/mpvremote/mpvremote/session"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestServer(opts server.Options) *httptest.Server {
	filesystem.SetMemMapFs()
	lo.Must0(filesystem.API().MkdirAll("/srv/media", os.ModePerm))
	lo.Must0(filesystem.API().MkdirAll("/home/user", os.ModePerm))

	sim := player.NewSimulator()
	handle := player.NewHandle(sim, player.WithWaitTimeout(time.Second))
	controller := session.New(handle, media.NewLibrary("/srv/media", "/tmp/mpvremote"))
	return httptest.NewServer(server.New(controller, opts).Handler())
}

func TestClient(t *testing.T) {
	Convey("Given a client connected to a running server", t, func() {
		ts := newTestServer(server.Options{})
		defer ts.Close()

		ctx := context.Background()
		c := New(ts.URL+"/", "", 5*time.Second)

		Convey("Server should be trimmed of trailing slashes", func() {
			So(c.Server(), ShouldEqual, ts.URL)
		})

		Convey("Health should report the server version", func() {
			h, err := c.Health(ctx)
			So(err, ShouldBeNil)
			So(h.Status, ShouldEqual, "ok")
			So(h.Phase, ShouldEqual, "idle")
			So(h.Version, ShouldEqual, constant.Version)
			So(h.Schema, ShouldEqual, constant.SchemaVersion)
		})

		Convey("Status should report an idle player", func() {
			snap, err := c.Status(ctx)
			So(err, ShouldBeNil)
			So(snap.Filename, ShouldBeNil)
			So(snap.PlaylistNames, ShouldBeEmpty)
		})

		Convey("List should be empty on an empty library", func() {
			files, err := c.List(ctx)
			So(err, ShouldBeNil)
			So(files, ShouldBeEmpty)
		})

		Convey("Stop on an idle player should be a status error", func() {
			_, err := c.Stop(ctx)
			So(err, ShouldNotBeNil)
			So(IsStatus(err, http.StatusNotAcceptable), ShouldBeTrue)
		})

		Convey("Uploading a local file", func() {
			lo.Must0(filesystem.API().WriteFile("/home/user/movie.mkv", []byte("frames"), 0o644))

			res, err := c.Upload(ctx, "/home/user/movie.mkv")
			So(err, ShouldBeNil)
			So(res.Status, ShouldEqual, http.StatusCreated)

			Convey("Should list it", func() {
				files, err := c.List(ctx)
				So(err, ShouldBeNil)
				So(files, ShouldResemble, []string{"movie.mkv"})
			})

			Convey("Should refuse a second upload", func() {
				_, err := c.Upload(ctx, "/home/user/movie.mkv")
				So(IsStatus(err, http.StatusConflict), ShouldBeTrue)
			})

			Convey("Should play it and report the status", func() {
				res, err := c.Play(ctx, "movie.mkv", true, false)
				So(err, ShouldBeNil)
				So(res.Message, ShouldEqual, "playing local")

				snap, err := c.Status(ctx)
				So(err, ShouldBeNil)
				So(*snap.Filename, ShouldEqual, "movie.mkv")
				So(snap.Pause, ShouldBeFalse)

				res, err = c.Pause(ctx)
				So(err, ShouldBeNil)
				So(res.Message, ShouldEqual, "player is paused")

				res, err = c.Seek(ctx, 50)
				So(err, ShouldBeNil)
				So(res.Status, ShouldEqual, http.StatusAccepted)

				res, err = c.Volume(ctx, 40)
				So(err, ShouldBeNil)
				So(res.Status, ShouldEqual, http.StatusAccepted)

				snap, err = c.Status(ctx)
				So(err, ShouldBeNil)
				So(snap.Volume, ShouldEqual, 40)
				So(snap.Pause, ShouldBeTrue)
			})

			Convey("Should refuse to play over it without replace", func() {
				_, err := c.Play(ctx, "movie.mkv", true, false)
				So(err, ShouldBeNil)

				_, err = c.Play(ctx, "movie.mkv", true, false)
				So(IsStatus(err, http.StatusForbidden), ShouldBeTrue)
			})
		})

		Convey("Streaming a local file should return a playable path", func() {
			lo.Must0(filesystem.API().WriteFile("/home/user/clip.MP4", []byte("frames"), 0o644))

			res, err := c.Stream(ctx, "/home/user/clip.MP4")
			So(err, ShouldBeNil)
			So(res.Status, ShouldEqual, http.StatusAccepted)
			So(res.File, ShouldStartWith, "/tmp/mpvremote/")
			So(res.File, ShouldEndWith, ".mp4")

			_, err = c.Play(ctx, res.File, true, true)
			So(err, ShouldBeNil)
		})

		Convey("Sending a playlist should play the chosen entry", func() {
			res, err := c.Playlist(ctx, []string{"https://example.com/a.mp4", "https://example.com/b.mp4"}, true, 1)
			So(err, ShouldBeNil)
			So(res.Status, ShouldEqual, http.StatusOK)

			snap, err := c.Status(ctx)
			So(err, ShouldBeNil)
			So(snap.PlaylistPos, ShouldEqual, 1)

			_, err = c.Next(ctx)
			So(IsStatus(err, http.StatusMethodNotAllowed), ShouldBeTrue)

			_, err = c.Previous(ctx)
			So(err, ShouldBeNil)
		})

		Convey("Uploading a missing file should fail before any request", func() {
			_, err := c.Upload(ctx, "/home/user/missing.mkv")
			So(err, ShouldNotBeNil)
			So(IsStatus(err, http.StatusNotFound), ShouldBeFalse)
		})
	})
}

func TestAuth(t *testing.T) {
	Convey("Given a server that requires an api key", t, func() {
		ts := newTestServer(server.Options{APIKey: "secret"})
		defer ts.Close()

		ctx := context.Background()

		Convey("A client without a token should be rejected", func() {
			_, err := New(ts.URL, "", time.Second).Status(ctx)
			So(IsStatus(err, http.StatusUnauthorized), ShouldBeTrue)
		})

		Convey("A client with the token should be accepted", func() {
			_, err := New(ts.URL, "secret", time.Second).Status(ctx)
			So(err, ShouldBeNil)
		})
	})
}

func TestWatch(t *testing.T) {
	Convey("Given a client watching the server", t, func() {
		ts := newTestServer(server.Options{})
		defer ts.Close()

		c := New(ts.URL, "", time.Second)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		events := make(chan server.Event, 8)
		done := make(chan error, 1)
		go func() {
			done <- c.Watch(ctx, func(e server.Event) { events <- e })
		}()

		Convey("The first event should be the current status", func() {
			var first server.Event
			select {
			case first = <-events:
			case <-ctx.Done():
			}
			So(first.Type, ShouldEqual, server.EventStatus)
			So(first.Status, ShouldNotBeNil)

			cancel()
			So(<-done, ShouldNotBeNil)
		})
	})
}

func TestSocketURL(t *testing.T) {
	Convey("socketURL", t, func() {
		Convey("Should switch http to ws", func() {
			u, err := New("http://host:5555", "", 0).socketURL()
			So(err, ShouldBeNil)
			So(u, ShouldEqual, "ws://host:5555/ws")
		})

		Convey("Should switch https to wss and keep a path prefix", func() {
			u, err := New("https://host/remote/", "", 0).socketURL()
			So(err, ShouldBeNil)
			So(u, ShouldEqual, "wss://host/remote/ws")
		})
	})
}
