package player

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// fakeMPV speaks enough of the JSON-IPC protocol to drive the MPV backend:
// every command succeeds except set_property on unknown names, observed
// properties are reported once, and playlist commands emit the events mpv would.
type fakeMPV struct {
	listener net.Listener
	mu       sync.Mutex
	conn     net.Conn
	commands [][]any
}

func startFakeMPV(t *testing.T) (*fakeMPV, string) {
	dir, err := os.MkdirTemp("", "mpvipc")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	socket := filepath.Join(dir, "mpv.sock")
	l, err := net.Listen("unix", socket)
	if err != nil {
		t.Fatal(err)
	}

	f := &fakeMPV{listener: l}
	go f.serve()
	t.Cleanup(func() { _ = l.Close() })
	return f, socket
}

func (f *fakeMPV) serve() {
	conn, err := f.listener.Accept()
	if err != nil {
		return
	}

	f.mu.Lock()
	f.conn = conn
	f.mu.Unlock()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var cmd ipcCommand
		if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil {
			continue
		}

		f.mu.Lock()
		f.commands = append(f.commands, cmd.Command)
		f.mu.Unlock()

		f.handle(cmd)
	}
}

func (f *fakeMPV) send(v any) {
	data, _ := json.Marshal(v)
	f.mu.Lock()
	defer f.mu.Unlock()
	_, _ = f.conn.Write(append(data, '\n'))
}

func (f *fakeMPV) change(name string, data any) {
	f.send(map[string]any{"event": "property-change", "name": name, "data": data})
}

func (f *fakeMPV) handle(cmd ipcCommand) {
	reply := map[string]any{"request_id": cmd.RequestID, "error": "success", "data": nil}

	switch cmd.Command[0] {
	case "observe_property":
		f.send(reply)
		switch cmd.Command[2] {
		case "volume":
			f.change("volume", 100.0)
		case "playlist-pos":
			f.change("playlist-pos", -1.0)
		case "pause":
			f.change("pause", true)
		}
		return
	case "loadfile":
		target := cmd.Command[1].(string)
		f.send(reply)
		f.change("playlist", []map[string]any{{"filename": target, "current": true}})
		f.change("playlist-pos", 0.0)
		f.change("filename", filepath.Base(target))
		f.change("percent-pos", 0.0)
		return
	case "set_property":
		name := cmd.Command[1].(string)
		if name == "bogus" {
			reply["error"] = "property not found"
			f.send(reply)
			return
		}
		f.send(reply)
		f.change(name, cmd.Command[2])
		return
	}

	f.send(reply)
}

func (f *fakeMPV) sent(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.commands {
		if c[0] == name {
			return true
		}
	}
	return false
}

func (f *fakeMPV) hangUp() {
	f.mu.Lock()
	defer f.mu.Unlock()
	_ = f.conn.Close()
}

func TestMPV(t *testing.T) {
	ctx := context.Background()

	Convey("Given an MPV backend attached to a fake IPC server", t, func() {
		fake, socket := startFakeMPV(t)
		m, err := DialMPV(ctx, MPVOptions{Socket: socket, IPCTimeout: time.Second})
		So(err, ShouldBeNil)

		Convey("It should observe every property", func() {
			So(fake.sent("observe_property"), ShouldBeTrue)
			So(m.State().Volume, ShouldEqual, 100)
			So(m.State().PlaylistPos, ShouldEqual, -1)
		})

		Convey("Load through a handle should wait for the observed state", func() {
			h := NewHandle(m, WithWaitTimeout(2*time.Second))
			So(h.Load(ctx, "/srv/media/movie.mp4"), ShouldBeNil)

			s := h.Snapshot()
			So(s.Filename.OrEmpty(), ShouldEqual, "movie.mp4")
			So(s.Pause, ShouldBeFalse)
			So(s.Playlist, ShouldResemble, []string{"/srv/media/movie.mp4"})
		})

		Convey("Load should confirm a target that mpv receives normalized", func() {
			h := NewHandle(m, WithWaitTimeout(2*time.Second))
			So(h.Load(ctx, " http://example.com/a.mp4 "), ShouldBeNil)
			So(h.Snapshot().Playlist, ShouldResemble, []string{"http://example.com/a.mp4"})

			So(h.Load(ctx, "/srv/media/../media/movie.mp4"), ShouldBeNil)
			So(h.Snapshot().Playlist, ShouldResemble, []string{"/srv/media/movie.mp4"})
		})

		Convey("Rejected commands should surface as engine errors", func() {
			err := m.Set(ctx, "bogus", 1)
			So(errors.Is(err, ErrEngine), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "property not found")
		})

		Convey("Flag-like targets should never reach mpv", func() {
			err := m.Load(ctx, "--input-commands=quit", LoadReplace)
			So(errors.Is(err, ErrEngine), ShouldBeTrue)
			So(fake.sent("loadfile"), ShouldBeFalse)
		})

		Convey("A dropped connection should make the engine unavailable", func() {
			fake.hangUp()

			select {
			case <-m.Wait():
			case <-time.After(2 * time.Second):
				So("engine still alive", ShouldBeEmpty)
			}

			err := m.Stop(ctx)
			So(errors.Is(err, ErrUnavailable), ShouldBeTrue)
		})
	})
}

func TestLaunchArgs(t *testing.T) {
	Convey("launchArgs should reflect the options", t, func() {
		args := strings.Join(launchArgs(MPVOptions{Socket: "/tmp/x.sock", Fullscreen: true, Ytdl: false}), " ")
		So(args, ShouldContainSubstring, "--idle=yes")
		So(args, ShouldContainSubstring, "--input-ipc-server=/tmp/x.sock")
		So(args, ShouldContainSubstring, "--fullscreen")
		So(args, ShouldContainSubstring, "--ytdl=no")
		So(args, ShouldNotContainSubstring, "--ontop")
	})
}

func TestApplyProperty(t *testing.T) {
	Convey("applyProperty", t, func() {
		st := Idle()

		applyProperty(&st, "loop-playlist", "inf")
		So(st.RepeatAll, ShouldBeTrue)
		applyProperty(&st, "loop-playlist", false)
		So(st.RepeatAll, ShouldBeFalse)

		applyProperty(&st, "volume", 41.6)
		So(st.Volume, ShouldEqual, 42)

		applyProperty(&st, "playlist", []any{map[string]any{"filename": "a"}, map[string]any{"filename": "b"}})
		So(st.Playlist, ShouldResemble, []string{"a", "b"})

		applyProperty(&st, "duration", 12.5)
		So(st.Duration.OrElse(0), ShouldEqual, 12.5)
		applyProperty(&st, "duration", nil)
		So(st.Duration.IsPresent(), ShouldBeFalse)
	})
}
