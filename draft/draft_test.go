package draft

import (
	"context"
	"errors"
	"testing"

	"github.com/mpvremote/mpvremote/client"
	"github.com/mpvremote/mpvremote/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

type recorder struct {
	items   []string
	replace bool
	index   int
}

func (r *recorder) Playlist(_ context.Context, items []string, replace bool, index int) (client.Response, error) {
	r.items, r.replace, r.index = items, replace, index
	return client.Response{Status: 200, Message: "ok"}, nil
}

func TestDraft(t *testing.T) {
	Convey("Given an empty draft", t, func() {
		So(Clear(), ShouldBeNil)
		So(lo.Must(Items()), ShouldBeEmpty)

		Convey("Playing it should fail", func() {
			_, err := Play(context.Background(), &recorder{}, 0)
			So(errors.Is(err, ErrEmpty), ShouldBeTrue)
		})

		Convey("When appending items", func() {
			items, err := Append("a.mp4", "", "https://example.com/b.mp4", "c.mkv")
			So(err, ShouldBeNil)
			So(items, ShouldResemble, []string{"a.mp4", "https://example.com/b.mp4", "c.mkv"})

			Convey("They should be persisted", func() {
				So(lo.Must(Items()), ShouldResemble, items)
			})

			Convey("Removing one should keep the order", func() {
				items, err := Remove(1)
				So(err, ShouldBeNil)
				So(items, ShouldResemble, []string{"a.mp4", "c.mkv"})
				So(lo.Must(Items()), ShouldResemble, items)
			})

			Convey("Removing out of range should fail", func() {
				_, err := Remove(3)
				So(errors.Is(err, ErrIndex), ShouldBeTrue)
			})

			Convey("Playing should send the whole draft as a new playlist", func() {
				r := &recorder{}
				res, err := Play(context.Background(), r, 2)
				So(err, ShouldBeNil)
				So(res.Message, ShouldEqual, "ok")
				So(r.items, ShouldHaveLength, 3)
				So(r.replace, ShouldBeTrue)
				So(r.index, ShouldEqual, 2)
			})

			Convey("Playing past the end should fail without a request", func() {
				r := &recorder{}
				_, err := Play(context.Background(), r, 3)
				So(errors.Is(err, ErrIndex), ShouldBeTrue)
				So(r.items, ShouldBeNil)
			})
		})
	})
}
