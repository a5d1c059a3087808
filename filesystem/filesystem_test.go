package filesystem

import (
	"io"
	"os"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBackend(t *testing.T) {
	Convey("Switching backends", t, func() {
		SetOsFs()
		So(API().Name(), ShouldEqual, "OsFs")

		SetMemMapFs()
		So(API().Name(), ShouldEqual, "MemMapFS")

		Convey("A fresh in-memory backend should start empty", func() {
			lo.Must0(API().WriteFile("/draft.json", []byte("[]"), 0o644))
			SetMemMapFs()
			So(lo.Must(API().Exists("/draft.json")), ShouldBeFalse)
		})
	})
}

func TestGacheFs(t *testing.T) {
	Convey("Given the gache adapter over an in-memory backend", t, func() {
		SetMemMapFs()
		var fs GacheFs

		Convey("Files it writes should be visible through API", func() {
			So(fs.MkdirAll("/cache", 0o755), ShouldBeNil)

			f := lo.Must(fs.OpenFile("/cache/servers.json", os.O_CREATE|os.O_WRONLY, 0o644))
			lo.Must(io.WriteString(f, `{"http://localhost:5555":{}}`))
			So(f.Close(), ShouldBeNil)

			data := lo.Must(API().ReadFile("/cache/servers.json"))
			So(string(data), ShouldEqual, `{"http://localhost:5555":{}}`)
		})
	})
}
