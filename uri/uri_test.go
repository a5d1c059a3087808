package uri

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRoundTrip(t *testing.T) {
	Convey("Given printable and multibyte strings", t, func() {
		inputs := []string{
			"a",
			"movie.mp4",
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
			"folder/with spaces/and?query=1",
			"~!@#$%^&*()_+{}|:\"<>?`-=[]\\;',./",
			"日本語のファイル名.mkv",
			"émoji 🎬 title.webm",
		}

		for _, in := range inputs {
			Convey("decode(encode("+in+")) should return the input", func() {
				out, err := Decode(Encode(in))
				So(err, ShouldBeNil)
				So(out, ShouldEqual, in)
			})
		}
	})
}

func TestEncode(t *testing.T) {
	Convey("Encode should use the URL-safe alphabet and keep padding", t, func() {
		encoded := Encode("??>")
		So(encoded, ShouldEqual, "Pz8-")
		So(Encode("ab"), ShouldEqual, "YWI=")
	})
}

func TestDecode(t *testing.T) {
	Convey("Decode", t, func() {
		Convey("Should accept unpadded input", func() {
			out, err := Decode("YWI")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "ab")
		})

		Convey("Should reject the standard alphabet", func() {
			_, err := Decode("Pz8+")
			So(errors.Is(err, ErrDecode), ShouldBeTrue)
		})

		Convey("Should reject empty input", func() {
			_, err := Decode("")
			So(errors.Is(err, ErrDecode), ShouldBeTrue)
		})

		Convey("Should reject invalid utf-8", func() {
			_, err := Decode(Encode(string([]byte{0xff, 0xfe})))
			So(errors.Is(err, ErrDecode), ShouldBeTrue)
		})
	})
}

func TestIsRemote(t *testing.T) {
	Convey("IsRemote should only accept http-prefixed references", t, func() {
		So(IsRemote("http://example.com/a.mp4"), ShouldBeTrue)
		So(IsRemote("HTTPS://example.com/a.mp4"), ShouldBeTrue)
		So(IsRemote("movie.mp4"), ShouldBeFalse)
		So(IsRemote("/srv/media/http.mp4"), ShouldBeFalse)
	})
}
