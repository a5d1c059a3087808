package auth

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func init() {
	keyring.MockInit()
}

func TestTokens(t *testing.T) {
	Convey("Given a mocked keyring", t, func() {
		const server = "http://living-room:5555"

		Convey("A missing token should read as empty", func() {
			token, err := GetToken("http://nowhere:1")
			So(err, ShouldBeNil)
			So(token, ShouldBeEmpty)
		})

		Convey("Tokens should be stored per server", func() {
			So(SetToken(server, "secret"), ShouldBeNil)
			token, err := GetToken(server)
			So(err, ShouldBeNil)
			So(token, ShouldEqual, "secret")

			other, err := GetToken("http://bedroom:5555")
			So(err, ShouldBeNil)
			So(other, ShouldBeEmpty)
		})

		Convey("Deleting should be idempotent", func() {
			So(SetToken(server, "secret"), ShouldBeNil)
			So(DeleteToken(server), ShouldBeNil)
			So(DeleteToken(server), ShouldBeNil)

			token, err := GetToken(server)
			So(err, ShouldBeNil)
			So(token, ShouldBeEmpty)
		})
	})
}
