package icon

import (
	"testing"

	"github.com/mpvremote/mpvremote/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Given the playback icons", t, func() {
		defer viper.Set(key.IconsVariant, "")

		Convey("Every variant should render them", func() {
			for _, variant := range AvailableVariants() {
				viper.Set(key.IconsVariant, variant)
				for i := range icons {
					So(Get(i), ShouldNotBeEmpty)
				}
			}
		})

		Convey("Play and pause should differ in every variant", func() {
			for _, variant := range AvailableVariants() {
				viper.Set(key.IconsVariant, variant)
				So(Get(Play), ShouldNotEqual, Get(Pause))
			}
		})

		Convey("An unknown variant should fall back to plain", func() {
			viper.Set(key.IconsVariant, "plain")
			want := Get(Stop)

			viper.Set(key.IconsVariant, "retro")
			So(Get(Stop), ShouldEqual, want)
		})

		Convey("An unregistered icon should render empty", func() {
			So(Get(Icon(-1)), ShouldBeEmpty)
		})
	})
}
