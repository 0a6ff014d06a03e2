package filesystem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
			So(Fs().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")

			So(API().WriteFile("/a.toml", []byte("x = 1"), 0o644), ShouldBeNil)
			ok, err := API().Exists("/a.toml")
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
		})
	})
}
