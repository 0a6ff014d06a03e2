package util

import (
	"math"
	"testing"

	"github.com/segskip/segskip/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "segment", "segments"), ShouldEqual, "1 segment")
		So(Quantify(0, "segment", "segments"), ShouldEqual, "0 segments")
		So(Quantify(2, "segment", "segments"), ShouldEqual, "2 segments")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("intro"), ShouldEqual, "Intro")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestTimestamp(t *testing.T) {
	Convey("Timestamp", t, func() {
		So(Timestamp(0), ShouldEqual, "0:00.0")
		So(Timestamp(65.25), ShouldEqual, "1:05.3")
		So(Timestamp(3725.04), ShouldEqual, "1:02:05.0")
		So(Timestamp(math.NaN()), ShouldEqual, "-")
		So(Timestamp(-1), ShouldEqual, "-")
	})
}

func TestMax(t *testing.T) {
	Convey("Max", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Max("a", "c", "b"), ShouldEqual, "c")
		So(Max[int](), ShouldEqual, 0)
	})
}

func TestDelete(t *testing.T) {
	Convey("Given a memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()
		So(fs.MkdirAll("/cache/logs", 0o755), ShouldBeNil)
		So(fs.WriteFile("/cache/logs/a.log", []byte("x"), 0o644), ShouldBeNil)
		So(fs.WriteFile("/cache/config.toml", []byte("x"), 0o644), ShouldBeNil)

		Convey("Delete removes files and directories", func() {
			So(Delete("/cache/config.toml"), ShouldBeNil)
			So(Delete("/cache/logs"), ShouldBeNil)

			exists, _ := fs.Exists("/cache/logs/a.log")
			So(exists, ShouldBeFalse)
			So(Delete("/cache/missing"), ShouldNotBeNil)
		})
	})
}
