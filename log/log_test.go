package log

import (
	"testing"

	"github.com/samber/lo"
	"github.com/segskip/segskip/filesystem"
	"github.com/segskip/segskip/key"
	"github.com/segskip/segskip/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		Convey("Entries are discarded", func() {
			entry := For("dQw4w9WgXcQ")
			So(entry.Data, ShouldBeEmpty)
			entry.Info("nothing to see")
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "not-a-level")
		defer viper.Set(key.LogsWrite, false)

		So(Setup(), ShouldBeNil)

		Convey("A log file exists for today", func() {
			files := lo.Must(filesystem.API().ReadDir(where.Logs()))
			So(files, ShouldNotBeEmpty)
		})

		Convey("Entries carry the video id", func() {
			So(For("abc").Data["video"], ShouldEqual, "abc")
		})
	})
}
