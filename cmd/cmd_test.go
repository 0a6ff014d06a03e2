package cmd

import (
	"encoding/json"
	"testing"

	"github.com/segskip/segskip/config"
	"github.com/segskip/segskip/filesystem"
	"github.com/segskip/segskip/key"
	"github.com/segskip/segskip/segment"
	. "github.com/smartystreets/goconvey/convey"
)

func TestProbeReport(t *testing.T) {
	Convey("Given segments of every disposition", t, func() {
		policy := segment.NewPolicy(
			[]segment.Category{segment.Sponsor, segment.Intro},
			[]segment.Category{segment.Intro, segment.Outro},
		)
		report := newProbeReport("abc", 4042, []segment.Segment{
			{Category: segment.Sponsor, Start: 10, End: 20},
			{Category: segment.Intro, Start: 0, End: 5},
			{Category: segment.Filler, Start: 30, End: 45},
			{Category: segment.Outro, Start: 90, End: 100},
		}, policy)

		Convey("Each segment gets its action", func() {
			So(report.Segments[0].Action, ShouldEqual, actionSkip)
			So(report.Segments[1].Action, ShouldEqual, actionManual)
			So(report.Segments[2].Action, ShouldEqual, actionIgnore)
			So(report.Segments[2].Name, ShouldEqual, "tangents")
		})

		Convey("A manual category that is not enabled is ignored", func() {
			So(report.Segments[3].Action, ShouldEqual, actionIgnore)
		})

		Convey("JSON keeps the wire names", func() {
			out, err := json.Marshal(report)
			So(err, ShouldBeNil)
			So(string(out), ShouldContainSubstring, `"port":4042`)
			So(string(out), ShouldContainSubstring, `{"category":"sponsor","name":"sponsored segment","start":10,"end":20,"action":"skip"}`)
		})

		Convey("The table lists every segment", func() {
			pretty := report.Pretty()
			So(pretty, ShouldContainSubstring, "abc")
			So(pretty, ShouldContainSubstring, "4 segments")
			So(pretty, ShouldContainSubstring, "tangents")
			So(pretty, ShouldContainSubstring, "0:10.0")
		})
	})
}

func TestProviderSchema(t *testing.T) {
	Convey("The provider schema describes a list of records", t, func() {
		out, err := json.Marshal(providerSchema())
		So(err, ShouldBeNil)

		var schema map[string]any
		So(json.Unmarshal(out, &schema), ShouldBeNil)
		So(schema["type"], ShouldEqual, "array")

		items, ok := schema["items"].(map[string]any)
		So(ok, ShouldBeTrue)
		So(items["required"], ShouldContain, "category")
		So(items["required"], ShouldContain, "segment")
	})
}

func TestConfigFields(t *testing.T) {
	Convey("Given the registered settings", t, func() {
		Convey("Category toggles resolve to their field", func() {
			field, err := lookupField(key.SponsorBlockCategory("sponsor"))
			So(err, ShouldBeNil)
			So(field.Value, ShouldEqual, true)
		})

		Convey("A toggle of an unknown category names the category", func() {
			_, err := lookupField("sponsorblock.enable_sponsr")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown category")
			So(err.Error(), ShouldContainSubstring, "sponsor")
		})

		Convey("Other unknown keys get the closest key", func() {
			_, err := lookupField("logs.levle")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown key")
			So(err.Error(), ShouldContainSubstring, "logs.level")
		})
	})

	Convey("Given the manual skips list", t, func() {
		field := config.Default[key.SponsorBlockManualSkips]

		Convey("Known categories are accepted, comma separated or not", func() {
			v, err := parseValue(field, []string{"intro, outro", "intro"})
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []string{"intro", "outro"})
		})

		Convey("Unknown categories are rejected", func() {
			_, err := parseValue(field, []string{"intro,bogus"})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "bogus")
		})
	})

	Convey("Scalar values follow the default's type", t, func() {
		v, err := parseValue(config.Default[key.OverlayPollMs], []string{"250"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 250)

		_, err = parseValue(config.Default[key.NotifyOSD], []string{"maybe"})
		So(err, ShouldNotBeNil)

		_, err = parseValue(config.Default[key.LogsLevel], nil)
		So(err, ShouldNotBeNil)
	})

	Convey("Category toggles show how their segments are painted", t, func() {
		described := describeField(config.Default[key.SponsorBlockCategory("filler")])
		So(described, ShouldContainSubstring, "tangents")
		So(described, ShouldContainSubstring, "#7300FF")
		So(described, ShouldContainSubstring, "opacity 0.9")

		So(describeField(config.Default[key.LogsLevel]), ShouldNotContainSubstring, "opacity")
	})
}

func TestRemoveConfig(t *testing.T) {
	Convey("Given a config file on a memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()
		So(fs.MkdirAll("/config", 0o755), ShouldBeNil)
		So(fs.WriteFile("/config/segskip.toml", []byte("[logs]"), 0o644), ShouldBeNil)

		Convey("It is deleted", func() {
			So(removeConfig("/config/segskip.toml"), ShouldBeNil)
			exists, _ := fs.Exists("/config/segskip.toml")
			So(exists, ShouldBeFalse)
		})

		Convey("A missing file is not an error", func() {
			So(removeConfig("/config/missing.toml"), ShouldBeNil)
		})
	})
}
