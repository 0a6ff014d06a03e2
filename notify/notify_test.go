package notify

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMulti(t *testing.T) {
	Convey("Given several notifiers", t, func() {
		var seen []string
		ok := Func(func(title, message string) error {
			seen = append(seen, title+": "+message)
			return nil
		})
		broken := Func(func(string, string) error { return errors.New("osd unavailable") })

		Convey("Every notifier is called even if one fails", func() {
			err := Multi{broken, nil, ok, Log{}}.Notify("SponsorBlock", "Skipping intro")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "osd unavailable")
			So(seen, ShouldResemble, []string{"SponsorBlock: Skipping intro"})
		})

		Convey("Send swallows failures", func() {
			Send(broken, "SponsorBlock", "Skipping intro")
			Send(nil, "SponsorBlock", "Skipping intro")
			Send(ok, "SponsorBlock", "2 segments found")
			So(seen, ShouldResemble, []string{"SponsorBlock: 2 segments found"})
		})
	})
}
