package segment

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDecode(t *testing.T) {
	Convey("Decode", t, func() {
		Convey("Should parse a provider body", func() {
			segments, err := Decode([]byte(`[
				{"category": "sponsor", "segment": [10, 20], "UUID": "abc"},
				{"category": "intro", "segment": [0.5, 3.25], "votes": 4}
			]`))
			So(err, ShouldBeNil)
			So(segments, ShouldResemble, []Segment{
				{Category: Sponsor, Start: 10, End: 20},
				{Category: Intro, Start: 0.5, End: 3.25},
			})
		})

		Convey("Should report an empty list", func() {
			_, err := Decode([]byte(`[]`))
			So(errors.Is(err, ErrEmpty), ShouldBeTrue)
		})

		Convey("Should reject bodies that are not segment lists", func() {
			for _, body := range []string{
				`{"category": "sponsor"}`,
				`null`,
				`not json`,
				`[1, 2]`,
				`[{"segment": [1, 2]}]`,
				`[{"category": "sponsor", "segment": [1]}]`,
				`[{"category": "sponsor", "segment": [5, 2]}]`,
				`[{"category": "sponsor", "segment": [-1, 2]}]`,
				`[{"category": "sponsor", "segment": ["1", "2"]}]`,
				`[{"category": "sponsor", "segment": [1, 2]}, null]`,
			} {
				_, err := Decode([]byte(body))
				So(errors.Is(err, ErrMalformed), ShouldBeTrue)
			}
		})
	})
}

func TestDescribe(t *testing.T) {
	Convey("Describe", t, func() {
		Convey("Known categories have their own color", func() {
			So(Describe(Filler), ShouldResemble, Info{Color: "#7300FF", Opacity: "0.9", Name: "tangents"})
			for _, c := range Known() {
				_, ok := Lookup(c)
				So(ok, ShouldBeTrue)
			}
		})

		Convey("Unknown categories fall back to blue", func() {
			info := Describe("chapter")
			So(info.Color, ShouldEqual, "blue")
			So(info.Name, ShouldEqual, "chapter")
		})
	})
}

func TestPolicy(t *testing.T) {
	Convey("Given a policy with sponsor and intro eligible and intro manual", t, func() {
		p := NewPolicy([]Category{Sponsor, Intro}, []Category{Intro, Outro})

		Convey("Sponsor is auto-skipped", func() {
			So(p.AutoSkip(Sponsor), ShouldBeTrue)
		})

		Convey("Intro is eligible but needs confirmation", func() {
			So(p.Eligible(Intro), ShouldBeTrue)
			So(p.AutoSkip(Intro), ShouldBeFalse)
		})

		Convey("Manual alone does not make a category eligible", func() {
			So(p.Eligible(Outro), ShouldBeFalse)
			So(p.AutoSkip(Outro), ShouldBeFalse)
		})

		Convey("The zero policy skips nothing", func() {
			So(Policy{}.AutoSkip(Sponsor), ShouldBeFalse)
		})
	})
}

func TestStore(t *testing.T) {
	Convey("Store", t, func() {
		in := []Segment{{Category: Sponsor, Start: 1, End: 2}}
		s := NewStore(in, Policy{})
		in[0].Start = 100

		Convey("Should not alias the input", func() {
			So(s.Segments()[0].Start, ShouldEqual, 1)
			So(s.Len(), ShouldEqual, 1)
		})
	})
}
