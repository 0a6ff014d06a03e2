package dom

import (
	"testing"

	"github.com/segskip/segskip/loop"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTree(t *testing.T) {
	Convey("Given a document", t, func() {
		doc := NewDocument(loop.Inline{})
		slider := doc.CreateElement("ytlr-redux-connect-ytlr-progress-bar")
		bar := doc.CreateElement("YTLR-Progress-Bar")
		bar.SetAttribute("id", "bar")
		bar.AddClass("focused", "focused")
		slider.AppendChild(bar)

		Convey("Detached elements are not found", func() {
			So(doc.QuerySelector("ytlr-progress-bar"), ShouldBeNil)
			So(bar.IsConnected(), ShouldBeFalse)
		})

		Convey("When attached to the body", func() {
			doc.Body().AppendChild(slider)

			Convey("Selectors match tag, id and class", func() {
				So(doc.QuerySelector("ytlr-progress-bar"), ShouldEqual, bar)
				So(doc.QuerySelector("#bar"), ShouldEqual, bar)
				So(doc.QuerySelector(".focused"), ShouldEqual, bar)
				So(doc.QuerySelector(""), ShouldBeNil)
				So(bar.Classes(), ShouldResemble, []string{"focused"})
			})

			Convey("Appending moves the element", func() {
				other := doc.CreateElement("div")
				doc.Body().AppendChild(other)
				other.AppendChild(bar)

				So(bar.Parent(), ShouldEqual, other)
				So(slider.Children(), ShouldBeEmpty)
			})

			Convey("An element cannot be appended into itself", func() {
				bar.AppendChild(slider)
				So(slider.Parent(), ShouldEqual, doc.Body())
			})

			Convey("Remove detaches it", func() {
				bar.Remove()
				So(bar.Parent(), ShouldBeNil)
				So(slider.RemoveChild(bar), ShouldBeFalse)
			})
		})

		Convey("Important styles win over plain ones", func() {
			bar.SetStyle("height", "0.25rem", true)
			bar.SetStyle("height", "1rem", false)
			So(bar.Style("height"), ShouldEqual, "0.25rem")

			bar.SetStyle("height", "2rem", true)
			So(bar.Style("height"), ShouldEqual, "2rem")
		})
	})
}

func TestObserver(t *testing.T) {
	Convey("Given an observer on a subtree", t, func() {
		doc := NewDocument(loop.Inline{})
		slider := doc.CreateElement("slider")
		inner := doc.CreateElement("div")
		doc.Body().AppendChild(slider)
		slider.AppendChild(inner)

		var batches [][]MutationRecord
		o := NewObserver(func(records []MutationRecord) {
			batches = append(batches, records)
		})
		o.Observe(slider, ObserveOptions{ChildList: true, Subtree: true})

		Convey("Removals below the target are reported", func() {
			child := doc.CreateElement("span")
			inner.AppendChild(child)
			child.Remove()

			So(batches, ShouldHaveLength, 2)
			So(batches[1][0].Target, ShouldEqual, inner)
			So(batches[1][0].Removed, ShouldResemble, []*Element{child})
		})

		Convey("Mutations elsewhere are not reported", func() {
			doc.Body().AppendChild(doc.CreateElement("p"))
			So(batches, ShouldBeEmpty)
		})

		Convey("Mutations made by the callback are delivered in the same cycle", func() {
			keep := doc.CreateElement("overlay")
			slider.AppendChild(keep)
			batches = nil

			o.Disconnect()
			healer := NewObserver(func(records []MutationRecord) {
				for _, r := range records {
					for _, n := range r.Removed {
						if n == keep {
							slider.AppendChild(keep)
						}
					}
				}
			})
			healer.Observe(slider, ObserveOptions{ChildList: true, Subtree: true})

			slider.ReplaceChildren(doc.CreateElement("div"))
			So(keep.Parent(), ShouldEqual, slider)
			So(slider.Children(), ShouldHaveLength, 2)
			So(batches, ShouldBeEmpty)
		})

		Convey("Disconnect stops delivery", func() {
			o.Disconnect()
			inner.Remove()
			So(batches, ShouldBeEmpty)
		})
	})

	Convey("With a queued executor", t, func() {
		exec := &queue{}
		doc := NewDocument(exec)
		slider := doc.CreateElement("slider")
		doc.Body().AppendChild(slider)

		var count int
		o := NewObserver(func(records []MutationRecord) { count += len(records) })
		o.Observe(slider, ObserveOptions{ChildList: true})

		slider.AppendChild(doc.CreateElement("a"))
		slider.AppendChild(doc.CreateElement("b"))

		Convey("Records are batched into one delivery", func() {
			So(exec.fns, ShouldHaveLength, 1)
			So(count, ShouldEqual, 0)

			exec.run()
			So(count, ShouldEqual, 2)
		})
	})
}

type queue struct {
	fns []func()
}

func (q *queue) Post(fn func()) { q.fns = append(q.fns, fn) }
func (q *queue) Go(fn func())   { fn() }

func (q *queue) run() {
	for len(q.fns) > 0 {
		fn := q.fns[0]
		q.fns = q.fns[1:]
		fn()
	}
}
