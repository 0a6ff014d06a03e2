// Package overlay paints segments onto the host's progress slider and keeps them there.
//
// The host re-renders its slider subtree whenever it likes. The overlay polls
// until the slider exists, attaches its container, then watches the slider's
// subtree and re-attaches the container each time the host drops it.
package overlay

import (
	"time"

	"github.com/segskip/segskip/clock"
	"github.com/segskip/segskip/dom"
	"github.com/segskip/segskip/log"
	"github.com/segskip/segskip/segment"
	"github.com/sirupsen/logrus"
)

// Container classes. FocusedClass follows the focus state of the host progress bar.
const (
	HostClass    = "ytLrProgressBarHost"
	FocusedClass = "ytLrProgressBarFocused"
	DefaultClass = "ytLrWatchDefaultProgressBar"
)

// Marker receives the laid out bars once the overlay is built.
// Hosts without an element tree use it to show segments their own way.
type Marker interface {
	Mark(bars []Bar) error
}

// Options tells the overlay where the host keeps its slider.
type Options struct {
	SliderSelector string
	BarSelector    string
	// FocusAttribute on the progress bar reads "false" while the bar is not focused.
	FocusAttribute string
	PollInterval   time.Duration
	// PollAttempts bounds the slider lookup. 0 polls until destroyed.
	PollAttempts int
	Marker       Marker
}

// DefaultOptions matches the host markup the overlay was built for.
func DefaultOptions() Options {
	return Options{
		SliderSelector: "ytlr-redux-connect-ytlr-progress-bar",
		BarSelector:    "ytlr-progress-bar",
		FocusAttribute: "hybridnavfocusable",
		PollInterval:   500 * time.Millisecond,
	}
}

// Overlay is the segment bar container of one session.
type Overlay struct {
	doc      *dom.Document
	clock    clock.Clock
	opts     Options
	segments []segment.Segment
	logger   *logrus.Entry

	container *dom.Element
	slider    *dom.Element
	poll      *clock.Task
	observer  *dom.Observer
	destroyed bool
}

// New prepares an overlay for the segments. Nothing is built until Build is called.
func New(doc *dom.Document, clk clock.Clock, segments []segment.Segment, opts Options) *Overlay {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultOptions().PollInterval
	}

	return &Overlay{
		doc:      doc,
		clock:    clk,
		opts:     opts,
		segments: segments,
		logger:   log.For(""),
	}
}

// WithLogger tags the overlay's log lines, usually with the session's video.
func (o *Overlay) WithLogger(l *logrus.Entry) *Overlay {
	o.logger = l
	return o
}

// Build renders the container for a video of the given duration and starts looking for the slider.
// It does nothing if the overlay is already built or the duration is not known yet.
func (o *Overlay) Build(duration float64) bool {
	if o.destroyed || o.container != nil || !validDuration(duration) {
		return false
	}

	bars := Bars(o.segments, duration)
	o.container = o.render(bars)

	if o.opts.Marker != nil {
		if err := o.opts.Marker.Mark(bars); err != nil {
			o.logger.Infof("marking segments failed: %v", err)
		}
	}

	o.observer = dom.NewObserver(o.onMutations)
	o.poll = clock.Retry(o.clock, o.opts.PollInterval, o.opts.PollAttempts, o.findSlider)
	return true
}

func (o *Overlay) render(bars []Bar) *dom.Element {
	container := o.doc.CreateElement("div")
	container.AddClass(HostClass, FocusedClass, DefaultClass)

	track := o.doc.CreateElement("div")
	track.SetStyle("background-color", "rgb(0, 0, 0, 0)", false)
	track.SetStyle("bottom", "auto", true)
	track.SetStyle("height", "0.25rem", true)
	track.SetStyle("overflow", "hidden", true)
	track.SetStyle("position", "absolute", true)
	track.SetStyle("top", "1.625rem", true)
	track.SetStyle("width", "100%", true)
	container.AppendChild(track)

	for _, b := range bars {
		el := o.doc.CreateElement("div")
		el.SetAttribute("data-category", string(b.Segment.Category))
		el.SetAttribute("data-start", formatFloat(b.Segment.Start))
		el.SetAttribute("data-end", formatFloat(b.Segment.End))
		el.SetStyle("background", b.Color, true)
		el.SetStyle("opacity", b.Opacity, true)
		el.SetStyle("transform", b.Transform(), true)
		el.SetStyle("height", "100%", false)
		el.SetStyle("pointer-events", "none", false)
		el.SetStyle("position", "absolute", false)
		el.SetStyle("transform-origin", "left", false)
		el.SetStyle("width", "100%", false)
		track.AppendChild(el)
	}

	return container
}

func (o *Overlay) findSlider(int) bool {
	slider := o.doc.QuerySelector(o.opts.SliderSelector)
	if slider == nil {
		return false
	}

	o.slider = slider
	o.observer.Observe(slider, dom.ObserveOptions{ChildList: true, Subtree: true})
	slider.AppendChild(o.container)
	return true
}

func (o *Overlay) onMutations(records []dom.MutationRecord) {
	if o.destroyed || o.container == nil {
		return
	}

	if (attachment{child: o.container, parent: o.slider}).reconcile(records) {
		o.logger.Infof("bringing back segments overlay")
	}

	o.syncFocus()
}

// syncFocus mirrors the host progress bar's focus state onto the container.
func (o *Overlay) syncFocus() {
	bar := o.doc.QuerySelector(o.opts.BarSelector)
	if bar != nil {
		if v, ok := bar.Attribute(o.opts.FocusAttribute); ok && v == "false" {
			o.container.RemoveClass(FocusedClass)
			return
		}
	}
	o.container.AddClass(FocusedClass)
}

// Built reports whether the container exists.
func (o *Overlay) Built() bool {
	return o.container != nil
}

// Attached reports whether the container currently sits under the slider.
func (o *Overlay) Attached() bool {
	return o.container != nil && o.slider != nil && o.container.Parent() == o.slider
}

// Container returns the container element, or nil before Build.
func (o *Overlay) Container() *dom.Element {
	return o.container
}

// Destroy stops polling and observing and removes the container from the document.
func (o *Overlay) Destroy() {
	if o.destroyed {
		return
	}
	o.destroyed = true

	o.poll.Cancel()
	o.poll = nil

	if o.observer != nil {
		o.observer.Disconnect()
		o.observer = nil
	}

	if o.container != nil {
		o.container.Remove()
		o.container = nil
	}
	o.slider = nil
}
