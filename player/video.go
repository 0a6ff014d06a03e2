package player

import (
	"github.com/segskip/segskip/dom"
	"github.com/segskip/segskip/host"
	"github.com/segskip/segskip/log"
	"github.com/segskip/segskip/loop"
	"github.com/segskip/segskip/overlay"
)

// Video mirrors mpv's playback state on the loop and turns property changes into host events.
// It is the host.Video and host.Page of an mpv session.
type Video struct {
	seeker Seeker
	exec   loop.Executor
	doc    *dom.Document

	// OnNavigate is called on the loop whenever mpv loads a different file.
	OnNavigate func(path string)

	path     string
	time     float64
	duration float64
	paused   bool

	next      int
	listeners map[host.Event]map[int]func()
}

// NewVideo creates a video driven by mpv events. Seeks go through seeker, off the loop.
func NewVideo(seeker Seeker, exec loop.Executor, doc *dom.Document) *Video {
	return &Video{
		seeker:    seeker,
		exec:      exec,
		doc:       doc,
		listeners: make(map[host.Event]map[int]func()),
	}
}

// Handle is an EventCallback. It hands the change over to the loop.
func (v *Video) Handle(name string, data any) {
	v.exec.Post(func() {
		v.apply(name, data)
	})
}

func (v *Video) apply(name string, data any) {
	switch name {
	case PropTimePos:
		if t, ok := data.(float64); ok {
			v.time = t
			v.emit(host.TimeUpdate)
		}
	case PropPause:
		paused, ok := data.(bool)
		if !ok || paused == v.paused {
			return
		}
		v.paused = paused
		if paused {
			v.emit(host.Pause)
		} else {
			v.emit(host.Play)
		}
	case PropDuration:
		d, _ := data.(float64)
		if d != v.duration {
			v.duration = d
			v.emit(host.DurationChange)
		}
	case PropPath:
		path, _ := data.(string)
		if path == v.path {
			return
		}
		v.path = path
		v.time = 0
		if v.OnNavigate != nil {
			v.OnNavigate(path)
		}
	}
}

func (v *Video) CurrentTime() float64 { return v.time }
func (v *Video) Duration() float64    { return v.duration }
func (v *Video) Paused() bool         { return v.paused }

// Path returns the file mpv has loaded.
func (v *Video) Path() string { return v.path }

// SetCurrentTime records the new position right away; mpv confirms it with a time-pos change.
func (v *Video) SetCurrentTime(seconds float64) {
	v.time = seconds
	seeker := v.seeker
	v.exec.Go(func() {
		if err := seeker.Seek(seconds); err != nil {
			log.Warnf("seek to %.2f failed: %v", seconds, err)
		}
	})
}

func (v *Video) AddListener(ev host.Event, fn func()) func() {
	if v.listeners[ev] == nil {
		v.listeners[ev] = make(map[int]func())
	}
	v.next++
	id := v.next
	v.listeners[ev][id] = fn
	return func() { delete(v.listeners[ev], id) }
}

func (v *Video) emit(ev host.Event) {
	// listeners may unbind themselves while running
	fns := make([]func(), 0, len(v.listeners[ev]))
	for _, fn := range v.listeners[ev] {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn()
	}
}

// FindVideo reports the video once mpv has a file loaded.
func (v *Video) FindVideo() (host.Video, bool) {
	if v.path == "" {
		return nil, false
	}
	return v, true
}

func (v *Video) Document() *dom.Document { return v.doc }

// Surface builds the element tree the overlay looks for: a slider holding the progress bar.
// mpv has no such tree, so the overlay lives here and reaches the screen through its Marker.
func Surface(exec loop.Executor, opts overlay.Options) *dom.Document {
	doc := dom.NewDocument(exec)

	slider := element(doc, opts.SliderSelector)
	bar := element(doc, opts.BarSelector)
	if opts.FocusAttribute != "" {
		bar.SetAttribute(opts.FocusAttribute, "false")
	}

	slider.AppendChild(bar)
	doc.Body().AppendChild(slider)
	return doc
}

// element creates an element matching a tag, #id or .class selector.
func element(doc *dom.Document, selector string) *dom.Element {
	switch {
	case len(selector) > 1 && selector[0] == '#':
		e := doc.CreateElement("div")
		e.SetAttribute("id", selector[1:])
		return e
	case len(selector) > 1 && selector[0] == '.':
		e := doc.CreateElement("div")
		e.AddClass(selector[1:])
		return e
	case selector == "":
		return doc.CreateElement("div")
	default:
		return doc.CreateElement(selector)
	}
}
