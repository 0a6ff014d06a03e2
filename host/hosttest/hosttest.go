// Package hosttest provides in-memory host implementations for tests.
package hosttest

import (
	"github.com/segskip/segskip/dom"
	"github.com/segskip/segskip/host"
)

// Video is a scriptable host.Video. Seeking emits a timeupdate event like a media element does.
type Video struct {
	Time     float64
	Length   float64
	IsPaused bool
	// Seeks records every SetCurrentTime call.
	Seeks []float64

	next      int
	listeners map[host.Event]map[int]func()
}

// NewVideo returns a playing video of the given length.
func NewVideo(length float64) *Video {
	return &Video{Length: length, listeners: make(map[host.Event]map[int]func())}
}

func (v *Video) CurrentTime() float64 { return v.Time }
func (v *Video) Duration() float64    { return v.Length }
func (v *Video) Paused() bool         { return v.IsPaused }

func (v *Video) SetCurrentTime(seconds float64) {
	v.Time = seconds
	v.Seeks = append(v.Seeks, seconds)
	v.Emit(host.TimeUpdate)
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

// Listeners returns how many listeners are registered for ev.
func (v *Video) Listeners(ev host.Event) int {
	return len(v.listeners[ev])
}

// Emit calls the listeners of ev.
func (v *Video) Emit(ev host.Event) {
	for _, fn := range v.listeners[ev] {
		fn()
	}
}

// PlayAt resumes playback at the given position and emits play.
func (v *Video) PlayAt(seconds float64) {
	v.Time = seconds
	v.IsPaused = false
	v.Emit(host.Play)
}

// PauseAt pauses at the given position and emits pause.
func (v *Video) PauseAt(seconds float64) {
	v.Time = seconds
	v.IsPaused = true
	v.Emit(host.Pause)
}

// Page is a host.Page whose video can be swapped in and out.
type Page struct {
	Doc   *dom.Document
	Video *Video
	// Lookups counts FindVideo calls.
	Lookups int
}

func (p *Page) FindVideo() (host.Video, bool) {
	p.Lookups++
	if p.Video == nil {
		return nil, false
	}
	return p.Video, true
}

func (p *Page) Document() *dom.Document { return p.Doc }
