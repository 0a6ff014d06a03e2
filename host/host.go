// Package host describes the player surface the controller drives.
package host

import "github.com/segskip/segskip/dom"

// Event is a playback event emitted by a Video.
type Event string

const (
	Play           Event = "play"
	Pause          Event = "pause"
	TimeUpdate     Event = "timeupdate"
	DurationChange Event = "durationchange"
)

// Video is the playing media element.
type Video interface {
	// CurrentTime returns the playback position in seconds.
	CurrentTime() float64
	// SetCurrentTime seeks to the given position in seconds.
	SetCurrentTime(seconds float64)
	// Duration returns the media length in seconds, or 0 (or NaN) while unknown.
	Duration() float64
	Paused() bool
	// AddListener registers fn for ev and returns a function that unregisters it.
	AddListener(ev Event, fn func()) (remove func())
}

// Page is the host application surface.
type Page interface {
	// FindVideo returns the video element if it exists yet.
	FindVideo() (Video, bool)
	// Document returns the host element tree.
	Document() *dom.Document
}
