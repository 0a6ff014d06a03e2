// Package player hosts the controller inside mpv.
// mpv is driven over its JSON-IPC socket: property changes become playback
// events on the loop, skips become absolute seeks, segments become chapters
// and notifications become OSD messages.
package player

// Seeker moves playback to an absolute position in seconds.
type Seeker interface {
	Seek(seconds float64) error
}

// Observed mpv properties, in the order they are registered.
const (
	PropTimePos  = "time-pos"
	PropPause    = "pause"
	PropDuration = "duration"
	PropPath     = "path"
)

var observed = []string{PropTimePos, PropPause, PropDuration, PropPath}
