package overlay

import (
	"fmt"
	"math"
	"strconv"

	"github.com/segskip/segskip/segment"
)

// Bar is the horizontal mark painted for one segment.
type Bar struct {
	Segment segment.Segment
	// Offset is where the bar starts, in percent of the track width.
	Offset float64
	// Scale is the bar width as a fraction of the track width.
	Scale   float64
	Color   string
	Opacity string
}

// Transform returns the CSS transform placing the bar on the track.
func (b Bar) Transform() string {
	return fmt.Sprintf("translateX(%s%%) scaleX(%s)", formatFloat(b.Offset), formatFloat(b.Scale))
}

// Bars lays the segments out on a track representing duration seconds.
// It returns nil for durations that are not positive and finite.
func Bars(segments []segment.Segment, duration float64) []Bar {
	if !validDuration(duration) {
		return nil
	}

	bars := make([]Bar, 0, len(segments))
	for _, s := range segments {
		info := segment.Describe(s.Category)
		bars = append(bars, Bar{
			Segment: s,
			Offset:  s.Start / duration * 100,
			Scale:   (s.End - s.Start) / duration,
			Color:   info.Color,
			Opacity: info.Opacity,
		})
	}
	return bars
}

func validDuration(d float64) bool {
	return d > 0 && !math.IsInf(d, 0) && !math.IsNaN(d)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
