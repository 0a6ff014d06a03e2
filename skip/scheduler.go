// Package skip arms a single timer for the next skippable segment and jumps past it when due.
//
// Any playback event cancels the armed timer and derives a new one from the
// current position, so seeking needs no special handling.
package skip

import (
	"math"
	"time"

	"github.com/segskip/segskip/clock"
	"github.com/segskip/segskip/constant"
	"github.com/segskip/segskip/host"
	"github.com/segskip/segskip/log"
	"github.com/segskip/segskip/notify"
	"github.com/segskip/segskip/segment"
	"github.com/sirupsen/logrus"
)

const (
	// GraceWindow is how far behind the playback position a segment boundary may lie and still count as upcoming.
	GraceWindow = 0.3
	// SkipOffset is added to a segment's end when jumping past it.
	SkipOffset = 0.1
)

// Next selects the upcoming segment for position now: the earliest start among
// segments that both start and end after now-GraceWindow. Ties go to the first one listed.
func Next(segments []segment.Segment, now float64) (segment.Segment, bool) {
	threshold := now - GraceWindow

	var (
		next  segment.Segment
		found bool
	)
	for _, s := range segments {
		if s.Start <= threshold || s.End <= threshold {
			continue
		}
		if !found || s.Start < next.Start {
			next, found = s, true
		}
	}
	return next, found
}

// Scheduler is the skip state machine of one session. It is either idle or has one timer armed.
type Scheduler struct {
	store    *segment.Store
	clock    clock.Clock
	notifier notify.Notifier
	active   func() bool
	logger   *logrus.Entry

	video host.Video
	timer clock.Timer
	armed segment.Segment
}

// New creates an idle scheduler. active is consulted before every action; once it reports false the scheduler does nothing.
func New(store *segment.Store, clk clock.Clock, notifier notify.Notifier, active func() bool) *Scheduler {
	return &Scheduler{
		store:    store,
		clock:    clk,
		notifier: notifier,
		active:   active,
		logger:   log.For(""),
	}
}

// WithLogger tags the scheduler's log lines.
func (s *Scheduler) WithLogger(l *logrus.Entry) *Scheduler {
	s.logger = l
	return s
}

// Attach sets the video whose position drives the scheduler.
func (s *Scheduler) Attach(video host.Video) {
	s.video = video
}

// Schedule re-derives the armed timer from the current playback position.
func (s *Scheduler) Schedule() {
	s.Cancel()

	if s.active != nil && !s.active() {
		return
	}
	if s.video == nil || s.video.Paused() {
		return
	}

	now := s.video.CurrentTime()
	next, ok := Next(s.store.Segments(), now)
	if !ok {
		return
	}

	delay := time.Duration(math.Max(0, next.Start-now) * float64(time.Second))
	s.armed = next
	s.timer = s.clock.AfterFunc(delay, func() {
		s.timer = nil
		s.fire(next)
	})
}

func (s *Scheduler) fire(seg segment.Segment) {
	if s.active != nil && !s.active() {
		return
	}

	// playback may have paused while waiting; the next play event re-arms
	if s.video == nil || s.video.Paused() {
		return
	}

	policy := s.store.Policy()
	if !policy.Eligible(seg.Category) {
		return
	}

	// manual categories are only marked on the overlay
	if policy.Manual(seg.Category) {
		return
	}

	info := segment.Describe(seg.Category)
	s.logger.Infof("skipping %s", seg)
	notify.Send(s.notifier, constant.NotificationTitle, "Skipping "+info.Name)

	s.video.SetCurrentTime(seg.End + SkipOffset)
	s.Schedule()
}

// Cancel disarms the pending timer, if any.
func (s *Scheduler) Cancel() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Armed returns the segment the pending timer fires for.
func (s *Scheduler) Armed() (segment.Segment, bool) {
	if s.timer == nil {
		return segment.Segment{}, false
	}
	return s.armed, true
}
