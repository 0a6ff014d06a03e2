// Package session owns the per-video controller and swaps it out whenever the playing video changes.
package session

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/segskip/segskip/clock"
	"github.com/segskip/segskip/config"
	"github.com/segskip/segskip/constant"
	"github.com/segskip/segskip/host"
	"github.com/segskip/segskip/key"
	"github.com/segskip/segskip/log"
	"github.com/segskip/segskip/loop"
	"github.com/segskip/segskip/notify"
	"github.com/segskip/segskip/overlay"
	"github.com/segskip/segskip/segment"
	"github.com/segskip/segskip/skip"
	"github.com/segskip/segskip/util"
	"github.com/sirupsen/logrus"
)

// Locator resolves the segments of a video. An empty result means none are available.
type Locator interface {
	Locate(ctx context.Context, videoID string) []segment.Segment
}

// Deps are the collaborators shared by every controller a Manager creates.
type Deps struct {
	Page     host.Page
	Locator  Locator
	Clock    clock.Clock
	Exec     loop.Executor
	Config   config.Reader
	Notifier notify.Notifier
	Overlay  overlay.Options

	// VideoPoll is how often a controller looks for the video element until it shows up.
	VideoPoll time.Duration
	// VideoPollAttempts bounds that lookup. 0 keeps looking until destroyed.
	VideoPollAttempts int
}

// Controller handles a single video: it fetches its segments, paints them and skips them.
// All methods must run on the loop goroutine.
type Controller struct {
	deps    Deps
	videoID string
	logger  *logrus.Entry
	active  bool

	store     *segment.Store
	video     host.Video
	overlay   *overlay.Overlay
	scheduler *skip.Scheduler
	finder    *clock.Task
	unbind    []func()
}

// NewController returns an active controller for videoID. Nothing happens until Init.
func NewController(videoID string, deps Deps) *Controller {
	if deps.VideoPoll <= 0 {
		deps.VideoPoll = 100 * time.Millisecond
	}

	return &Controller{
		deps:    deps,
		videoID: videoID,
		logger:  log.For(videoID),
		active:  true,
	}
}

// Init starts looking up segments. The lookup runs off the loop and reports back onto it.
func (c *Controller) Init() {
	if !c.active {
		return
	}

	locator, videoID := c.deps.Locator, c.videoID
	c.deps.Exec.Go(func() {
		segments := locator.Locate(context.Background(), videoID)
		c.deps.Exec.Post(func() {
			c.loaded(segments)
		})
	})
}

func (c *Controller) loaded(segments []segment.Segment) {
	if !c.active {
		c.logger.Debugf("discarding %s for a destroyed session", util.Quantify(len(segments), "segment", "segments"))
		return
	}

	if len(segments) == 0 {
		c.logger.Info("no segments found")
		return
	}

	c.logger.Infof("got %s", util.Quantify(len(segments), "segment", "segments"))
	notify.Send(c.deps.Notifier, constant.NotificationTitle, util.Quantify(len(segments), "segment", "segments")+" found")

	c.store = segment.NewStore(segments, PolicyFrom(c.deps.Config))
	c.scheduler = skip.New(c.store, c.deps.Clock, c.deps.Notifier, c.Active).WithLogger(c.logger)
	c.overlay = overlay.New(c.deps.Page.Document(), c.deps.Clock, segments, c.deps.Overlay).WithLogger(c.logger)

	c.finder = clock.Retry(c.deps.Clock, c.deps.VideoPoll, c.deps.VideoPollAttempts, c.findVideo)
}

func (c *Controller) findVideo(attempt int) bool {
	if !c.active {
		return true
	}

	video, ok := c.deps.Page.FindVideo()
	if !ok {
		if attempt == 1 {
			c.logger.Info("no video yet")
		}
		return false
	}

	c.logger.Info("video found, binding")
	c.attach(video)
	return true
}

func (c *Controller) attach(video host.Video) {
	c.video = video
	c.scheduler.Attach(video)

	for _, ev := range []host.Event{host.Play, host.Pause, host.TimeUpdate} {
		c.unbind = append(c.unbind, video.AddListener(ev, c.scheduler.Schedule))
	}
	c.unbind = append(c.unbind, video.AddListener(host.DurationChange, c.buildOverlay))

	c.buildOverlay()
	c.scheduler.Schedule()
}

func (c *Controller) buildOverlay() {
	if !c.active || c.video == nil {
		return
	}

	if c.overlay.Build(c.video.Duration()) {
		c.logger.Debugf("overlay built for %.1fs", c.video.Duration())
	}
}

// Destroy tears the controller down. Callbacks still in flight find it inactive and do nothing.
func (c *Controller) Destroy() {
	if !c.active {
		return
	}
	c.active = false
	c.logger.Info("destroying")

	c.finder.Cancel()
	c.finder = nil

	if c.scheduler != nil {
		c.scheduler.Cancel()
	}

	if c.overlay != nil {
		c.overlay.Destroy()
	}

	for _, remove := range c.unbind {
		remove()
	}
	c.unbind = nil
	c.video = nil
}

// VideoID returns the video this controller was created for.
func (c *Controller) VideoID() string {
	return c.videoID
}

// Active reports whether the controller has not been destroyed yet.
func (c *Controller) Active() bool {
	return c.active
}

// Store returns the loaded segments, or nil while loading and for videos without any.
func (c *Controller) Store() *segment.Store {
	return c.store
}

// Overlay returns the overlay, or nil while no segments are loaded.
func (c *Controller) Overlay() *overlay.Overlay {
	return c.overlay
}

// Scheduler returns the skip scheduler, or nil while no segments are loaded.
func (c *Controller) Scheduler() *skip.Scheduler {
	return c.scheduler
}

// PolicyFrom reads which categories to act on. A category whose toggle cannot be read is not skipped.
func PolicyFrom(r config.Reader) segment.Policy {
	eligible := lo.Filter(segment.Known(), func(c segment.Category, _ int) bool {
		return r.Bool(key.SponsorBlockCategory(string(c))).OrElse(false)
	})

	manual := lo.Map(r.Strings(key.SponsorBlockManualSkips).OrElse(nil), func(c string, _ int) segment.Category {
		return segment.Category(c)
	})

	return segment.NewPolicy(eligible, manual)
}
