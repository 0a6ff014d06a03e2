package session

import (
	"github.com/segskip/segskip/config"
	"github.com/segskip/segskip/key"
	"github.com/segskip/segskip/log"
)

// Manager keeps at most one controller alive, the one for the video currently playing.
// It must only be used from the loop goroutine.
type Manager struct {
	deps    Deps
	current *Controller
}

// NewManager returns a manager without a controller.
func NewManager(deps Deps) *Manager {
	return &Manager{deps: deps}
}

// Navigate switches to videoID. The previous controller is destroyed before the next one is created.
// Empty ids and the id already playing are ignored.
func (m *Manager) Navigate(videoID string) *Controller {
	if videoID == "" {
		return m.current
	}

	if m.current != nil && m.current.VideoID() == videoID {
		return m.current
	}

	if m.current != nil {
		m.current.Destroy()
		m.current = nil
	}

	if !enabled(m.deps.Config) {
		log.Infof("segment skipping disabled, not loading %s", videoID)
		return nil
	}

	m.current = NewController(videoID, m.deps)
	m.current.Init()
	return m.current
}

// HandleLocation navigates to the video a location such as "#/watch?v=ID" points at.
func (m *Manager) HandleLocation(location string) *Controller {
	return m.Navigate(ParseVideoID(location))
}

// Current returns the live controller, if any.
func (m *Manager) Current() *Controller {
	return m.current
}

// Close destroys the live controller.
func (m *Manager) Close() {
	if m.current == nil {
		return
	}
	m.current.Destroy()
	m.current = nil
}

func enabled(r config.Reader) bool {
	if r == nil {
		return false
	}

	result := r.Bool(key.SponsorBlockEnable)
	if err := result.Error(); err != nil {
		log.Warnf("reading %s: %v", key.SponsorBlockEnable, err)
		return false
	}
	return result.MustGet()
}
