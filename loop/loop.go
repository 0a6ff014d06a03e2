// Package loop runs controller work on a single goroutine.
//
// Sessions, documents and schedulers are not safe for concurrent use; every
// timer firing, player event and probe completion is posted onto one Loop
// so they observe each other's state changes in order.
package loop

import (
	"context"
	"errors"
	"sync"
)

// ErrStopped is returned by Run when the loop was stopped explicitly.
var ErrStopped = errors.New("loop stopped")

// Executor schedules work relative to the controller goroutine.
type Executor interface {
	// Post queues fn to run on the controller goroutine.
	Post(fn func())
	// Go runs blocking fn away from the controller goroutine.
	Go(fn func())
}

// Loop is a serial executor. Its queue grows as needed, so Post never blocks,
// not even when called from a callback running on the loop.
type Loop struct {
	mu      sync.Mutex
	pending []func()
	wake    chan struct{}
	stop    chan struct{}
}

// New creates a loop with room for size pending callbacks before the queue grows.
func New(size int) *Loop {
	return &Loop{
		pending: make([]func(), 0, size),
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
}

// Post queues fn. Callbacks posted after the loop stopped are dropped.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.stop:
		return
	default:
	}

	l.mu.Lock()
	l.pending = append(l.pending, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Go runs fn on a new goroutine.
func (l *Loop) Go(fn func()) {
	go fn()
}

// Stop makes Run return after the callback in progress.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	select {
	case <-l.stop:
	default:
		close(l.stop)
		l.pending = nil
	}
}

// Run executes queued callbacks until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if fn, ok := l.next(); ok {
			fn()
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stop:
			return ErrStopped
		case <-l.wake:
		}
	}
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	select {
	case <-l.stop:
		return nil, false
	default:
	}

	if len(l.pending) == 0 {
		return nil, false
	}
	fn := l.pending[0]
	l.pending[0] = nil
	l.pending = l.pending[1:]
	return fn, true
}

// Inline runs everything immediately on the calling goroutine.
type Inline struct{}

// Post calls fn.
func (Inline) Post(fn func()) { fn() }

// Go calls fn.
func (Inline) Go(fn func()) { fn() }
