// Package clock provides timers that fire on the controller loop and a logical clock for tests.
package clock

import (
	"sync/atomic"
	"time"

	"github.com/segskip/segskip/loop"
)

// Timer is a pending callback.
type Timer interface {
	// Stop cancels the timer. It returns false if the callback already ran.
	Stop() bool
}

// Clock arms timers.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Real arms wall-clock timers whose callbacks are posted onto Exec.
type Real struct {
	Exec loop.Executor
}

// AfterFunc arms fn to run on the executor after d.
// Once Stop returns, fn never runs, even if its firing was already queued.
func (r Real) AfterFunc(d time.Duration, fn func()) Timer {
	t := &realTimer{}
	t.timer = time.AfterFunc(d, func() {
		r.Exec.Post(func() {
			if t.stopped.Load() || !t.fired.CompareAndSwap(false, true) {
				return
			}
			fn()
		})
	})
	return t
}

type realTimer struct {
	timer   *time.Timer
	stopped atomic.Bool
	fired   atomic.Bool
}

func (t *realTimer) Stop() bool {
	t.timer.Stop()
	if t.fired.Load() {
		return false
	}
	return !t.stopped.Swap(true)
}
