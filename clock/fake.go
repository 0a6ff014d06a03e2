package clock

import (
	"sort"
	"time"
)

// Fake is a logical clock. Timers only fire from Advance, on the caller's goroutine.
type Fake struct {
	now    time.Duration
	seq    int
	timers []*fakeTimer
}

// NewFake returns a logical clock at time zero.
func NewFake() *Fake {
	return &Fake{}
}

type fakeTimer struct {
	clock *Fake
	when  time.Duration
	seq   int
	fn    func()
}

// AfterFunc arms fn to fire once the clock advanced by d.
func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	f.seq++
	t := &fakeTimer{clock: f, when: f.now + d, seq: f.seq, fn: fn}
	f.timers = append(f.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	return t.clock.remove(t)
}

func (f *Fake) remove(t *fakeTimer) bool {
	for i, other := range f.timers {
		if other == t {
			f.timers = append(f.timers[:i], f.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Elapsed returns the logical time passed since the clock was created.
func (f *Fake) Elapsed() time.Duration {
	return f.now
}

// Pending returns the number of armed timers.
func (f *Fake) Pending() int {
	return len(f.timers)
}

// NextIn returns how far ahead the earliest armed timer is.
func (f *Fake) NextIn() (time.Duration, bool) {
	if len(f.timers) == 0 {
		return 0, false
	}
	f.sortTimers()
	return f.timers[0].when - f.now, true
}

// Advance moves the clock forward by d, firing due timers in deadline order.
// Timers armed by callbacks fire within the same call if they fall due before the target.
func (f *Fake) Advance(d time.Duration) {
	target := f.now + d
	for {
		if len(f.timers) == 0 {
			break
		}
		f.sortTimers()
		next := f.timers[0]
		if next.when > target {
			break
		}
		f.timers = f.timers[1:]
		f.now = next.when
		next.fn()
	}
	f.now = target
}

func (f *Fake) sortTimers() {
	sort.SliceStable(f.timers, func(i, j int) bool {
		if f.timers[i].when == f.timers[j].when {
			return f.timers[i].seq < f.timers[j].seq
		}
		return f.timers[i].when < f.timers[j].when
	})
}
