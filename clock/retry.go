package clock

import "time"

// Task is a cancellable bounded retry.
type Task struct {
	clock     Clock
	interval  time.Duration
	max       int
	attempts  int
	fn        func(attempt int) bool
	timer     Timer
	done      bool
	exhausted bool
}

// Retry calls fn immediately and then every interval until it returns true,
// the task is cancelled, or max attempts were made. A max of 0 retries forever.
func Retry(clk Clock, interval time.Duration, max int, fn func(attempt int) bool) *Task {
	t := &Task{clock: clk, interval: interval, max: max, fn: fn}
	t.attempt()
	return t
}

func (t *Task) attempt() {
	t.timer = nil
	if t.done {
		return
	}

	t.attempts++
	if t.fn(t.attempts) {
		t.done = true
		return
	}

	// fn may have cancelled the task
	if t.done {
		return
	}

	if t.max > 0 && t.attempts >= t.max {
		t.done = true
		t.exhausted = true
		return
	}

	t.timer = t.clock.AfterFunc(t.interval, t.attempt)
}

// Cancel stops further attempts.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.done = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Done reports whether the task will make no further attempts.
func (t *Task) Done() bool {
	return t.done
}

// Exhausted reports whether the task gave up after max attempts.
func (t *Task) Exhausted() bool {
	return t.exhausted
}

// Attempts returns how many times fn was called.
func (t *Task) Attempts() int {
	return t.attempts
}
