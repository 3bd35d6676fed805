// Package debounce delays a reaction to rapid input until the input pauses.
package debounce

import (
	"sync"
	"time"
)

// Timer is the part of *time.Timer the debouncer needs.
type Timer interface {
	Stop() bool
}

// Clock schedules functions; tests swap in a manual implementation.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// RealClock is backed by the time package.
var RealClock Clock = realClock{}

// Debouncer runs at most one pending task. Arming it again before the window elapses
// replaces the pending task; a replaced or canceled task never runs.
type Debouncer struct {
	mu     sync.Mutex
	clock  Clock
	delay  time.Duration
	timer  Timer
	gen    uint64
	closed bool
}

// New returns a debouncer with the given window. A nil clock means RealClock.
func New(delay time.Duration, clock Clock) *Debouncer {
	if clock == nil {
		clock = RealClock
	}
	if delay < 0 {
		delay = 0
	}
	return &Debouncer{clock: clock, delay: delay}
}

// Delay returns the window.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Trigger arms fn, canceling whatever was pending.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.stopLocked()
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// Stop can lose the race with a timer that already fired; the generation check
		// catches that case.
		if d.closed || gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops the pending task, if any. It reports whether one was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopLocked()
}

// Pending reports whether a task is armed.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Close cancels the pending task and ignores later triggers.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.closed = true
}

func (d *Debouncer) stopLocked() bool {
	d.gen++
	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	return true
}
