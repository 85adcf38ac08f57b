package vtest

import (
	"sync"
	"time"

	"github.com/vango-dev/notify/pkg/notify"
)

// Clock is a virtual-time notify.Clock. Time only moves when Advance is
// called; due callbacks fire synchronously inside Advance in deadline
// order, ties broken by scheduling order.
type Clock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
	seq    uint64
}

// NewClock creates a clock at a fixed, arbitrary epoch.
func NewClock() *Clock {
	return &Clock{
		now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Now returns the current virtual time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc schedules fn at now+d. A non-positive d fires on the next
// Advance, not inline, mimicking the real timer's asynchrony.
func (c *Clock) AfterFunc(d time.Duration, fn func()) notify.TimerHandle {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	t := &fakeTimer{
		clock:    c,
		deadline: c.now.Add(d),
		seq:      c.seq,
		fn:       fn,
	}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves virtual time forward by d, firing every callback whose
// deadline falls within the window. Callbacks run with the clock unlocked
// and may schedule or stop timers themselves.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)

	for {
		next := c.earliestLocked(target)
		if next == nil {
			break
		}
		if next.deadline.After(c.now) {
			c.now = next.deadline
		}
		c.removeLocked(next)

		c.mu.Unlock()
		next.fn()
		c.mu.Lock()
	}

	c.now = target
	c.mu.Unlock()
}

// Pending returns the number of scheduled callbacks, for leak assertions.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// earliestLocked returns the due timer with the smallest (deadline, seq),
// or nil if none is due by target.
func (c *Clock) earliestLocked(target time.Time) *fakeTimer {
	var best *fakeTimer
	for _, t := range c.timers {
		if t.deadline.After(target) {
			continue
		}
		if best == nil || t.deadline.Before(best.deadline) ||
			(t.deadline.Equal(best.deadline) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (c *Clock) removeLocked(t *fakeTimer) {
	for i, candidate := range c.timers {
		if candidate == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

// fakeTimer is one scheduled callback.
type fakeTimer struct {
	clock    *Clock
	deadline time.Time
	seq      uint64
	fn       func()
}

// Stop cancels the callback. Reports whether it was still pending.
func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	for i, candidate := range t.clock.timers {
		if candidate == t {
			t.clock.timers = append(t.clock.timers[:i], t.clock.timers[i+1:]...)
			return true
		}
	}
	return false
}
