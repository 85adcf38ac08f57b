package vtest

import (
	"testing"
	"time"
)

func TestClockAdvanceFiresDueCallbacks(t *testing.T) {
	c := NewClock()

	fired := false
	c.AfterFunc(100*time.Millisecond, func() { fired = true })

	c.Advance(99 * time.Millisecond)
	if fired {
		t.Fatal("callback fired before its deadline")
	}

	c.Advance(1 * time.Millisecond)
	if !fired {
		t.Error("callback did not fire at its deadline")
	}
}

func TestClockFiresInDeadlineOrder(t *testing.T) {
	c := NewClock()

	var order []string
	c.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	c.AfterFunc(20*time.Millisecond, func() { order = append(order, "b") })

	c.Advance(time.Second)

	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Errorf("expected [a b c], got %v", order)
	}
}

func TestClockStopCancels(t *testing.T) {
	c := NewClock()

	fired := false
	h := c.AfterFunc(10*time.Millisecond, func() { fired = true })

	if !h.Stop() {
		t.Error("Stop should report pending")
	}
	if h.Stop() {
		t.Error("second Stop should report not pending")
	}

	c.Advance(time.Second)
	if fired {
		t.Error("stopped callback fired")
	}
	if c.Pending() != 0 {
		t.Errorf("expected no pending timers, got %d", c.Pending())
	}
}

func TestClockCallbackMayReschedule(t *testing.T) {
	c := NewClock()

	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		if ticks < 3 {
			c.AfterFunc(10*time.Millisecond, tick)
		}
	}
	c.AfterFunc(10*time.Millisecond, tick)

	c.Advance(100 * time.Millisecond)

	if ticks != 3 {
		t.Errorf("expected 3 chained ticks, got %d", ticks)
	}
}

func TestClockNowAdvances(t *testing.T) {
	c := NewClock()
	start := c.Now()

	c.Advance(250 * time.Millisecond)

	if got := c.Now().Sub(start); got != 250*time.Millisecond {
		t.Errorf("expected 250ms elapsed, got %v", got)
	}
}
