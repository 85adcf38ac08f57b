package notify

import (
	"sync"
	"time"
)

// TimerControl selects how an interruption (hover, keyboard) affects the
// countdown.
type TimerControl int

const (
	// PauseResume freezes the countdown on interruption and continues from
	// the remaining time on resume. This is the default.
	PauseResume TimerControl = iota

	// ResetRestart restores the full duration on interruption, so resume
	// restarts the countdown from scratch.
	ResetRestart
)

// String returns the wire name for the control mode.
func (c TimerControl) String() string {
	switch c {
	case PauseResume:
		return "pause-resume"
	case ResetRestart:
		return "reset-restart"
	default:
		return "unknown"
	}
}

// ParseTimerControl parses a wire name into a TimerControl.
func ParseTimerControl(s string) (TimerControl, error) {
	switch s {
	case "pause-resume":
		return PauseResume, nil
	case "reset-restart":
		return ResetRestart, nil
	default:
		return PauseResume, ErrUnknownTimerControl
	}
}

// timerState is the countdown state machine:
// idle -> running -> {paused, expired}, paused -> running.
type timerState int

const (
	timerIdle timerState = iota
	timerRunning
	timerPaused
	timerExpired
)

// CountdownTimer counts down from a duration and fires an expiry callback
// exactly once when the remaining time reaches zero. A non-positive
// duration disables the countdown entirely: Start becomes a no-op and the
// callback never fires.
//
// All methods are safe to call in any state. Calling PauseOrReset,
// ResumeOrRestart, or Cleanup before Start (or after Cleanup) is a no-op.
type CountdownTimer struct {
	mu sync.Mutex

	clock    Clock
	control  TimerControl
	onExpire func()

	duration  time.Duration
	remaining time.Duration
	startedAt time.Time
	handle    TimerHandle
	state     timerState
}

// NewCountdownTimer creates a countdown in the idle state. onExpire may be
// nil.
func NewCountdownTimer(clock Clock, control TimerControl, duration time.Duration, onExpire func()) *CountdownTimer {
	return &CountdownTimer{
		clock:    clock,
		control:  control,
		onExpire: onExpire,
		duration: duration,
	}
}

// Start initializes the countdown. With a non-positive duration it never
// schedules anything. Starting an already started timer re-initializes it
// from the full duration.
func (t *CountdownTimer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	if t.duration <= 0 {
		t.state = timerIdle
		t.remaining = 0
		return
	}

	t.remaining = t.duration
	t.scheduleLocked()
}

// PauseOrReset freezes a running countdown. Under ResetRestart the
// remaining time snaps back to the full duration, so the next resume
// restarts from scratch; under PauseResume it keeps its current value.
// No-op unless running.
func (t *CountdownTimer) PauseOrReset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != timerRunning {
		return
	}

	if t.control == ResetRestart {
		t.remaining = t.duration
	} else {
		t.remaining = t.liveRemainingLocked()
	}
	t.stopLocked()
	t.state = timerPaused
}

// ResumeOrRestart continues a paused countdown from its remaining time.
// No-op unless paused with a valid duration.
func (t *CountdownTimer) ResumeOrRestart() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != timerPaused || t.duration <= 0 {
		return
	}
	t.scheduleLocked()
}

// SetDuration changes the countdown duration. The remaining time is
// resynchronized to the new value immediately; a running countdown is
// rescheduled, and a non-positive value stops it without expiring.
func (t *CountdownTimer) SetDuration(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.duration = d
	if d <= 0 {
		t.stopLocked()
		t.state = timerIdle
		t.remaining = 0
		return
	}

	t.remaining = d
	if t.state == timerRunning {
		t.stopLocked()
		t.scheduleLocked()
	}
}

// Cleanup unconditionally stops any pending countdown and returns the
// timer to idle. Idempotent; safe before Start and after expiry. After
// Cleanup no callback can fire.
func (t *CountdownTimer) Cleanup() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.state = timerIdle
	t.remaining = 0
}

// Remaining returns the time left, consistent with elapsed real time while
// running. Always within [0, duration].
func (t *CountdownTimer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == timerRunning {
		return t.liveRemainingLocked()
	}
	return t.remaining
}

// Duration returns the configured duration.
func (t *CountdownTimer) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.duration
}

// Control returns the configured control mode.
func (t *CountdownTimer) Control() TimerControl {
	return t.control
}

// Running reports whether the countdown is actively ticking.
func (t *CountdownTimer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == timerRunning
}

// Expired reports whether the countdown reached zero.
func (t *CountdownTimer) Expired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == timerExpired
}

// scheduleLocked arms the expiry callback for the current remaining time.
func (t *CountdownTimer) scheduleLocked() {
	t.startedAt = t.clock.Now()
	t.handle = t.clock.AfterFunc(t.remaining, t.expire)
	t.state = timerRunning
}

// stopLocked cancels the pending callback, if any.
func (t *CountdownTimer) stopLocked() {
	if t.handle != nil {
		t.handle.Stop()
		t.handle = nil
	}
}

// expire transitions to the terminal expired state. The state check makes
// a late-firing callback lose against a more recent pause or cleanup.
func (t *CountdownTimer) expire() {
	t.mu.Lock()
	if t.state != timerRunning {
		t.mu.Unlock()
		return
	}
	t.remaining = 0
	t.handle = nil
	t.state = timerExpired
	cb := t.onExpire
	t.mu.Unlock()

	if cb != nil {
		cb()
	}
}

func (t *CountdownTimer) liveRemainingLocked() time.Duration {
	left := t.remaining - t.clock.Now().Sub(t.startedAt)
	if left < 0 {
		return 0
	}
	return left
}
