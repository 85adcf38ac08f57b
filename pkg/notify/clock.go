package notify

import "time"

// TimerHandle is a cancellable pending callback, the subset of *time.Timer
// the engine needs.
type TimerHandle interface {
	// Stop cancels the pending callback. It reports whether the callback
	// was still pending; after Stop returns, the callback either already
	// ran or never will.
	Stop() bool
}

// Clock abstracts time so countdown behavior is testable with virtual time.
// The fake implementation lives in pkg/vtest.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc schedules fn to run after d and returns a handle that can
	// cancel it.
	AfterFunc(d time.Duration, fn func()) TimerHandle
}

// systemClock is the production Clock backed by the time package.
type systemClock struct{}

// SystemClock returns the Clock backed by real wall time.
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, fn func()) TimerHandle {
	return time.AfterFunc(d, fn)
}
