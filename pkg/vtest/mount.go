package vtest

import (
	"testing"

	"github.com/vango-dev/notify/pkg/notify"
)

// Mount builds and mounts a notification driven by a fresh fake Clock,
// returning both. The clock option is prepended, so callers can still
// override any option, the clock included.
func Mount(t *testing.T, opts ...notify.Option) (*notify.Notification, *Clock) {
	t.Helper()

	clock := NewClock()
	n := notify.New(append([]notify.Option{notify.WithClock(clock)}, opts...)...)
	n.Mount()
	return n, clock
}
