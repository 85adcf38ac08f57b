package notify_test

import (
	"testing"
	"time"

	"github.com/vango-dev/notify/pkg/notify"
	"github.com/vango-dev/notify/pkg/vtest"
)

func TestNotificationAutoDismissesAfterDuration(t *testing.T) {
	closed := false

	n, clock := vtest.Mount(t,
		notify.WithDuration(100*time.Millisecond),
		notify.WithOnClose(func() { closed = true }),
	)

	if !n.Visible() {
		t.Fatal("notification should be visible after mount")
	}

	clock.Advance(100 * time.Millisecond)

	if n.Visible() {
		t.Error("notification should close when the countdown expires")
	}
	if !closed {
		t.Error("onClose should fire on expiry")
	}
}

func TestNotificationNonPositiveDurationNeverAutoCloses(t *testing.T) {
	for _, d := range []time.Duration{0, -3 * time.Second} {
		n, clock := vtest.Mount(t, notify.WithDuration(d))

		clock.Advance(365 * 24 * time.Hour)

		if !n.Visible() {
			t.Errorf("duration %v: notification must never auto-close", d)
		}
		if n.ProgressVisible() {
			t.Errorf("duration %v: progress bar must be hidden", d)
		}
	}
}

func TestNotificationResetRestartHoverScenario(t *testing.T) {
	// Mount with duration=100 under reset-restart, elapse 50ms, hover in
	// and out, elapse 50ms: still open, because the countdown restarted
	// from 100 at mouse-leave. A further 100ms closes it.
	n, clock := vtest.Mount(t,
		notify.WithDuration(100*time.Millisecond),
		notify.WithTimerControls(notify.ResetRestart),
	)

	clock.Advance(50 * time.Millisecond)
	n.HandleMouseEnter()
	n.HandleMouseLeave()
	clock.Advance(50 * time.Millisecond)

	if !n.Visible() {
		t.Fatal("expected still open: countdown restarted at mouse-leave")
	}

	clock.Advance(100 * time.Millisecond)
	if n.Visible() {
		t.Error("expected closed after the restarted countdown elapsed")
	}
}

func TestNotificationPauseResumeHoverScenario(t *testing.T) {
	// Same sequence under pause-resume closes at the second 50ms advance:
	// the countdown resumed from the 50ms mark.
	n, clock := vtest.Mount(t,
		notify.WithDuration(100*time.Millisecond),
		notify.WithTimerControls(notify.PauseResume),
	)

	clock.Advance(50 * time.Millisecond)
	n.HandleMouseEnter()
	n.HandleMouseLeave()
	clock.Advance(50 * time.Millisecond)

	if n.Visible() {
		t.Error("expected closed: resumed countdown reached the full duration")
	}
}

func TestNotificationHoverWhileOpenKeepsItOpen(t *testing.T) {
	n, clock := vtest.Mount(t, notify.WithDuration(100*time.Millisecond))

	clock.Advance(50 * time.Millisecond)
	n.HandleMouseEnter()

	clock.Advance(24 * time.Hour)
	if !n.Visible() {
		t.Error("hovered notification must not auto-close")
	}

	n.HandleMouseLeave()
	clock.Advance(50 * time.Millisecond)
	if n.Visible() {
		t.Error("expected closed after remaining time elapsed post-hover")
	}
}

func TestNotificationKeyboardControls(t *testing.T) {
	keys := vtest.NewKeys()
	n, clock := vtest.Mount(t,
		notify.WithDuration(100*time.Millisecond),
		notify.WithKeySource(keys),
	)

	// Delete pauses, like mouse-enter.
	clock.Advance(30 * time.Millisecond)
	keys.Press("Delete")
	clock.Advance(24 * time.Hour)
	if !n.Visible() {
		t.Fatal("Delete should pause the countdown")
	}

	// Any other key resumes, like mouse-leave.
	keys.Press("a")
	clock.Advance(70 * time.Millisecond)
	if n.Visible() {
		t.Error("expected closed after resumed countdown elapsed")
	}
}

func TestNotificationEscapeClosesImmediately(t *testing.T) {
	keys := vtest.NewKeys()
	n, _ := vtest.Mount(t,
		notify.WithDuration(time.Hour),
		notify.WithKeySource(keys),
	)

	keys.Press("Escape")

	if n.Visible() {
		t.Error("Escape should close regardless of remaining duration")
	}
}

func TestNotificationBackspacePausesLikeDelete(t *testing.T) {
	keys := vtest.NewKeys()
	n, clock := vtest.Mount(t,
		notify.WithDuration(100*time.Millisecond),
		notify.WithKeySource(keys),
	)

	keys.Press("Backspace")
	clock.Advance(24 * time.Hour)

	if !n.Visible() {
		t.Error("Backspace should pause the countdown")
	}
}

func TestNotificationCloseTeardown(t *testing.T) {
	keys := vtest.NewKeys()

	closes := 0
	destroys := 0
	var order []string

	n, clock := vtest.Mount(t,
		notify.WithDuration(100*time.Millisecond),
		notify.WithProgressBar(),
		notify.WithOnProgress(func(float64) {}),
		notify.WithKeySource(keys),
		notify.WithOnClose(func() { closes++; order = append(order, "close") }),
		notify.WithOnDestroy(func() { destroys++; order = append(order, "destroy") }),
	)

	if keys.Subscribers() != 1 {
		t.Fatalf("expected 1 key subscription after mount, got %d", keys.Subscribers())
	}

	n.Close()
	n.Close() // idempotent

	if closes != 1 {
		t.Errorf("onClose should fire exactly once, got %d", closes)
	}
	if destroys != 1 {
		t.Errorf("destroy should fire exactly once, got %d", destroys)
	}
	if len(order) != 2 || order[0] != "close" || order[1] != "destroy" {
		t.Errorf("expected close before destroy, got %v", order)
	}
	if keys.Subscribers() != 0 {
		t.Errorf("key subscription leaked: %d", keys.Subscribers())
	}

	// No countdown or animation callback survives teardown.
	clock.Advance(24 * time.Hour)
	if clock.Pending() != 0 {
		t.Errorf("timers leaked after close: %d", clock.Pending())
	}
}

func TestNotificationExpiryAfterCloseIsHarmless(t *testing.T) {
	closes := 0
	n, clock := vtest.Mount(t,
		notify.WithDuration(100*time.Millisecond),
		notify.WithOnClose(func() { closes++ }),
	)

	n.Close()
	clock.Advance(time.Hour)

	if closes != 1 {
		t.Errorf("expiry after close must not re-close, got %d closes", closes)
	}
	_ = n
}

func TestNotificationShowHide(t *testing.T) {
	n, _ := vtest.Mount(t, notify.WithDuration(0))

	n.Hide()
	if n.Visible() {
		t.Error("Hide should set visibility to false")
	}
	n.Hide() // redundant hide is a no-op
	if n.Visible() {
		t.Error("redundant Hide changed state")
	}

	n.Show()
	if !n.Visible() {
		t.Error("Show should set visibility to true")
	}

	n.Close()
	n.Show()
	if n.Visible() {
		t.Error("Show after Close must not reopen")
	}
}

func TestNotificationBodyClick(t *testing.T) {
	clicks := 0
	n, _ := vtest.Mount(t,
		notify.WithDuration(0),
		notify.WithOnClick(func() { clicks++ }),
	)

	n.HandleBodyClick()
	n.HandleBodyClick()

	if clicks != 2 {
		t.Errorf("expected 2 body clicks, got %d", clicks)
	}
	if !n.Visible() {
		t.Error("body clicks do not close the notification")
	}
}

func TestNotificationSetDurationWhileRunning(t *testing.T) {
	n, clock := vtest.Mount(t,
		notify.WithDuration(100*time.Millisecond),
		notify.WithProgressBar(),
	)

	clock.Advance(50 * time.Millisecond)
	n.SetDuration(200 * time.Millisecond)

	if got := n.Remaining(); got != 200*time.Millisecond {
		t.Errorf("expected remaining resynced to 200ms, got %v", got)
	}
	if got := n.ProgressFraction(); got != 1.0 {
		t.Errorf("progress should reflect the new duration, got %v", got)
	}

	clock.Advance(200 * time.Millisecond)
	if n.Visible() {
		t.Error("expected closed after the new duration elapsed")
	}
}

func TestNotificationProgressVisibleMatrix(t *testing.T) {
	pos := 100 * time.Millisecond

	cases := []struct {
		name string
		opts []notify.Option
		want bool
	}{
		{"bar with positive duration", []notify.Option{notify.WithProgressBar(), notify.WithDuration(pos)}, true},
		{"bar with zero duration", []notify.Option{notify.WithProgressBar(), notify.WithDuration(0)}, false},
		{"bar with negative duration", []notify.Option{notify.WithProgressBar(), notify.WithDuration(-pos)}, false},
		{"no bar with positive duration", []notify.Option{notify.WithDuration(pos)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, _ := vtest.Mount(t, tc.opts...)
			if got := n.ProgressVisible(); got != tc.want {
				t.Errorf("ProgressVisible() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNotificationAccentColor(t *testing.T) {
	n, _ := vtest.Mount(t, notify.WithDuration(0), notify.WithType(notify.TypeSuccess))
	if got := n.AccentColor(); got == notify.NeutralColor {
		t.Error("recognized type should resolve a real accent color")
	}

	n, _ = vtest.Mount(t, notify.WithDuration(0), notify.WithType(notify.Type("sparkle")))
	if got := n.AccentColor(); got != notify.NeutralColor {
		t.Errorf("unrecognized type should fall back to neutral, got %q", got)
	}

	n, _ = vtest.Mount(t, notify.WithDuration(0))
	if got := n.AccentColor(); got != notify.NeutralColor {
		t.Errorf("absent type should fall back to neutral, got %q", got)
	}
}

func TestNotificationMountIsIdempotent(t *testing.T) {
	n, clock := vtest.Mount(t, notify.WithDuration(100*time.Millisecond))

	n.Mount()
	n.Mount()

	// A single countdown is scheduled regardless of repeated mounts.
	if clock.Pending() != 1 {
		t.Errorf("expected exactly 1 pending countdown, got %d", clock.Pending())
	}

	clock.Advance(100 * time.Millisecond)
	if n.Visible() {
		t.Error("notification should close once")
	}
}
