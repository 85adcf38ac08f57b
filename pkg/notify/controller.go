package notify

import (
	"strings"
	"sync"
	"time"

	"github.com/vango-dev/notify/pkg/reactive"
)

// Close reasons recorded in metrics and handed to the host.
const (
	CloseReasonExpired = "expired"
	CloseReasonEscape  = "escape"
	CloseReasonAction  = "action"
	CloseReasonHost    = "host"
)

// Notification is the lifecycle controller: the composition root that owns
// the visibility state and wires the countdown timer, the progress bar,
// the action registry, and the global key subscription together.
//
// Data flows one way at mount: Mount initializes the timer and progress
// bar and opens the visibility state. Thereafter user events flow in
// through the Handle methods, which drive the timer, and timer expiry
// flows back out by closing the notification.
//
// All mutations are expected to run on one logical thread. Hosts arrange
// that by passing WithDispatch; callbacks from the clock and from action
// goroutines re-enter through it.
type Notification struct {
	cfg config

	owner    *reactive.Owner
	visible  *reactive.Signal[bool]
	duration *reactive.Signal[time.Duration]
	actions  *reactive.Signal[[]Action]
	rendered *reactive.Memo[[]*RenderedAction]

	timer    *CountdownTimer
	progress *ProgressBar
	registry *actionRegistry
	accent   string

	mu      sync.Mutex
	mounted bool
	closing bool
}

// New assembles a notification from options. Nothing runs until Mount.
func New(opts ...Option) *Notification {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	n := &Notification{
		cfg:      cfg,
		owner:    reactive.NewOwner(nil),
		visible:  reactive.NewSignal(false),
		duration: reactive.NewSignal(cfg.duration),
		actions:  reactive.NewSignal(cfg.actions),
		accent:   accentColor(cfg.typ, cfg.logger),
	}

	n.timer = NewCountdownTimer(cfg.clock, cfg.control, cfg.duration, func() {
		cfg.dispatch(func() { n.close(CloseReasonExpired) })
	})
	n.progress = NewProgressBar(cfg.clock, n.timer, cfg.showProgressBar, cfg.progressInterval, cfg.onProgress)
	n.registry = newActionRegistry(cfg.logger, cfg.tracer, cfg.metrics, cfg.dispatch, func() {
		n.close(CloseReasonAction)
	})
	n.rendered = reactive.NewMemo(func() []*RenderedAction {
		return n.registry.render(n.actions.Get())
	})

	return n
}

// Mount opens the notification: starts the countdown and progress ticks,
// subscribes to the key source, and sets visibility. Idempotent; a closed
// notification cannot be remounted.
func (n *Notification) Mount() {
	n.mu.Lock()
	if n.mounted || n.closing {
		n.mu.Unlock()
		return
	}
	n.mounted = true
	n.mu.Unlock()

	reactive.WithOwner(n.owner, func() {
		// Timer and progress teardown covers every exit path, including
		// close before expiry and redundant cleanup after it.
		reactive.OnUnmount(n.timer.Cleanup)
		reactive.OnUnmount(n.progress.Cleanup)

		// Duration changes resynchronize the countdown while it runs, so
		// the progress bar reflects the new duration without a manual
		// reset.
		reactive.OnUpdate(
			func() { _ = n.duration.Get() },
			func() { n.timer.SetDuration(n.duration.Peek()) },
		)
	})

	if n.cfg.keys != nil {
		unsubscribe := n.cfg.keys.Subscribe(func(key string) {
			n.cfg.dispatch(func() { n.HandleKey(key) })
		})
		n.owner.OnCleanup(unsubscribe)
	}

	n.visible.Set(true)
	n.timer.SetDuration(n.duration.Peek())
	n.timer.Start()
	n.progress.Start()
	n.cfg.metrics.notifyShown(n.cfg.typ)
}

// Visible reports whether the notification is open. Reactive: reading it
// inside an effect subscribes to visibility changes.
func (n *Notification) Visible() bool {
	return n.visible.Get()
}

// Show sets the visibility to open. No-op after Close.
func (n *Notification) Show() {
	n.mu.Lock()
	closing := n.closing
	n.mu.Unlock()
	if closing {
		return
	}
	n.visible.Set(true)
}

// Hide sets the visibility to hidden without tearing anything down.
// Hiding an already hidden notification has no observable effect.
func (n *Notification) Hide() {
	n.visible.Set(false)
}

// Close dismisses the notification: visibility flips to hidden, the
// onClose callback fires once, the timer, progress interval, and key
// subscription are torn down, and the destroy callback fires. Idempotent.
func (n *Notification) Close() {
	n.close(CloseReasonHost)
}

func (n *Notification) close(reason string) {
	n.mu.Lock()
	if n.closing {
		n.mu.Unlock()
		return
	}
	n.closing = true
	n.mu.Unlock()

	n.visible.Set(false)
	if n.cfg.onClose != nil {
		n.cfg.onClose()
	}

	n.owner.Dispose()
	n.cfg.metrics.notifyClosed(reason)

	if n.cfg.onDestroy != nil {
		n.cfg.onDestroy()
	}
}

// HandleMouseEnter pauses the countdown, or resets it to the full duration
// under reset-restart controls.
func (n *Notification) HandleMouseEnter() {
	n.timer.PauseOrReset()
}

// HandleMouseLeave resumes the countdown, or restarts it from the full
// duration under reset-restart controls.
func (n *Notification) HandleMouseLeave() {
	n.timer.ResumeOrRestart()
}

// HandleBodyClick invokes the body click callback, if any. Independent of
// action buttons.
func (n *Notification) HandleBodyClick() {
	if n.cfg.onClick != nil {
		n.cfg.onClick()
	}
}

// HandleKey routes a global keydown: Delete and Backspace behave like
// mouse-enter, Escape closes immediately regardless of remaining time, and
// any other key behaves like mouse-leave.
func (n *Notification) HandleKey(key string) {
	switch strings.ToLower(key) {
	case "delete", "backspace":
		n.timer.PauseOrReset()
	case "escape":
		n.close(CloseReasonEscape)
	default:
		n.timer.ResumeOrRestart()
	}
}

// Actions returns the rendered action list, recompiled when the input
// descriptors change.
func (n *Notification) Actions() []*RenderedAction {
	return n.rendered.Get()
}

// SetActions replaces the action descriptors. Pending state for labels
// that survive is kept; state for labels that disappear is discarded.
func (n *Notification) SetActions(actions []Action) {
	n.actions.Set(actions)
}

// SetDuration changes the countdown duration, resynchronizing the
// remaining time immediately.
func (n *Notification) SetDuration(d time.Duration) {
	n.duration.Set(d)
}

// Duration returns the current countdown duration.
func (n *Notification) Duration() time.Duration {
	return n.duration.Peek()
}

// Remaining returns the countdown time left.
func (n *Notification) Remaining() time.Duration {
	return n.timer.Remaining()
}

// ProgressVisible reports whether the progress bar should render:
// exactly showProgressBar && duration > 0.
func (n *Notification) ProgressVisible() bool {
	return n.progress.Visible()
}

// ProgressFraction returns remaining/duration in [0, 1].
func (n *Notification) ProgressFraction() float64 {
	return n.progress.Fraction()
}

// TimerControl returns the configured control mode.
func (n *Notification) TimerControl() TimerControl {
	return n.timer.Control()
}

// Type returns the notification type.
func (n *Notification) Type() Type {
	return n.cfg.typ
}

// AccentColor returns the accent color for the notification type, or the
// neutral color for absent and unrecognized types.
func (n *Notification) AccentColor() string {
	return n.accent
}
