package notify

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// DefaultDuration is the auto-dismiss countdown applied when no duration
// option is given.
const DefaultDuration = 4500 * time.Millisecond

// defaultProgressInterval is the cadence of progress push ticks.
const defaultProgressInterval = 100 * time.Millisecond

// instrumentationName identifies the engine's tracer.
const instrumentationName = "github.com/vango-dev/notify"

// KeySource delivers global keydown events to a mounted notification. The
// subscription lives from Mount to Close; the controller guarantees the
// returned unsubscribe runs on every teardown path.
type KeySource interface {
	// Subscribe registers fn for every keydown and returns an unsubscribe
	// function.
	Subscribe(fn func(key string)) (unsubscribe func())
}

// config is assembled from Options by New.
type config struct {
	duration         time.Duration
	control          TimerControl
	showProgressBar  bool
	typ              Type
	actions          []Action
	onClose          func()
	onClick          func()
	onDestroy        func()
	onProgress       func(float64)
	progressInterval time.Duration
	clock            Clock
	dispatch         func(func())
	keys             KeySource
	logger           *slog.Logger
	metrics          *Metrics
	tracer           trace.Tracer
}

// Option configures a Notification.
type Option func(*config)

func defaultConfig() config {
	return config{
		duration:         DefaultDuration,
		control:          PauseResume,
		progressInterval: defaultProgressInterval,
		clock:            SystemClock(),
		dispatch:         func(fn func()) { fn() },
		logger:           slog.Default(),
		tracer:           otel.Tracer(instrumentationName),
	}
}

// WithDuration sets the auto-dismiss countdown. A zero or negative value
// disables auto-dismissal and hides the progress bar.
func WithDuration(d time.Duration) Option {
	return func(c *config) {
		c.duration = d
	}
}

// WithTimerControls selects pause-resume or reset-restart behavior for
// hover and keyboard interruptions.
func WithTimerControls(control TimerControl) Option {
	return func(c *config) {
		c.control = control
	}
}

// WithProgressBar shows the progress indicator while the countdown runs.
// It has no effect when the duration is not positive.
func WithProgressBar() Option {
	return func(c *config) {
		c.showProgressBar = true
	}
}

// WithType sets the notification type used for accent color lookup.
func WithType(t Type) Option {
	return func(c *config) {
		c.typ = t
	}
}

// WithActions sets the action descriptors. The registry filters,
// deduplicates, and wraps them; see Action.
func WithActions(actions ...Action) Option {
	return func(c *config) {
		c.actions = actions
	}
}

// WithOnClose sets a callback invoked once when the notification begins
// closing.
func WithOnClose(fn func()) Option {
	return func(c *config) {
		c.onClose = fn
	}
}

// WithOnClick sets a callback for notification-body clicks, independent of
// actions.
func WithOnClick(fn func()) Option {
	return func(c *config) {
		c.onClick = fn
	}
}

// WithOnDestroy adds a callback invoked once after teardown finishes, for
// whatever manages the notification stack to collect the instance. Repeated
// options compose: callbacks run in the order they were added.
func WithOnDestroy(fn func()) Option {
	return func(c *config) {
		if prev := c.onDestroy; prev != nil {
			c.onDestroy = func() {
				prev()
				fn()
			}
			return
		}
		c.onDestroy = fn
	}
}

// WithOnProgress enables progress push ticks: fn receives the current
// fraction at the progress interval while the bar is visible.
func WithOnProgress(fn func(fraction float64)) Option {
	return func(c *config) {
		c.onProgress = fn
	}
}

// WithProgressInterval overrides the progress push cadence.
func WithProgressInterval(d time.Duration) Option {
	return func(c *config) {
		c.progressInterval = d
	}
}

// WithClock substitutes the time source, typically vtest.NewClock in tests.
func WithClock(clock Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithDispatch routes timer expiry, key events, and action completions
// through the host's session loop. The default runs them inline, which is
// only safe for single-goroutine use such as tests.
func WithDispatch(dispatch func(func())) Option {
	return func(c *config) {
		c.dispatch = dispatch
	}
}

// WithKeySource attaches a global keydown source. Delete and Backspace act
// like mouse-enter, Escape closes immediately, any other key acts like
// mouse-leave.
func WithKeySource(keys KeySource) Option {
	return func(c *config) {
		c.keys = keys
	}
}

// WithLogger sets the logger for diagnostics. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics enables Prometheus instrumentation. Nil disables it, which
// is the default.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithTracer overrides the OpenTelemetry tracer for action spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *config) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}
