package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/notify/pkg/reactive"
)

// KeepOpen is the per-action policy for whether activating the action
// dismisses the notification.
type KeepOpen string

const (
	// KeepOpenNever closes the notification after activation. This is the
	// default; any unrecognized value behaves like it.
	KeepOpenNever KeepOpen = ""

	// KeepOpenAlways leaves the notification open after activation.
	KeepOpenAlways KeepOpen = "always"

	// KeepOpenUntilResolved keeps the notification open, and the action
	// disabled, until Execute settles, then closes. The close never races
	// ahead of a pending Execute.
	KeepOpenUntilResolved KeepOpen = "until-resolved"
)

// String returns a readable policy name.
func (k KeepOpen) String() string {
	switch k {
	case KeepOpenAlways:
		return "always"
	case KeepOpenUntilResolved:
		return "until-resolved"
	default:
		return "never"
	}
}

// Action describes a user-triggered button on a notification.
type Action struct {
	// Label is the button text and the action's unique key. Descriptors
	// with an empty label are dropped silently; descriptors repeating an
	// earlier label are dropped with a diagnostic.
	Label string

	// Execute runs when the button is activated. A nil Execute makes the
	// descriptor invalid; it is dropped silently. The error, if any, is
	// logged and traced but not propagated: surfacing failures to the user
	// is the caller's concern, typically by raising another notification.
	Execute func(ctx context.Context) error

	// KeepOpen controls dismissal after activation. See the KeepOpen
	// constants.
	KeepOpen KeepOpen

	// DisableAfterExecute disables the button while Execute runs. Nil
	// means the default: true unless KeepOpen is KeepOpenAlways.
	DisableAfterExecute *bool

	// Button carries style or variant overrides passed through to the
	// client verbatim, except that any click-handler property is stripped
	// so a descriptor cannot bypass the registry's activation handler.
	Button map[string]any
}

// valid reports whether the descriptor survives the filter stage.
func (a Action) valid() bool {
	return a.Execute != nil && a.Label != ""
}

// keepOpen normalizes the policy; unrecognized values degrade to never.
func (a Action) keepOpen() KeepOpen {
	switch a.KeepOpen {
	case KeepOpenAlways, KeepOpenUntilResolved:
		return a.KeepOpen
	default:
		return KeepOpenNever
	}
}

// disableWhilePending resolves the DisableAfterExecute default.
func (a Action) disableWhilePending() bool {
	if a.DisableAfterExecute != nil {
		return *a.DisableAfterExecute
	}
	return a.keepOpen() != KeepOpenAlways
}

// Bool returns a pointer to b, for setting DisableAfterExecute inline.
func Bool(b bool) *bool {
	return &b
}

// RenderedAction is a compiled, clickable action entry. Its disabled flag
// is owned by the registry and mutates only during a pending execution.
type RenderedAction struct {
	// Label is the surviving descriptor's label.
	Label string

	// Button holds the sanitized style overrides.
	Button map[string]any

	disabled *reactive.Signal[bool]
	activate func()
}

// Disabled reports whether the button is currently disabled. Reactive:
// reading it inside an effect subscribes to changes.
func (r *RenderedAction) Disabled() bool {
	return r.disabled.Get()
}

// Activate runs the registry's activation handler. While the action is
// disabled or pending, Activate is a no-op.
func (r *RenderedAction) Activate() {
	r.activate()
}

// actionRegistry compiles action descriptors into rendered actions and
// owns their pending state. Pending state is keyed by label so it survives
// recompilation of the action list, and entries for labels that disappear
// are pruned.
type actionRegistry struct {
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *Metrics

	// dispatch re-enters the session loop from action goroutines.
	dispatch func(func())

	// requestClose closes the owning notification.
	requestClose func()

	mu       sync.Mutex
	disabled map[string]*reactive.Signal[bool]
}

func newActionRegistry(logger *slog.Logger, tracer trace.Tracer, metrics *Metrics, dispatch func(func()), requestClose func()) *actionRegistry {
	return &actionRegistry{
		logger:       logger,
		tracer:       tracer,
		metrics:      metrics,
		dispatch:     dispatch,
		requestClose: requestClose,
		disabled:     make(map[string]*reactive.Signal[bool]),
	}
}

// render runs the compile pipeline: filter invalid descriptors silently,
// deduplicate by label with first-occurrence-wins and a diagnostic per
// duplicate, then wrap each survivor. Output order follows first occurrence
// in the input.
func (g *actionRegistry) render(actions []Action) []*RenderedAction {
	g.mu.Lock()
	defer g.mu.Unlock()

	seen := make(map[string]bool, len(actions))
	rendered := make([]*RenderedAction, 0, len(actions))

	for _, a := range actions {
		if !a.valid() {
			continue
		}
		if seen[a.Label] {
			g.logger.Warn("duplicate action label, dropping", "label", a.Label)
			g.metrics.duplicateAction()
			continue
		}
		seen[a.Label] = true

		disabled := g.disabled[a.Label]
		if disabled == nil {
			disabled = reactive.NewSignal(false)
			g.disabled[a.Label] = disabled
		}

		action := a
		rendered = append(rendered, &RenderedAction{
			Label:    a.Label,
			Button:   sanitizeButtonProps(a.Button),
			disabled: disabled,
			activate: func() { g.activate(action, disabled) },
		})
	}

	// Labels gone from the input leave no lingering state behind.
	for label := range g.disabled {
		if !seen[label] {
			delete(g.disabled, label)
		}
	}

	return rendered
}

// activate implements the activation protocol for one rendered action.
func (g *actionRegistry) activate(a Action, disabled *reactive.Signal[bool]) {
	if disabled.Peek() {
		return
	}

	keep := a.keepOpen()
	disable := a.disableWhilePending()
	if disable {
		disabled.Set(true)
	}

	if keep == KeepOpenUntilResolved {
		// Execute runs off the session loop; re-enable and close re-enter
		// through dispatch once it settles, success or failure alike.
		go func() {
			g.execute(a)
			g.dispatch(func() {
				disabled.Set(false)
				g.requestClose()
			})
		}()
		return
	}

	g.execute(a)
	if disable {
		disabled.Set(false)
	}
	if keep != KeepOpenAlways {
		g.requestClose()
	}
}

// execute runs the descriptor's Execute under a trace span. A panic is
// contained and treated like a returned error so the pending state and the
// close path always release.
func (g *actionRegistry) execute(a Action) (err error) {
	ctx, span := g.tracer.Start(context.Background(), "notify.action",
		trace.WithAttributes(
			attribute.String("action.label", a.Label),
			attribute.String("action.keep_open", a.keepOpen().String()),
		))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notify: action %q panicked: %v", a.Label, r)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			g.logger.Warn("action execute failed", "label", a.Label, "error", err)
			g.metrics.actionExecuted("error")
			return
		}
		span.SetStatus(codes.Ok, "")
		g.metrics.actionExecuted("success")
	}()

	return a.Execute(ctx)
}

// sanitizeButtonProps copies the caller's button overrides, dropping any
// click-handler property regardless of case.
func sanitizeButtonProps(props map[string]any) map[string]any {
	if len(props) == 0 {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		if strings.EqualFold(k, "onclick") {
			continue
		}
		out[k] = v
	}
	return out
}
