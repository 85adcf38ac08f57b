// Package notify implements the lifecycle of a transient on-screen
// notification (toast): a visibility state machine, an auto-dismiss
// countdown with pause/resume or reset/restart semantics, a progress
// indicator synchronized with the countdown, and a registry of
// user-triggered actions with per-action pending state and keep-open
// policy.
//
// The package owns behavior only. Rendering, positioning, and styling are
// the host's concern: a host (see pkg/host) feeds user events in and
// receives state to push to its client.
//
// # Quick Start
//
//	n := notify.New(
//	    notify.WithDuration(4500*time.Millisecond),
//	    notify.WithTimerControls(notify.ResetRestart),
//	    notify.WithProgressBar(),
//	    notify.WithType(notify.TypeSuccess),
//	    notify.WithOnClose(func() { fmt.Println("closing") }),
//	)
//	n.Mount()
//
//	n.HandleMouseEnter() // pause (or reset) the countdown
//	n.HandleMouseLeave() // resume (or restart) it
//	n.Close()            // imperative dismissal
//
// # Actions
//
// Actions are declared as descriptors and compiled by the action registry,
// which silently drops invalid entries, deduplicates by label (first
// occurrence wins, with a diagnostic for each duplicate), and wraps each
// survivor with an activation handler enforcing the keep-open policy:
//
//	notify.WithActions(
//	    notify.Action{Label: "Undo", Execute: undo},
//	    notify.Action{
//	        Label:    "Retry",
//	        Execute:  retry,
//	        KeepOpen: notify.KeepOpenUntilResolved,
//	    },
//	)
//
// KeepOpenUntilResolved runs Execute off the session loop and keeps the
// notification open, and the action disabled, until it settles; the close
// then runs whether Execute succeeded or failed.
//
// # Timing
//
// All timing goes through the Clock interface. Production code uses the
// system clock; tests drive a fake clock from pkg/vtest to advance virtual
// time deterministically.
package notify
