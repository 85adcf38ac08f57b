// Package reactive provides the small reactivity core used by the
// notification engine: signals, memos, effects, and owner-scoped disposal.
//
// Reading a Signal or Memo inside an Effect automatically subscribes the
// effect, so it re-runs when the value changes:
//
//	visible := reactive.NewSignal(true)
//
//	reactive.WithOwner(owner, func() {
//	    reactive.CreateEffect(func() reactive.Cleanup {
//	        fmt.Println("visible:", visible.Get())
//	        return nil
//	    })
//	})
//
//	visible.Set(false) // effect re-runs
//
// Owners tie the lifetime of effects and cleanup functions to a scope.
// Disposing an owner disposes everything it owns, in reverse registration
// order, which is how the notification controller guarantees that timers,
// animation intervals, and the global key subscription are torn down on
// every exit path.
//
// Unlike a full rendering framework, effects here re-run synchronously when
// a dependency changes. The engine serializes all mutations on a single
// session loop, so there is no batching layer.
package reactive
