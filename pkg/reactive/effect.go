package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect is a side effect that re-runs when any signal or memo it read
// during its last run changes. Effects run synchronously: a Set on a
// dependency re-runs subscribed effects before Set returns.
//
// The effect function may return a Cleanup, which runs before the next
// re-run and when the effect is disposed.
type Effect struct {
	id uint64

	fn      func() Cleanup
	cleanup Cleanup

	sources   []*source
	sourcesMu sync.Mutex

	owner    *Owner
	disposed atomic.Bool
}

// CreateEffect creates an effect owned by the current owner and runs it
// immediately.
//
//	reactive.CreateEffect(func() reactive.Cleanup {
//	    fmt.Println("remaining:", remaining.Get())
//	    return nil
//	})
func CreateEffect(fn func() Cleanup) *Effect {
	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: currentOwner(),
	}
	if e.owner != nil {
		e.owner.registerEffect(e)
	}
	e.run()
	return e
}

// MarkDirty re-runs the effect. Implements Listener.
func (e *Effect) MarkDirty() {
	e.run()
}

// ID implements Listener.
func (e *Effect) ID() uint64 {
	return e.id
}

func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	// Drop stale subscriptions; the run below re-collects live ones.
	e.sourcesMu.Lock()
	for _, src := range e.sources {
		src.unsubscribe(e)
	}
	e.sources = e.sources[:0]
	e.sourcesMu.Unlock()

	WithListener(e, func() {
		e.cleanup = e.fn()
	})
}

// addSource records a dependency so it can be unsubscribed later.
func (e *Effect) addSource(src *source) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == src {
			return
		}
	}
	e.sources = append(e.sources, src)
}

// Dispose stops the effect permanently, running its pending cleanup.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, src := range e.sources {
		src.unsubscribe(e)
	}
	e.sources = nil
	e.sourcesMu.Unlock()
}

// OnUpdate creates an effect that tracks deps but only invokes callback on
// changes after the first run. Useful for reacting to a signal without
// acting on its initial value.
func OnUpdate(deps func(), callback func()) *Effect {
	first := true
	return CreateEffect(func() Cleanup {
		deps()
		if first {
			first = false
			return nil
		}
		callback()
		return nil
	})
}
