package reactive

import (
	"sync"
	"sync/atomic"
)

// Owner is a disposal scope for reactive primitives. Effects created while
// an owner is current are registered with it, and OnCleanup attaches manual
// teardown functions. Disposing an owner disposes child owners first, then
// effects, then runs cleanups, all in reverse registration order.
//
// Owners form a hierarchy mirroring the component structure: a notification
// creates one owner, and everything it allocates (timer teardown, progress
// interval, key subscription) hangs off it so a single Dispose covers every
// exit path.
type Owner struct {
	id uint64

	parent *Owner

	children   []*Owner
	childrenMu sync.Mutex

	effects   []*Effect
	effectsMu sync.Mutex

	cleanups   []func()
	cleanupsMu sync.Mutex

	disposed atomic.Bool
}

// NewOwner creates an owner under parent. A nil parent creates a root.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{
		id:     nextID(),
		parent: parent,
	}
	if parent != nil {
		parent.addChild(o)
	}
	return o
}

// ID returns the owner's unique identifier.
func (o *Owner) ID() uint64 {
	return o.id
}

// OnCleanup registers fn to run when the owner is disposed. If the owner is
// already disposed, fn runs immediately.
func (o *Owner) OnCleanup(fn func()) {
	if fn == nil {
		return
	}
	if o.disposed.Load() {
		fn()
		return
	}

	o.cleanupsMu.Lock()
	o.cleanups = append(o.cleanups, fn)
	o.cleanupsMu.Unlock()
}

// Disposed reports whether Dispose has been called.
func (o *Owner) Disposed() bool {
	return o.disposed.Load()
}

// Dispose tears down the owner: children, effects, then cleanups, each in
// reverse registration order. Idempotent.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	o.childrenMu.Lock()
	children := o.children
	o.children = nil
	o.childrenMu.Unlock()
	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	o.effectsMu.Lock()
	effects := o.effects
	o.effects = nil
	o.effectsMu.Unlock()
	for i := len(effects) - 1; i >= 0; i-- {
		effects[i].Dispose()
	}

	o.cleanupsMu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.cleanupsMu.Unlock()
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	if o.parent != nil {
		o.parent.removeChild(o)
	}
}

func (o *Owner) addChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	o.children = append(o.children, child)
}

func (o *Owner) removeChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

func (o *Owner) registerEffect(e *Effect) {
	o.effectsMu.Lock()
	defer o.effectsMu.Unlock()
	o.effects = append(o.effects, e)
}

// OnUnmount registers fn with the current owner's cleanup list. No-op when
// no owner is current.
func OnUnmount(fn func()) {
	if o := currentOwner(); o != nil {
		o.OnCleanup(fn)
	}
}
