package reactive

import (
	"sync"
	"sync/atomic"
)

// Memo is a cached computation that tracks its own dependencies. It is
// lazy: the computation only runs when Get or Peek is called on an invalid
// cache. Memos are themselves sources, so effects can depend on them.
type Memo[T any] struct {
	base source

	compute func() T

	value   T
	valueMu sync.RWMutex

	// valid reports whether the cached value is current.
	valid atomic.Bool

	sources   []*source
	sourcesMu sync.Mutex
}

// NewMemo creates a memo for the given computation. The computation does
// not run until the first read.
func NewMemo[T any](compute func() T) *Memo[T] {
	return &Memo[T]{
		base:    source{id: nextID()},
		compute: compute,
	}
}

// Get returns the memo's value, recomputing if a dependency changed, and
// subscribes the current listener.
func (m *Memo[T]) Get() T {
	m.base.track()

	if !m.valid.Load() {
		m.recompute()
	}

	m.valueMu.RLock()
	defer m.valueMu.RUnlock()
	return m.value
}

// Peek returns the value without subscribing. Still recomputes when stale.
func (m *Memo[T]) Peek() T {
	if !m.valid.Load() {
		m.recompute()
	}
	m.valueMu.RLock()
	defer m.valueMu.RUnlock()
	return m.value
}

// MarkDirty invalidates the cache and notifies downstream subscribers.
// Implements Listener; called when a dependency changes.
func (m *Memo[T]) MarkDirty() {
	if m.valid.CompareAndSwap(true, false) {
		m.base.notify()
	}
}

// ID implements Listener.
func (m *Memo[T]) ID() uint64 {
	return m.base.id
}

func (m *Memo[T]) recompute() {
	// Resubscribe from scratch; dependencies may differ between runs.
	m.sourcesMu.Lock()
	for _, src := range m.sources {
		src.unsubscribe(m)
	}
	m.sources = m.sources[:0]
	m.sourcesMu.Unlock()

	var value T
	WithListener(m, func() {
		value = m.compute()
	})

	m.valueMu.Lock()
	m.value = value
	m.valueMu.Unlock()
	m.valid.Store(true)
}

// addSource records a dependency for later unsubscription.
func (m *Memo[T]) addSource(src *source) {
	m.sourcesMu.Lock()
	defer m.sourcesMu.Unlock()

	for _, s := range m.sources {
		if s == src {
			return
		}
	}
	m.sources = append(m.sources, src)
}
