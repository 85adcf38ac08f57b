package reactive

import (
	"reflect"
	"sync"
)

// source provides type-erased subscriber management. It is embedded in
// Signal[T] and Memo[T] to share subscription logic.
type source struct {
	id uint64

	subs  []Listener
	subMu sync.RWMutex
}

// subscribe adds a listener, deduplicating by listener ID.
func (s *source) subscribe(l Listener) {
	if l == nil {
		return
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	lid := l.ID()
	for _, existing := range s.subs {
		if existing.ID() == lid {
			return
		}
	}
	s.subs = append(s.subs, l)
}

// unsubscribe removes a listener. Order of remaining subscribers is not
// preserved.
func (s *source) unsubscribe(l Listener) {
	if l == nil {
		return
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	lid := l.ID()
	for i, existing := range s.subs {
		if existing.ID() == lid {
			s.subs[i] = s.subs[len(s.subs)-1]
			s.subs = s.subs[:len(s.subs)-1]
			return
		}
	}
}

// notify marks all current subscribers dirty. Subscribers are copied before
// notification so no lock is held while listeners run.
func (s *source) notify() {
	s.subMu.RLock()
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)
	s.subMu.RUnlock()

	for _, sub := range subs {
		sub.MarkDirty()
	}
}

// dependent is implemented by listeners (effects, memos) that track their
// sources for later unsubscription.
type dependent interface {
	Listener
	addSource(src *source)
}

// track subscribes the current listener, if any, to this source.
func (s *source) track() {
	if l := currentListener(); l != nil {
		s.subscribe(l)
		if d, ok := l.(dependent); ok {
			d.addSource(s)
		}
	}
}

// Signal is a reactive value container. Reading it inside an effect or memo
// computation subscribes the reader; writing a changed value notifies all
// subscribers.
type Signal[T any] struct {
	base source

	value T
	mu    sync.RWMutex

	// equal overrides the change check. Nil means default equality.
	equal func(T, T) bool
}

// NewSignal creates a signal holding the given initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		base:  source{id: nextID()},
		value: initial,
	}
}

// Get returns the current value and subscribes the current listener.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	value := s.value
	s.mu.RUnlock()

	s.base.track()
	return value
}

// Peek returns the current value without creating a dependency.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores a new value and notifies subscribers if it changed.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	changed := !s.equals(s.value, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		s.base.notify()
	}
}

// Update atomically transforms the current value with fn.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	next := fn(s.value)
	changed := !s.equals(s.value, next)
	if changed {
		s.value = next
	}
	s.mu.Unlock()

	if changed {
		s.base.notify()
	}
}

// WithEquals configures a custom equality function and returns the signal.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.base.id
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for common comparable types and falls back to
// reflect.DeepEqual for everything else.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int64:
		return av == any(b).(int64)
	case uint64:
		return av == any(b).(uint64)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}
