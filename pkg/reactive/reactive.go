package reactive

import "sync/atomic"

// Listener is anything that can be notified when a dependency changes.
// Effects and memos implement it.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	MarkDirty()

	// ID returns a unique identifier, used to deduplicate subscriptions.
	ID() uint64
}

// Cleanup is a function returned by effects to release resources.
// It runs before the effect re-runs and when the effect is disposed.
type Cleanup func()

// idCounter is the source of unique IDs for all reactive primitives.
var idCounter atomic.Uint64

// nextID returns the next unique primitive ID. IDs are never reused.
func nextID() uint64 {
	return idCounter.Add(1)
}
