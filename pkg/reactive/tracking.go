package reactive

import (
	"runtime"
	"sync"
)

// trackingContext holds the reactive state for one goroutine: the listener
// currently collecting dependencies and the owner that adopts newly created
// effects.
type trackingContext struct {
	currentOwner    *Owner
	currentListener Listener
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

// goroutineID extracts the current goroutine's ID from the runtime stack.
// Implementation detail; not exposed.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	// The stack trace starts with "goroutine <id> ".
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// contextFor returns the goroutine's context, creating it on demand. Only
// the setters create contexts; reads are allocation-free.
func contextFor(gid uint64) *trackingContext {
	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}
	ctx := &trackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

// releaseIfIdle deletes the goroutine's entry once neither a listener nor
// an owner is current. Goroutine IDs are never reused, so entries for
// exited goroutines would otherwise accumulate for the life of the process.
func releaseIfIdle(gid uint64, ctx *trackingContext) {
	if ctx.currentListener == nil && ctx.currentOwner == nil {
		trackingContexts.Delete(gid)
	}
}

func currentListener() Listener {
	if ctx, ok := trackingContexts.Load(goroutineID()); ok {
		return ctx.(*trackingContext).currentListener
	}
	return nil
}

func setCurrentListener(l Listener) Listener {
	gid := goroutineID()
	ctx := contextFor(gid)
	old := ctx.currentListener
	ctx.currentListener = l
	releaseIfIdle(gid, ctx)
	return old
}

func currentOwner() *Owner {
	if ctx, ok := trackingContexts.Load(goroutineID()); ok {
		return ctx.(*trackingContext).currentOwner
	}
	return nil
}

func setCurrentOwner(o *Owner) *Owner {
	gid := goroutineID()
	ctx := contextFor(gid)
	old := ctx.currentOwner
	ctx.currentOwner = o
	releaseIfIdle(gid, ctx)
	return old
}

// WithOwner runs fn with the given owner adopting any effects created
// inside. The previous owner is restored afterwards.
func WithOwner(owner *Owner, fn func()) {
	old := setCurrentOwner(owner)
	defer setCurrentOwner(old)
	fn()
}

// WithListener runs fn with the given listener collecting dependencies.
// Used internally by effects and memos.
func WithListener(l Listener, fn func()) {
	old := setCurrentListener(l)
	defer setCurrentListener(old)
	fn()
}

// Untracked runs fn with dependency tracking suspended, so signal reads
// inside do not subscribe the enclosing effect.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}
