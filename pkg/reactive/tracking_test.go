package reactive

import (
	"sync"
	"testing"
)

func countTrackingContexts() int {
	n := 0
	trackingContexts.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func TestTrackingContextReleasedWhenIdle(t *testing.T) {
	before := countTrackingContexts()

	o := NewOwner(nil)
	sig := NewSignal(0)
	WithOwner(o, func() {
		CreateEffect(func() Cleanup {
			_ = sig.Get()
			return nil
		})
	})
	sig.Set(1)
	o.Dispose()

	if got := countTrackingContexts(); got != before {
		t.Errorf("tracking contexts not released: %d -> %d", before, got)
	}
}

func TestTrackingContextsReleasedAfterGoroutineExit(t *testing.T) {
	before := countTrackingContexts()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			o := NewOwner(nil)
			sig := NewSignal(0)
			WithOwner(o, func() {
				CreateEffect(func() Cleanup {
					_ = sig.Get()
					return nil
				})
			})
			sig.Set(1)
			Untracked(func() { _ = sig.Peek() })
			o.Dispose()
		}()
	}
	wg.Wait()

	if got := countTrackingContexts(); got > before {
		t.Errorf("leaked %d tracking contexts for exited goroutines", got-before)
	}
}

func TestPlainSignalReadAllocatesNoContext(t *testing.T) {
	before := countTrackingContexts()

	sig := NewSignal(1)
	_ = sig.Get()
	_ = sig.Peek()

	if got := countTrackingContexts(); got != before {
		t.Errorf("untracked read allocated a context: %d -> %d", before, got)
	}
}
