package reactive

import "testing"

func TestEffectRunsImmediately(t *testing.T) {
	ran := false
	CreateEffect(func() Cleanup {
		ran = true
		return nil
	})

	if !ran {
		t.Error("effect should run on creation")
	}
}

func TestEffectRerunsOnDependencyChange(t *testing.T) {
	count := NewSignal(0)

	var seen []int
	CreateEffect(func() Cleanup {
		seen = append(seen, count.Get())
		return nil
	})

	count.Set(1)
	count.Set(2)

	if len(seen) != 3 || seen[0] != 0 || seen[1] != 1 || seen[2] != 2 {
		t.Errorf("expected [0 1 2], got %v", seen)
	}
}

func TestEffectCleanupRunsBeforeRerun(t *testing.T) {
	count := NewSignal(0)

	var order []string
	CreateEffect(func() Cleanup {
		_ = count.Get()
		order = append(order, "run")
		return func() {
			order = append(order, "cleanup")
		}
	})

	count.Set(1)

	if len(order) != 3 || order[0] != "run" || order[1] != "cleanup" || order[2] != "run" {
		t.Errorf("expected [run cleanup run], got %v", order)
	}
}

func TestEffectDispose(t *testing.T) {
	count := NewSignal(0)

	runs := 0
	cleaned := false
	e := CreateEffect(func() Cleanup {
		_ = count.Get()
		runs++
		return func() { cleaned = true }
	})

	e.Dispose()
	if !cleaned {
		t.Error("dispose should run pending cleanup")
	}

	count.Set(1)
	if runs != 1 {
		t.Errorf("disposed effect must not re-run; got %d runs", runs)
	}

	// Second dispose is a no-op.
	e.Dispose()
}

func TestEffectDropsStaleDependencies(t *testing.T) {
	use := NewSignal(true)
	a := NewSignal(0)
	b := NewSignal(0)

	runs := 0
	CreateEffect(func() Cleanup {
		if use.Get() {
			_ = a.Get()
		} else {
			_ = b.Get()
		}
		runs++
		return nil
	})

	use.Set(false) // switch dependency from a to b

	before := runs
	a.Set(99)
	if runs != before {
		t.Errorf("stale dependency still subscribed; runs went %d -> %d", before, runs)
	}

	b.Set(99)
	if runs != before+1 {
		t.Errorf("live dependency not subscribed; runs %d", runs)
	}
}

func TestOnUpdateSkipsFirstRun(t *testing.T) {
	count := NewSignal(0)

	calls := 0
	OnUpdate(
		func() { _ = count.Get() },
		func() { calls++ },
	)

	if calls != 0 {
		t.Fatalf("callback must not fire on first run, got %d", calls)
	}

	count.Set(1)
	if calls != 1 {
		t.Errorf("callback should fire on change, got %d", calls)
	}
}
