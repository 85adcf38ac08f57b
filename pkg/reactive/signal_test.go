package reactive

import "testing"

func TestSignalGetSet(t *testing.T) {
	s := NewSignal(10)

	if got := s.Get(); got != 10 {
		t.Errorf("expected initial value 10, got %d", got)
	}

	s.Set(42)
	if got := s.Get(); got != 42 {
		t.Errorf("expected 42 after Set, got %d", got)
	}
}

func TestSignalUpdate(t *testing.T) {
	s := NewSignal(5)

	s.Update(func(v int) int { return v * 2 })

	if got := s.Peek(); got != 10 {
		t.Errorf("expected 10 after Update, got %d", got)
	}
}

func TestSignalSetUnchangedDoesNotNotify(t *testing.T) {
	s := NewSignal("same")

	runs := 0
	CreateEffect(func() Cleanup {
		_ = s.Get()
		runs++
		return nil
	})

	if runs != 1 {
		t.Fatalf("expected 1 initial run, got %d", runs)
	}

	s.Set("same")
	if runs != 1 {
		t.Errorf("expected no re-run for unchanged value, got %d runs", runs)
	}

	s.Set("different")
	if runs != 2 {
		t.Errorf("expected re-run for changed value, got %d runs", runs)
	}
}

func TestSignalPeekDoesNotSubscribe(t *testing.T) {
	s := NewSignal(1)

	runs := 0
	CreateEffect(func() Cleanup {
		_ = s.Peek()
		runs++
		return nil
	})

	s.Set(2)
	if runs != 1 {
		t.Errorf("Peek should not subscribe; got %d runs", runs)
	}
}

func TestSignalWithEquals(t *testing.T) {
	// Treat all even numbers as equal to each other.
	s := NewSignal(2).WithEquals(func(a, b int) bool {
		return a%2 == b%2
	})

	runs := 0
	CreateEffect(func() Cleanup {
		_ = s.Get()
		runs++
		return nil
	})

	s.Set(4) // same parity, no change
	if runs != 1 {
		t.Errorf("expected custom equality to suppress notify, got %d runs", runs)
	}

	s.Set(3)
	if runs != 2 {
		t.Errorf("expected notify on parity change, got %d runs", runs)
	}
}

func TestUntrackedRead(t *testing.T) {
	dep := NewSignal(1)
	other := NewSignal(1)

	runs := 0
	CreateEffect(func() Cleanup {
		_ = dep.Get()
		Untracked(func() {
			_ = other.Get()
		})
		runs++
		return nil
	})

	other.Set(2)
	if runs != 1 {
		t.Errorf("untracked read should not subscribe; got %d runs", runs)
	}

	dep.Set(2)
	if runs != 2 {
		t.Errorf("tracked read should subscribe; got %d runs", runs)
	}
}
