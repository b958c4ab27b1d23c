package grouplock

import (
	"testing"
	"time"
)

func TestLockSerializesSameGroup(t *testing.T) {
	locks := New()
	unlock := locks.Lock("g1")

	acquired := make(chan struct{})
	go func() {
		second := locks.Lock("g1")
		second()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatalf("expected second lock to block while first is held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatalf("expected second lock to proceed after unlock")
	}
}

func TestLockIndependentGroups(t *testing.T) {
	locks := New()
	unlock := locks.Lock("g1")
	defer unlock()

	acquired := make(chan struct{})
	go func() {
		other := locks.Lock("g2")
		other()
		close(acquired)
	}()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatalf("expected other group's lock to be independent")
	}
}

func TestLockReentryAfterUnlock(t *testing.T) {
	locks := New()
	for i := 0; i < 3; i++ {
		unlock := locks.Lock("g1")
		unlock()
	}
}
