package engine

import (
	"context"
	"errors"
	"testing"
	"time"
)

var testEpoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestManualScheduler_Order(t *testing.T) {
	s := NewManualScheduler(testEpoch)
	var order []string

	s.AfterFunc(200*time.Millisecond, func() { order = append(order, "b") })
	s.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	s.AfterFunc(200*time.Millisecond, func() { order = append(order, "c") })

	s.Advance(150 * time.Millisecond)
	if len(order) != 1 || order[0] != "a" {
		t.Fatalf("Expected only 'a' to run, got %v", order)
	}

	s.Advance(50 * time.Millisecond)
	if len(order) != 3 || order[1] != "b" || order[2] != "c" {
		t.Errorf("Expected a, b, c, got %v", order)
	}
	if !s.Now().Equal(testEpoch.Add(200 * time.Millisecond)) {
		t.Errorf("Unexpected clock: %v", s.Now())
	}
}

func TestManualScheduler_Cancel(t *testing.T) {
	s := NewManualScheduler(testEpoch)
	ran := false
	cancel := s.AfterFunc(time.Second, func() { ran = true })
	cancel()
	cancel()

	s.Advance(2 * time.Second)
	if ran {
		t.Error("Cancelled task must not run")
	}
	if s.Pending() != 0 {
		t.Errorf("Expected no pending tasks, got %d", s.Pending())
	}
}

func TestManualScheduler_ZeroDelayIsDeferred(t *testing.T) {
	s := NewManualScheduler(testEpoch)
	ran := false
	s.AfterFunc(0, func() { ran = true })
	if ran {
		t.Fatal("Task must not run synchronously")
	}
	s.RunPending()
	if !ran {
		t.Error("Expected due task to run")
	}
}

func TestManualScheduler_Every(t *testing.T) {
	s := NewManualScheduler(testEpoch)
	var ticks []time.Time
	cancel := s.Every(time.Second, func() { ticks = append(ticks, s.Now()) })

	s.Advance(3500 * time.Millisecond)
	if len(ticks) != 3 {
		t.Fatalf("Expected 3 ticks, got %d", len(ticks))
	}
	if !ticks[2].Equal(testEpoch.Add(3 * time.Second)) {
		t.Errorf("Third tick at %v", ticks[2])
	}

	cancel()
	s.Advance(5 * time.Second)
	if len(ticks) != 3 {
		t.Errorf("Expected ticking to stop, got %d ticks", len(ticks))
	}
}

func TestManualScheduler_NestedScheduling(t *testing.T) {
	s := NewManualScheduler(testEpoch)
	var order []int
	s.AfterFunc(time.Second, func() {
		order = append(order, 1)
		s.AfterFunc(0, func() { order = append(order, 2) })
	})

	s.Advance(time.Second)
	if len(order) != 2 {
		t.Errorf("Expected nested task to run in the same advance, got %v", order)
	}
}

func TestLoop_DoAndPost(t *testing.T) {
	loop := NewLoop()
	defer loop.Close()

	var order []int
	loop.Post(func() { order = append(order, 1) })
	loop.Post(func() { order = append(order, 2) })

	err := loop.Do(context.Background(), func() { order = append(order, 3) })
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("Expected actions in order, got %v", order)
	}
}

func TestLoop_Closed(t *testing.T) {
	loop := NewLoop()
	loop.Close()
	loop.Close()

	if err := loop.Do(context.Background(), func() {}); !errors.Is(err, ErrLoopClosed) {
		t.Errorf("Expected ErrLoopClosed, got: %v", err)
	}
	if loop.Post(func() {}) {
		t.Error("Expected Post on closed loop to fail")
	}
}

func TestLoop_ContextCancelled(t *testing.T) {
	loop := NewLoop()
	defer loop.Close()

	block := make(chan struct{})
	loop.Post(func() { <-block })
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := loop.Do(ctx, func() {}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got: %v", err)
	}
}

func TestLoopScheduler_AfterFunc(t *testing.T) {
	loop := NewLoop()
	defer loop.Close()
	s := NewLoopScheduler(loop)

	fired := make(chan struct{})
	s.AfterFunc(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for deferred task")
	}

	ran := make(chan struct{}, 1)
	cancel := s.AfterFunc(20*time.Millisecond, func() { ran <- struct{}{} })
	cancel()

	select {
	case <-ran:
		t.Error("Cancelled task ran")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestLoopScheduler_Every(t *testing.T) {
	loop := NewLoop()
	defer loop.Close()
	s := NewLoopScheduler(loop)

	ticks := make(chan struct{}, 10)
	cancel := s.Every(5*time.Millisecond, func() {
		select {
		case ticks <- struct{}{}:
		default:
		}
	})
	defer cancel()

	for i := 0; i < 2; i++ {
		select {
		case <-ticks:
		case <-time.After(time.Second):
			t.Fatal("Timed out waiting for tick")
		}
	}
}
