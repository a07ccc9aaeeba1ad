package engine

import (
	"testing"
	"time"
)

func TestTurnClock(t *testing.T) {
	s := NewManualScheduler(testEpoch)
	var reports []ElapsedTime
	clock := NewTurnClock(s, func(e ElapsedTime) { reports = append(reports, e) })

	if clock.Elapsed().Display != TimePlaceholder {
		t.Errorf("Expected placeholder before start, got %q", clock.Elapsed().Display)
	}

	clock.Start()
	if clock.Elapsed().Display != "00:00" {
		t.Errorf("Expected 00:00 after start, got %q", clock.Elapsed().Display)
	}

	s.Advance(61 * time.Second)
	if len(reports) != 61 {
		t.Fatalf("Expected 61 ticks, got %d", len(reports))
	}
	last := reports[len(reports)-1]
	if last.Minutes != 1 || last.Seconds != 1 || last.Display != "01:01" {
		t.Errorf("Expected 01:01, got %+v", last)
	}

	clock.Stop()
	if clock.Elapsed().Display != TimePlaceholder {
		t.Errorf("Expected placeholder after stop, got %q", clock.Elapsed().Display)
	}
	n := len(reports)
	clock.Stop()
	if len(reports) != n {
		t.Error("Second Stop must not report again")
	}

	s.Advance(5 * time.Second)
	if len(reports) != n {
		t.Error("Stopped clock must not tick")
	}
}

func TestTurnClock_Finish(t *testing.T) {
	s := NewManualScheduler(testEpoch)
	clock := NewTurnClock(s, nil)
	clock.Start()
	s.Advance(2500 * time.Millisecond)

	clock.Finish()
	final := clock.Elapsed()
	if final.Display != "00:02" || final.Running {
		t.Errorf("Expected frozen 00:02, got %+v", final)
	}

	s.Advance(10 * time.Second)
	if clock.Elapsed() != final {
		t.Errorf("Finished clock changed: %+v", clock.Elapsed())
	}
}

func TestTurnClock_Restart(t *testing.T) {
	s := NewManualScheduler(testEpoch)
	clock := NewTurnClock(s, nil)
	clock.Start()
	s.Advance(30 * time.Second)

	clock.Start()
	if clock.Elapsed().Display != "00:00" {
		t.Errorf("Expected restart from zero, got %q", clock.Elapsed().Display)
	}
	s.Advance(time.Second)
	if clock.Elapsed().Display != "00:01" {
		t.Errorf("Expected 00:01, got %q", clock.Elapsed().Display)
	}
	if s.Pending() != 1 {
		t.Errorf("Expected a single tick task, got %d", s.Pending())
	}
}
