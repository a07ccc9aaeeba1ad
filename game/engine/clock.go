package engine

import (
	"fmt"
	"time"
)

// TurnClock measures elapsed play time and reports it once per ClockPeriod.
type TurnClock struct {
	scheduler Scheduler
	report    func(ElapsedTime)

	startedAt time.Time
	running   bool
	last      ElapsedTime
	cancel    Cancel
}

// NewTurnClock creates a stopped clock. report is called on every tick and on stop.
func NewTurnClock(scheduler Scheduler, report func(ElapsedTime)) *TurnClock {
	if report == nil {
		report = func(ElapsedTime) {}
	}
	return &TurnClock{
		scheduler: scheduler,
		report:    report,
		last:      stoppedElapsed(),
	}
}

// Start captures the start time and schedules the periodic tick.
// Starting a running clock restarts it from zero.
func (c *TurnClock) Start() {
	c.halt()
	c.startedAt = c.scheduler.Now()
	c.running = true
	c.last = formatElapsed(0, true)
	c.cancel = c.scheduler.Every(ClockPeriod, c.tick)
}

func (c *TurnClock) tick() {
	if !c.running {
		return
	}
	c.last = formatElapsed(c.scheduler.Now().Sub(c.startedAt), true)
	c.report(c.last)
}

// Stop cancels the tick and reports the placeholder. It is idempotent.
func (c *TurnClock) Stop() {
	wasRunning := c.running
	c.halt()
	c.last = stoppedElapsed()
	if wasRunning {
		c.report(c.last)
	}
}

// Finish cancels the tick and keeps the final elapsed value.
func (c *TurnClock) Finish() {
	if !c.running {
		return
	}
	final := formatElapsed(c.scheduler.Now().Sub(c.startedAt), false)
	c.halt()
	c.last = final
	c.report(c.last)
}

// Elapsed returns the last reading.
func (c *TurnClock) Elapsed() ElapsedTime {
	return c.last
}

// StartedAt is zero until the clock has been started.
func (c *TurnClock) StartedAt() time.Time {
	return c.startedAt
}

func (c *TurnClock) halt() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.running = false
}

func formatElapsed(d time.Duration, running bool) ElapsedTime {
	total := int(d / time.Second)
	if total < 0 {
		total = 0
	}
	m, s := total/60, total%60
	return ElapsedTime{
		Minutes: m,
		Seconds: s,
		Display: fmt.Sprintf("%02d:%02d", m, s),
		Running: running,
	}
}

func stoppedElapsed() ElapsedTime {
	return ElapsedTime{Display: TimePlaceholder}
}
