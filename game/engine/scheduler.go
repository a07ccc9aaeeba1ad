package engine

import (
	"sort"
	"sync"
	"time"
)

// Cancel stops a scheduled task. Calling it more than once is safe.
type Cancel func()

// Scheduler runs deferred and periodic tasks for a game.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Cancel
	Every(d time.Duration, fn func()) Cancel
}

// LoopScheduler fires real timers and posts their callbacks onto a Loop, so
// every task runs serialized with player actions.
type LoopScheduler struct {
	loop *Loop
}

// NewLoopScheduler creates a scheduler bound to the given loop.
func NewLoopScheduler(loop *Loop) *LoopScheduler {
	return &LoopScheduler{loop: loop}
}

// Now returns the wall clock time.
func (s *LoopScheduler) Now() time.Time {
	return time.Now()
}

// AfterFunc posts fn onto the loop after d.
func (s *LoopScheduler) AfterFunc(d time.Duration, fn func()) Cancel {
	var (
		mu        sync.Mutex
		cancelled bool
	)
	timer := time.AfterFunc(d, func() {
		s.loop.Post(func() {
			mu.Lock()
			skip := cancelled
			mu.Unlock()
			if !skip {
				fn()
			}
		})
	})
	return func() {
		mu.Lock()
		cancelled = true
		mu.Unlock()
		timer.Stop()
	}
}

// Every posts fn onto the loop every d until cancelled.
func (s *LoopScheduler) Every(d time.Duration, fn func()) Cancel {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	var once sync.Once
	var (
		mu        sync.Mutex
		cancelled bool
	)

	go func() {
		for {
			select {
			case <-ticker.C:
				s.loop.Post(func() {
					mu.Lock()
					skip := cancelled
					mu.Unlock()
					if !skip {
						fn()
					}
				})
			case <-done:
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			mu.Lock()
			cancelled = true
			mu.Unlock()
			ticker.Stop()
			close(done)
		})
	}
}

type manualTask struct {
	id       int
	at       time.Time
	period   time.Duration
	fn       func()
	canceled bool
}

// ManualScheduler is a deterministic Scheduler driven by Advance. Tasks run on
// the goroutine calling Advance, ordered by due time and then by creation.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Time
	nextID int
	tasks  []*manualTask
}

// NewManualScheduler creates a scheduler whose clock starts at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// Now returns the simulated time.
func (m *ManualScheduler) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc schedules fn at Now()+d.
func (m *ManualScheduler) AfterFunc(d time.Duration, fn func()) Cancel {
	return m.add(d, 0, fn)
}

// Every schedules fn at every multiple of d from Now().
func (m *ManualScheduler) Every(d time.Duration, fn func()) Cancel {
	if d <= 0 {
		d = time.Nanosecond
	}
	return m.add(d, d, fn)
}

func (m *ManualScheduler) add(d, period time.Duration, fn func()) Cancel {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	task := &manualTask{id: m.nextID, at: m.now.Add(d), period: period, fn: fn}
	m.tasks = append(m.tasks, task)

	return func() {
		m.mu.Lock()
		task.canceled = true
		m.mu.Unlock()
	}
}

// Pending returns the number of tasks still waiting to run.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.canceled {
			n++
		}
	}
	return n
}

// RunPending runs every task already due without moving the clock.
func (m *ManualScheduler) RunPending() {
	m.Advance(0)
}

// Advance moves the clock forward by d, running due tasks in order. Tasks
// scheduled by a running task run in the same call if they fall due.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		task := m.nextDue(target)
		if task == nil {
			break
		}
		task.fn()
	}

	m.mu.Lock()
	m.now = target
	m.mu.Unlock()
}

// nextDue pops the earliest task due at or before target and moves the clock to it.
func (m *ManualScheduler) nextDue(target time.Time) *manualTask {
	m.mu.Lock()
	defer m.mu.Unlock()

	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.canceled {
			live = append(live, t)
		}
	}
	m.tasks = live

	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].at.Equal(m.tasks[j].at) {
			return m.tasks[i].id < m.tasks[j].id
		}
		return m.tasks[i].at.Before(m.tasks[j].at)
	})

	if len(m.tasks) == 0 || m.tasks[0].at.After(target) {
		return nil
	}

	task := m.tasks[0]
	m.now = task.at
	if task.period > 0 {
		next := *task
		task.at = task.at.Add(task.period)
		return &next
	}
	m.tasks = m.tasks[1:]
	return task
}
