package engine

import (
	"context"
	"sync"
)

// Loop serializes all access to a Game on a single goroutine.
type Loop struct {
	actions chan func()
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// NewLoop starts a loop goroutine. Close it when the owning session ends.
func NewLoop() *Loop {
	l := &Loop{
		actions: make(chan func(), 64),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.stopped)
	for {
		select {
		case fn := <-l.actions:
			fn()
		case <-l.done:
			return
		}
	}
}

// Post enqueues fn without waiting. It returns false once the loop is closed.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.actions <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do runs fn on the loop and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	wrapped := func() {
		defer close(finished)
		fn()
	}

	select {
	case <-l.done:
		return ErrLoopClosed
	default:
	}

	select {
	case l.actions <- wrapped:
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-l.stopped:
		// the loop may have exited after accepting the action
		select {
		case <-finished:
			return nil
		default:
			return ErrLoopClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the loop. Queued actions that have not started are dropped.
func (l *Loop) Close() {
	l.once.Do(func() {
		close(l.done)
	})
	<-l.stopped
}
