package editor

import (
	"context"
	"errors"

	"github.com/jonathan/resume-editor/internal/scheduler"
)

// ErrLoopStopped is returned when work is submitted to a loop that has exited.
var ErrLoopStopped = errors.New("event loop stopped")

// Loop is the single logical thread that owns a Session. Event handlers and
// fired debounce actions both run here, one at a time and to completion.
type Loop struct {
	tasks chan func()
	done  chan struct{}
}

// NewLoop creates a loop with a task queue of the given size.
func NewLoop(queue int) *Loop {
	if queue <= 0 {
		queue = 64
	}
	return &Loop{tasks: make(chan func(), queue), done: make(chan struct{})}
}

// Run executes tasks until ctx is cancelled. It returns nil on cancellation.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return nil
		case task := <-l.tasks:
			task()
		}
	}
}

// Post queues fn without waiting for it. It reports false when the loop has
// exited.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do runs fn on the loop and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		fn()
	}
	select {
	case l.tasks <- task:
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Executor hands fired debounce actions to the loop.
func (l *Loop) Executor() scheduler.Executor {
	return func(action func()) {
		l.Post(action)
	}
}
