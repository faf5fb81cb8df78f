// Package scheduler provides keyed trailing-edge debouncing.
//
// Scheduling an action under a key cancels whatever was pending under the
// same key, so a burst of calls produces exactly one execution of the last
// action once the burst has been quiet for the delay.
package scheduler

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/resume-editor/internal/metrics"
)

// Executor runs a fired action. The editor hands actions to its event loop so
// they never run concurrently with event handlers.
type Executor func(action func())

// Inline runs actions directly on the timer goroutine.
func Inline(action func()) {
	action()
}

type entry struct {
	timer  *time.Timer
	action func()
}

// Debouncer holds at most one pending action per key.
type Debouncer struct {
	mu      sync.Mutex
	exec    Executor
	pending map[string]*entry
	stopped bool
}

// New creates a Debouncer that runs fired actions through exec. A nil exec
// runs them inline.
func New(exec Executor) *Debouncer {
	if exec == nil {
		exec = Inline
	}
	return &Debouncer{exec: exec, pending: make(map[string]*entry)}
}

// Schedule runs action after delay unless another Schedule, Cancel, Flush or
// Stop for the same key happens first.
func (d *Debouncer) Schedule(key string, delay time.Duration, action func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	if prev, ok := d.pending[key]; ok {
		prev.timer.Stop()
		metrics.DebounceCancelled.WithLabelValues(key).Inc()
	}

	e := &entry{action: action}
	d.pending[key] = e
	e.timer = time.AfterFunc(delay, func() {
		d.exec(func() { d.run(key, e) })
	})
}

// run executes e only if it is still the pending entry for key. An entry
// replaced between its timer firing and the executor picking it up is dropped.
func (d *Debouncer) run(key string, e *entry) {
	d.mu.Lock()
	if cur, ok := d.pending[key]; !ok || cur != e {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()

	e.action()
}

// Cancel discards the action pending under key and reports whether there was one.
func (d *Debouncer) Cancel(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.pending[key]
	if !ok {
		return false
	}
	e.timer.Stop()
	delete(d.pending, key)
	return true
}

// CancelPrefix discards every action pending under a key starting with
// prefix and returns how many were dropped. An empty prefix matches all keys.
func (d *Debouncer) CancelPrefix(prefix string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for k, e := range d.pending {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		e.timer.Stop()
		delete(d.pending, k)
		n++
	}
	return n
}

// Len returns the number of pending actions.
func (d *Debouncer) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Pending reports whether an action is waiting under key.
func (d *Debouncer) Pending(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[key]
	return ok
}

// Flush runs every pending action immediately on the calling goroutine, in
// key order. The caller must own the state the actions touch.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	keys := make([]string, 0, len(d.pending))
	for k := range d.pending {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	actions := make([]func(), 0, len(keys))
	for _, k := range keys {
		e := d.pending[k]
		e.timer.Stop()
		actions = append(actions, e.action)
		delete(d.pending, k)
	}
	d.mu.Unlock()

	for _, action := range actions {
		action()
	}
}

// Drain flushes until nothing is pending, so actions scheduled by flushed
// actions run too.
func (d *Debouncer) Drain() {
	for d.Len() > 0 {
		d.Flush()
	}
}

// Stop cancels everything pending and ignores later Schedule calls.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for k, e := range d.pending {
		e.timer.Stop()
		delete(d.pending, k)
	}
	d.stopped = true
}
