// Package sched provides the deferred and debounced execution primitives
// the table engine and UI are built on: a FIFO deferral interface, a
// quiet-window debouncer with last-write-wins semantics, and a sequence
// token for debouncing inside a message loop.
package sched

import (
	"sync"
	"time"
)

// Scheduler defers a function to run after the current turn of whatever
// loop owns it. Implementations must preserve submission order.
type Scheduler interface {
	Defer(fn func())
}

// Manual is a Scheduler that collects deferred functions until the owner
// drains them with Flush. Intended for tests and message loops that flush
// at a controlled point.
type Manual struct {
	pending []func()
}

// Defer queues fn.
func (m *Manual) Defer(fn func()) {
	m.pending = append(m.pending, fn)
}

// Pending reports how many functions are queued.
func (m *Manual) Pending() int {
	return len(m.pending)
}

// Flush runs every queued function in FIFO order and returns the number
// run. Functions queued while flushing run in the same pass, so a flush
// only returns once the queue is empty.
func (m *Manual) Flush() int {
	ran := 0
	for len(m.pending) > 0 {
		fn := m.pending[0]
		m.pending = m.pending[1:]
		fn()
		ran++
	}
	return ran
}

// Loop is a Scheduler backed by a single goroutine, so deferred functions
// run off the caller's stack but still strictly in FIFO order.
type Loop struct {
	mu      sync.Mutex
	pending []func()
	wake    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewLoop starts the loop goroutine.
func NewLoop() *Loop {
	l := &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

// Defer queues fn to run on the loop goroutine.
func (l *Loop) Defer(fn func()) {
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Close stops the loop. Functions already queued may be dropped.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
}

func (l *Loop) run() {
	for {
		select {
		case <-l.done:
			return
		case <-l.wake:
		}
		for {
			l.mu.Lock()
			if len(l.pending) == 0 {
				l.mu.Unlock()
				break
			}
			fn := l.pending[0]
			l.pending = l.pending[1:]
			l.mu.Unlock()
			fn()
		}
	}
}

// Debouncer coalesces a burst of triggers into one run of the most recent
// function after a quiet window. A new trigger cancels the previously
// scheduled run outright; there is never a backlog.
type Debouncer struct {
	quiet time.Duration
	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer returns a Debouncer with the given quiet window.
func NewDebouncer(quiet time.Duration) *Debouncer {
	return &Debouncer{quiet: quiet}
}

// Trigger schedules fn to run once the quiet window elapses with no
// further triggers. The last fn passed wins.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, fn)
}

// Cancel drops any pending run.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Token issues monotonically increasing sequence ids so a message loop can
// tell a live deferred event from a stale one: take Next when scheduling,
// check Live when the event arrives.
type Token struct {
	seq int
}

// Next invalidates all earlier ids and returns a fresh one.
func (t *Token) Next() int {
	t.seq++
	return t.seq
}

// Live reports whether id is the most recently issued one.
func (t *Token) Live(id int) bool {
	return id == t.seq
}
