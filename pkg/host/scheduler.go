// Package host models the browser facilities the viewer depends on:
// a cooperative timer, the clipboard and element layout.
//
// Everything here is single-threaded. Scheduled callbacks run only when
// the owner of the Loop drives it, which lets tests step through virtual
// time and lets the command-line tool drain all pending work before
// rendering the document.
package host

import (
	"sort"
	"time"
)

// Handle identifies a scheduled task
type Handle uint64

// Scheduler is the timer collaborator
type Scheduler interface {
	// Schedule runs fn after d has elapsed. A zero handle is never returned.
	Schedule(d time.Duration, fn func()) Handle
	// Cancel drops a pending task. Unknown or finished handles are ignored.
	Cancel(h Handle)
}

type task struct {
	handle Handle
	due    time.Duration
	fn     func()
}

// Loop is a virtual-time Scheduler. Tasks run in due-time order and, for
// equal due times, in the order they were scheduled.
type Loop struct {
	now     time.Duration
	next    Handle
	pending []task
}

// NewLoop creates an empty loop at time zero
func NewLoop() *Loop {
	return &Loop{}
}

// Now returns the current virtual time
func (l *Loop) Now() time.Duration {
	return l.now
}

// Pending returns the number of tasks waiting to run
func (l *Loop) Pending() int {
	return len(l.pending)
}

// Schedule implements Scheduler
func (l *Loop) Schedule(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	l.next++
	l.pending = append(l.pending, task{handle: l.next, due: l.now + d, fn: fn})
	sort.SliceStable(l.pending, func(i, j int) bool {
		return l.pending[i].due < l.pending[j].due
	})
	return l.next
}

// Cancel implements Scheduler
func (l *Loop) Cancel(h Handle) {
	for i, t := range l.pending {
		if t.handle == h {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return
		}
	}
}

// Step runs the earliest pending task, advancing the clock to its due
// time. It reports false when nothing was pending.
func (l *Loop) Step() bool {
	if len(l.pending) == 0 {
		return false
	}
	t := l.pending[0]
	l.pending = l.pending[1:]
	if t.due > l.now {
		l.now = t.due
	}
	t.fn()
	return true
}

// Advance moves the clock forward by d, running every task that falls
// due on the way, including tasks scheduled by those tasks.
func (l *Loop) Advance(d time.Duration) {
	target := l.now + d
	for len(l.pending) > 0 && l.pending[0].due <= target {
		l.Step()
	}
	l.now = target
}

// RunUntilIdle runs tasks until none remain and returns how many ran.
// limit guards against tasks that keep rescheduling themselves; zero
// means no limit.
func (l *Loop) RunUntilIdle(limit int) int {
	ran := 0
	for l.Step() {
		ran++
		if limit > 0 && ran >= limit {
			break
		}
	}
	return ran
}
