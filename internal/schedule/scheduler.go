// Package schedule runs deferred game callbacks on a virtual clock.
//
// The owner advances the clock explicitly: the terminal loop feeds it
// wall-clock deltas, tests feed it exact durations. Callbacks run inside
// Advance on the caller's goroutine, one at a time, in due order. A Scheduler
// is not safe for concurrent use.
package schedule

import (
	"container/heap"
	"time"
)

// Token identifies a scheduled event for cancellation.
type Token uint64

type event struct {
	id       Token
	due      time.Duration
	interval time.Duration // > 0 for recurring events
	fn       func()
	index    int
}

type eventQueue []*event

func (q eventQueue) Len() int { return len(q) }
func (q eventQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].id < q[j].id
}
func (q eventQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *eventQueue) Push(x any) {
	e := x.(*event)
	e.index = len(*q)
	*q = append(*q, e)
}
func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}

// Scheduler is a virtual-time queue of one-shot and recurring callbacks.
type Scheduler struct {
	now    time.Duration
	nextID Token
	queue  eventQueue
	live   map[Token]*event
	epoch  uint64
}

// New returns an empty Scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{live: make(map[Token]*event)}
}

// Now returns the virtual time elapsed since creation.
func (s *Scheduler) Now() time.Duration { return s.now }

// Epoch counts how many times Reset has been called.
func (s *Scheduler) Epoch() uint64 { return s.epoch }

// Pending returns the number of scheduled events.
func (s *Scheduler) Pending() int { return len(s.queue) }

// After runs fn once, d after the current virtual time.
func (s *Scheduler) After(d time.Duration, fn func()) Token {
	return s.push(d, 0, fn)
}

// Every runs fn each interval, first at now+interval. interval must be positive.
func (s *Scheduler) Every(interval time.Duration, fn func()) Token {
	if interval <= 0 {
		interval = time.Nanosecond
	}
	return s.push(interval, interval, fn)
}

func (s *Scheduler) push(d, interval time.Duration, fn func()) Token {
	if d < 0 {
		d = 0
	}
	s.nextID++
	e := &event{id: s.nextID, due: s.now + d, interval: interval, fn: fn}
	heap.Push(&s.queue, e)
	s.live[e.id] = e
	return e.id
}

// Cancel removes a pending event. Reports whether it was still pending.
func (s *Scheduler) Cancel(t Token) bool {
	e, ok := s.live[t]
	if !ok {
		return false
	}
	delete(s.live, t)
	if e.index >= 0 {
		heap.Remove(&s.queue, e.index)
	}
	return true
}

// Reset drops every pending event. It is the cancellation point for a game
// session: callbacks scheduled before Reset never fire.
func (s *Scheduler) Reset() {
	s.queue = nil
	s.live = make(map[Token]*event)
	s.epoch++
}

// NextDue returns the time until the earliest pending event.
func (s *Scheduler) NextDue() (time.Duration, bool) {
	if len(s.queue) == 0 {
		return 0, false
	}
	return s.queue[0].due - s.now, true
}

// Advance moves the clock forward by d, firing every event that falls due,
// including events scheduled by callbacks during the advance. Returns the
// number of callbacks run.
func (s *Scheduler) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	target := s.now + d
	fired := 0
	for len(s.queue) > 0 && s.queue[0].due <= target {
		e := heap.Pop(&s.queue).(*event)
		s.now = e.due
		// Re-queue before running so the callback can cancel its own recurrence.
		if e.interval > 0 {
			e.due += e.interval
			heap.Push(&s.queue, e)
		} else {
			delete(s.live, e.id)
		}
		e.fn()
		fired++
	}
	s.now = target
	return fired
}
