// Package event carries messages between decoupled systems: a per-owner
// Queue with frame-delayed entries, and a Manager that dispatches events to
// subscribers by their concrete type.
package event

import "reflect"

// Kind identifies an event by its concrete Go type
type Kind = reflect.Type

// KindOf returns the kind of an event value
func KindOf(ev any) Kind { return reflect.TypeOf(ev) }

// KindFor returns the kind for event type E. E should be a concrete type:
// events are always dispatched by their dynamic type.
func KindFor[E any]() Kind { return reflect.TypeFor[E]() }

// delayed is an event waiting for its countdown to reach zero
type delayed struct {
	ev        any
	remaining int
}

// Queue holds events ready for the next dispatch pass plus a bucket of
// delayed events counting down in frames. Not safe for concurrent use.
type Queue struct {
	pending []any
	head    int
	delayed []delayed
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Add appends an event for the next dispatch pass
func (q *Queue) Add(ev any) {
	q.pending = append(q.pending, ev)
}

// AddDelayed schedules an event to become ready after frames calls to Advance.
// A non-positive delay is the same as Add.
func (q *Queue) AddDelayed(ev any, frames int) {
	if frames <= 0 {
		q.Add(ev)
		return
	}
	q.delayed = append(q.delayed, delayed{ev: ev, remaining: frames})
}

// Pop removes the oldest ready event
func (q *Queue) Pop() (any, bool) {
	if q.head >= len(q.pending) {
		return nil, false
	}
	ev := q.pending[q.head]
	q.pending[q.head] = nil
	q.head++
	if q.head == len(q.pending) {
		q.pending = q.pending[:0]
		q.head = 0
	}
	return ev, true
}

// Len returns the number of ready events
func (q *Queue) Len() int { return len(q.pending) - q.head }

// Delayed returns the number of events still counting down
func (q *Queue) Delayed() int { return len(q.delayed) }

// Advance removes one frame from every delayed countdown. Events reaching
// zero become ready, in the order they were scheduled.
func (q *Queue) Advance() {
	kept := q.delayed[:0]
	for _, d := range q.delayed {
		d.remaining--
		if d.remaining <= 0 {
			q.pending = append(q.pending, d.ev)
			continue
		}
		kept = append(kept, d)
	}
	clear(q.delayed[len(kept):])
	q.delayed = kept
}

// Clear drops every ready and delayed event
func (q *Queue) Clear() {
	clear(q.pending)
	q.pending = q.pending[:0]
	q.head = 0
	clear(q.delayed)
	q.delayed = q.delayed[:0]
}

// Source is implemented by systems that own a queue the scene drains every frame
type Source interface {
	Events() *Queue
}
