// Package timer runs delayed callbacks on the tick goroutine.
//
// A Queue never spawns goroutines: callbacks fire from Advance, in
// non-decreasing time order and in scheduling order for equal times.
// Callbacks bound to an entity are dropped when that entity is no longer
// alive at fire time.
package timer

import (
	"container/heap"
	"time"

	"github.com/plus3/cubekiller/ecs"
)

// Func is a delayed action. It receives the time it was due at.
type Func func(due time.Duration)

type entry struct {
	at     time.Duration
	seq    uint64
	entity ecs.EntityId
	fn     Func
}

type entries []*entry

func (e entries) Len() int { return len(e) }
func (e entries) Less(i, j int) bool {
	if e[i].at != e[j].at {
		return e[i].at < e[j].at
	}
	return e[i].seq < e[j].seq
}
func (e entries) Swap(i, j int) { e[i], e[j] = e[j], e[i] }
func (e *entries) Push(x any) { *e = append(*e, x.(*entry)) }
func (e *entries) Pop() any {
	old := *e
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*e = old[:n-1]
	return item
}

// Queue is a time-ordered list of pending callbacks. The zero value is ready
// to use. It is not safe for concurrent use.
type Queue struct {
	items entries
	seq   uint64

	fired   uint64
	skipped uint64
}

// Schedule queues fn to fire once the clock reaches at. If entity is
// non-zero the callback is skipped unless the entity is still alive then.
func (q *Queue) Schedule(at time.Duration, entity ecs.EntityId, fn Func) {
	q.seq++
	heap.Push(&q.items, &entry{at: at, seq: q.seq, entity: entity, fn: fn})
}

// Advance fires every callback due at or before now. Callbacks may schedule
// further callbacks; those also fire in this call if they are already due.
// alive may be nil, in which case every callback fires.
func (q *Queue) Advance(now time.Duration, alive func(ecs.EntityId) bool) int {
	n := 0
	for len(q.items) > 0 && q.items[0].at <= now {
		e := heap.Pop(&q.items).(*entry)
		if e.entity != 0 && alive != nil && !alive(e.entity) {
			q.skipped++
			continue
		}
		e.fn(e.at)
		q.fired++
		n++
	}
	return n
}

// Len returns the number of pending callbacks.
func (q *Queue) Len() int {
	return len(q.items)
}

// Next returns the due time of the earliest pending callback.
func (q *Queue) Next() (time.Duration, bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	return q.items[0].at, true
}

// Clear drops every pending callback.
func (q *Queue) Clear() {
	clear(q.items)
	q.items = q.items[:0]
}

// Stats reports lifetime counts of fired and skipped callbacks.
func (q *Queue) Stats() (fired, skipped uint64) {
	return q.fired, q.skipped
}
