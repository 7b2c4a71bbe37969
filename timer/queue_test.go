package timer_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/plus3/cubekiller/ecs"
	"github.com/plus3/cubekiller/timer"
	"github.com/stretchr/testify/assert"
)

func TestFiresInTimeOrder(t *testing.T) {
	var q timer.Queue
	var order []string

	q.Schedule(300*time.Millisecond, 0, func(time.Duration) { order = append(order, "c") })
	q.Schedule(100*time.Millisecond, 0, func(time.Duration) { order = append(order, "a") })
	q.Schedule(300*time.Millisecond, 0, func(time.Duration) { order = append(order, "d") })
	q.Schedule(200*time.Millisecond, 0, func(time.Duration) { order = append(order, "b") })

	assert.Equal(t, 0, q.Advance(50*time.Millisecond, nil))
	assert.Equal(t, 2, q.Advance(200*time.Millisecond, nil))
	assert.Equal(t, 2, q.Advance(time.Second, nil))
	assert.Equal(t, []string{"a", "b", "c", "d"}, order)
	assert.Equal(t, 0, q.Len())
}

func TestSkipsDeadEntities(t *testing.T) {
	var q timer.Queue
	alive := map[ecs.EntityId]bool{1: true, 2: false}
	var fired []ecs.EntityId

	for _, id := range []ecs.EntityId{1, 2, 3} {
		q.Schedule(time.Second, id, func(time.Duration) { fired = append(fired, id) })
	}

	q.Advance(time.Second, func(id ecs.EntityId) bool { return alive[id] })

	assert.Equal(t, []ecs.EntityId{1}, fired)
	f, s := q.Stats()
	assert.Equal(t, uint64(1), f)
	assert.Equal(t, uint64(2), s)
}

func TestCallbackCanReschedule(t *testing.T) {
	var q timer.Queue
	var dues []time.Duration

	q.Schedule(time.Second, 0, func(due time.Duration) {
		dues = append(dues, due)
		q.Schedule(due, 0, func(due time.Duration) { dues = append(dues, due) })
		q.Schedule(due+time.Second, 0, func(due time.Duration) { dues = append(dues, due) })
	})

	assert.Equal(t, 2, q.Advance(1500*time.Millisecond, nil))
	assert.Equal(t, []time.Duration{time.Second, time.Second}, dues)

	next, ok := q.Next()
	assert.True(t, ok)
	assert.Equal(t, 2*time.Second, next)

	q.Clear()
	_, ok = q.Next()
	assert.False(t, ok)
}

func ExampleQueue() {
	var q timer.Queue
	q.Schedule(300*time.Millisecond, 7, func(due time.Duration) {
		fmt.Println("destroy entity 7 at", due)
	})

	q.Advance(100*time.Millisecond, nil)
	fmt.Println("pending:", q.Len())
	q.Advance(400*time.Millisecond, func(ecs.EntityId) bool { return true })

	// Output:
	// pending: 1
	// destroy entity 7 at 300ms
}
