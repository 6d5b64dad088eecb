// Package opqueue implements the bounded FIFO of slow Ops the Controller
// drains one at a time while Motion is Resting.
package opqueue

import (
	"github.com/jneem/brachiograph/internal/plotterr"
	"github.com/jneem/brachiograph/internal/protocol"
)

// Capacity is spec.md §4.5's N=32, chosen there to avoid stack overflow
// on the target MCU.
const Capacity = 32

// Queue is a bounded ring buffer of protocol.Op, grounded on
// original_source/crates/runner/src/main.rs's RingBuffer<Op,4>-backed
// OpQueue, generalized from its fixed capacity 4 to spec.md's N=32.
type Queue struct {
	buf   [Capacity]protocol.Op
	head  int
	count int
}

// Push enqueues op, returning a QueueFull error if the queue is at
// capacity (spec.md §4.5).
func (q *Queue) Push(op protocol.Op) error {
	if q.count == Capacity {
		return plotterr.New(plotterr.QueueFull, "op queue full (capacity %d)", Capacity)
	}
	tail := (q.head + q.count) % Capacity
	q.buf[tail] = op
	q.count++
	return nil
}

// Pop removes and returns the oldest Op, if any.
func (q *Queue) Pop() (protocol.Op, bool) {
	if q.count == 0 {
		return protocol.Op{}, false
	}
	op := q.buf[q.head]
	q.head = (q.head + 1) % Capacity
	q.count--
	return op, true
}

// Clear empties the queue. Per spec.md §4.4, this never aborts an
// in-flight Movement or Lifting transition; it only prevents queued work
// that hasn't started.
func (q *Queue) Clear() {
	q.head = 0
	q.count = 0
}

func (q *Queue) Len() int {
	return q.count
}

func (q *Queue) Full() bool {
	return q.count == Capacity
}
