// Package input carries key events from the polling side to the simulation
// and turns raw key state into the conflict-resolved map the playfield reads.
package input

import (
	"sync"

	"github.com/vovakirdan/tetrion/internal/core"
)

// DefaultCapacity is the number of events a Queue holds before dropping.
const DefaultCapacity = 64

// Queue is a bounded FIFO of input events.
//
// One goroutine pushes and one goroutine pops. Push never blocks: when the
// queue is full the event is dropped and Push returns false, so a stalled
// consumer cannot back up the input poller.
type Queue struct {
	mu     sync.Mutex
	buffer []core.Event // one slot stays empty to tell full from empty
	head   int          // next slot to read
	tail   int          // next slot to write
}

// NewQueue creates a queue holding up to capacity events.
// A capacity below 1 falls back to DefaultCapacity.
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Queue{
		buffer: make([]core.Event, capacity+1),
	}
}

// Cap returns the number of events the queue can hold.
func (q *Queue) Cap() int {
	return len(q.buffer) - 1
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.lenLocked()
}

func (q *Queue) lenLocked() int {
	n := q.tail - q.head
	if n < 0 {
		n += len(q.buffer)
	}
	return n
}

// IsEmpty reports whether there is nothing to pop.
func (q *Queue) IsEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.head == q.tail
}

// IsFull reports whether the next Push would be dropped.
func (q *Queue) IsFull() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.fullLocked()
}

func (q *Queue) fullLocked() bool {
	return (q.tail+1)%len(q.buffer) == q.head
}

// Push appends an event. It returns false and drops the event if the
// queue is at capacity.
func (q *Queue) Push(e core.Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.fullLocked() {
		return false
	}
	q.buffer[q.tail] = e
	q.tail = (q.tail + 1) % len(q.buffer)
	return true
}

// Pop removes and returns the oldest event.
// The boolean is false when the queue is empty.
func (q *Queue) Pop() (core.Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == q.tail {
		return core.Event{}, false
	}
	e := q.buffer[q.head]
	q.head = (q.head + 1) % len(q.buffer)
	return e, true
}

// Peek returns the oldest event without removing it.
func (q *Queue) Peek() (core.Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == q.tail {
		return core.Event{}, false
	}
	return q.buffer[q.head], true
}

// Clear drops every queued event.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.head = 0
	q.tail = 0
}
