// Package event is the fight event feed: a lock-free ring buffer the engine
// pushes to and the UI loop drains, plus a typed router for consumers.
package event

import (
	"sync/atomic"

	"github.com/lixenwraith/dice-duel/parameter"
)

// Queue is a lock-free MPSC ring buffer of fight events
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK
//   - Consume: Single consumer (UI loop or simulator)
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest events overwritten when full
type Queue struct {
	events    [parameter.EventQueueSize]FightEvent
	published [parameter.EventQueueSize]atomic.Bool // True = slot fully written
	head      atomic.Uint64                         // Read index
	tail      atomic.Uint64                         // Write index
	dropped   atomic.Uint64
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an event, overwriting the oldest unread one when full
func (q *Queue) Push(ev FightEvent) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & parameter.EventBufferMask

			q.events[idx] = ev
			q.published[idx].Store(true) // MUST be after write

			currentHead := q.head.Load()
			if nextTail-currentHead > parameter.EventQueueSize {
				if q.head.CompareAndSwap(currentHead, nextTail-parameter.EventQueueSize) {
					q.dropped.Add(1)
				}
			}
			return
		}
	}
}

// Consume drains the feed in push order for the single consumer
// Events overwritten since the last drain are skipped; a slot whose producer
// is still writing ends the batch and is picked up by the next drain
func (q *Queue) Consume() []FightEvent {
	for {
		observed, tail := q.head.Load(), q.tail.Load()
		if tail == observed {
			return nil
		}
		head := observed
		if tail-head > parameter.EventQueueSize {
			head = tail - parameter.EventQueueSize
		}

		batch := make([]FightEvent, 0, tail-head)
		for seq := head; seq < tail; seq++ {
			slot := seq & parameter.EventBufferMask
			if !q.published[slot].Load() {
				break
			}
			batch = append(batch, q.events[slot])
			q.published[slot].Store(false)
		}

		// A producer moved head past an overwritten event, retry from the new head
		if !q.head.CompareAndSwap(observed, head+uint64(len(batch))) {
			continue
		}
		if len(batch) == 0 {
			return nil
		}
		return batch
	}
}

// Len returns the approximate number of pending events
func (q *Queue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	diff := int(tail - head)
	if diff > parameter.EventQueueSize {
		return parameter.EventQueueSize
	}
	return diff
}

// Dropped returns how many unread events were overwritten
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
