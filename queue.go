package tinysh

import "sync/atomic"

// inputQueue is a lock-free single-producer/single-consumer byte ring.
// head is written only by the producer (Feed), tail only by the consumer
// (Run); each index has exactly one writer, which together with the atomic
// loads/stores is the whole synchronization story. The capacity is a power
// of two so wraparound is a mask.
//
// The queue holds at most InputQueueSize-1 bytes: head == tail means empty,
// head+1 == tail (mod capacity) means full.
type inputQueue struct {
	buf  [InputQueueSize]byte
	head atomic.Uint32 // producer-owned
	tail atomic.Uint32 // consumer-owned
}

// push enqueues one byte from the producer context. Returns false and drops
// the byte when the queue is full. Never blocks.
func (q *inputQueue) push(b byte) bool {
	head := q.head.Load()
	next := (head + 1) & (InputQueueSize - 1)
	if next == q.tail.Load() {
		return false
	}
	q.buf[head] = b
	q.head.Store(next)
	return true
}

// pop dequeues one byte in the consumer context. Never blocks.
func (q *inputQueue) pop() (byte, bool) {
	tail := q.tail.Load()
	if tail == q.head.Load() {
		return 0, false
	}
	b := q.buf[tail]
	q.tail.Store((tail + 1) & (InputQueueSize - 1))
	return b, true
}
