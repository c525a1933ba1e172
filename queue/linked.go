package queue

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// LinkedQueue is an unbounded lock-free SPSC (Single-Producer Single-Consumer)
// FIFO queue built on a singly linked list with node recycling.
//
// WARNING: exactly one goroutine may call the producer methods (Enqueue, Push,
// Stats) and exactly one goroutine may call the consumer methods (TryDequeue,
// Dequeue, Peek, Empty, Pop). Unlike RingBuffer there are no runtime guards:
// misuse is not detected and results in undefined behaviour.
//
// Every field has a single writer, so no lock or compare-and-swap is needed.
// Ordering comes from four synchronisation points:
//
//  1. allocNode: acquire load of tail before refreshing tailCopy.
//  2. Enqueue:   release store of head.next publishes the filled node.
//  3. TryDequeue: acquire load of tail.next before reading the item.
//  4. TryDequeue: release store of tail after the item has been read.
//
// Each hot field lives on its own cache line so the producer's writes do not
// invalidate the line the consumer is polling.
//
// A LinkedQueue must be created with NewLinked and must not be copied.
type LinkedQueue[T any] struct {
	_ cpu.CacheLinePad

	// first is the oldest node that may be reused. Producer owned.
	first *node[T]
	stats Stats

	_ cpu.CacheLinePad

	// head is the newest published node. Producer owned.
	head *node[T]

	_ cpu.CacheLinePad

	// tailCopy is the producer's last snapshot of tail; it bounds the free list.
	tailCopy *node[T]

	_ cpu.CacheLinePad

	// tail is the node before the next item to dequeue. Consumer owned.
	tail atomic.Pointer[node[T]]

	_ cpu.CacheLinePad
}

// Stats counts producer-side node usage.
//
// Stats must be read from the producer goroutine, or after the producer has
// been joined.
type Stats struct {
	// Allocated is the number of nodes created, including the sentinel.
	Allocated uint64
	// Recycled is the number of enqueues served from the free list.
	Recycled uint64
}

// NewLinked creates an empty LinkedQueue holding a single sentinel node.
func NewLinked[T any]() *LinkedQueue[T] {
	sentinel := &node[T]{}

	q := &LinkedQueue[T]{
		first:    sentinel,
		head:     sentinel,
		tailCopy: sentinel,
	}
	q.tail.Store(sentinel)
	q.stats.Allocated = 1

	return q
}

// Enqueue appends item to the back of the queue. It never fails.
//
// SPSC CONTRACT: Only ONE goroutine may call Enqueue().
func (q *LinkedQueue[T]) Enqueue(item T) {
	n := q.allocNode(item)

	// Release store: the item written in allocNode is visible to any
	// consumer that observes this link.
	q.head.next.Store(n)
	q.head = n
}

// TryDequeue removes and returns the oldest item.
// Returns false if the queue is empty; it never blocks.
//
// SPSC CONTRACT: Only ONE goroutine may call TryDequeue().
func (q *LinkedQueue[T]) TryDequeue() (T, bool) {
	tail := q.tail.Load()

	next := tail.next.Load()
	if next == nil {
		var zero T
		return zero, false
	}

	item := next.item

	// next becomes the new sentinel; drop its reference so a node parked in
	// the free list does not keep the item alive.
	var zero T
	next.item = zero

	// Release store: the read above completes before the producer can
	// recycle the old tail.
	q.tail.Store(next)

	return item, true
}

// Dequeue removes and returns the oldest item, or the zero value of T if the
// queue is empty.
//
// Callers cannot tell an empty queue apart from a dequeued zero value. Use
// TryDequeue when that matters.
//
// SPSC CONTRACT: Only ONE goroutine may call Dequeue().
func (q *LinkedQueue[T]) Dequeue() T {
	item, _ := q.TryDequeue()
	return item
}

// Peek returns the oldest item without removing it.
// Returns false if the queue is empty.
//
// Consumer only.
func (q *LinkedQueue[T]) Peek() (T, bool) {
	next := q.tail.Load().next.Load()
	if next == nil {
		var zero T
		return zero, false
	}
	return next.item, true
}

// Empty reports whether the consumer currently sees no items.
// A concurrent Enqueue may make it stale immediately.
//
// Consumer only.
func (q *LinkedQueue[T]) Empty() bool {
	return q.tail.Load().next.Load() == nil
}

// Push adds an item to the queue. It always returns true.
// Push makes LinkedQueue usable wherever a Queue is expected.
func (q *LinkedQueue[T]) Push(v T) bool {
	q.Enqueue(v)
	return true
}

// Pop removes and returns an item from the queue.
// Returns false if the queue is empty.
func (q *LinkedQueue[T]) Pop() (T, bool) {
	return q.TryDequeue()
}

// Stats returns the producer-side node counters.
func (q *LinkedQueue[T]) Stats() Stats {
	return q.stats
}
