package queue

import "sync/atomic"

// node is one link of the LinkedQueue chain.
//
// While a node sits in the free list it belongs to the producer. While it sits
// between tail and head each field has one writer at a time: the producer
// fills item and publishes next, the consumer reads item and then clears it
// before handing the node back by advancing tail.
type node[T any] struct {
	next atomic.Pointer[node[T]]
	item T
}

// allocNode returns a node holding item with a nil successor.
//
// Producer only. Nodes in [first, tailCopy) have already been passed by the
// consumer and are reused before anything new is allocated. The cross-core
// read of tail only happens once that private range runs dry.
func (q *LinkedQueue[T]) allocNode(item T) *node[T] {
	if n := q.recycle(item); n != nil {
		return n
	}

	// Acquire load: pairs with the consumer's release store of tail, so every
	// node before the new tailCopy has been fully read and cleared.
	q.tailCopy = q.tail.Load()

	if n := q.recycle(item); n != nil {
		return n
	}

	q.stats.Allocated++
	return &node[T]{item: item}
}

// recycle pops the oldest free node, or returns nil when first has caught up
// with tailCopy.
func (q *LinkedQueue[T]) recycle(item T) *node[T] {
	if q.first == q.tailCopy {
		return nil
	}

	n := q.first
	q.first = n.next.Load()

	n.item = item
	n.next.Store(nil)

	q.stats.Recycled++
	return n
}
