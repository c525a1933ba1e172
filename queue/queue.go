// Package queue provides SPSC queue implementations.
//
// The main type is LinkedQueue, an unbounded single-producer single-consumer
// FIFO that recycles consumed nodes instead of allocating one per Enqueue.
// Two bounded implementations are kept alongside it for comparison:
//   - ChannelQueue: Standard library approach using buffered channels
//   - RingBuffer: Lock-free ring buffer with runtime SPSC guards
//
// # SPSC Safety (IMPORTANT)
//
// All queues here are Single-Producer Single-Consumer.
// It is NOT safe for multiple goroutines to push or pop concurrently.
//
// RingBuffer panics when it catches concurrent Push() or Pop() calls.
// LinkedQueue does not check: its fast path has no atomic read-modify-write
// at all, so misuse silently corrupts the queue.
//
// Correct usage:
//   - Exactly ONE goroutine calls Enqueue()/Push()
//   - Exactly ONE goroutine calls TryDequeue()/Dequeue()/Pop()
//   - These may be the same goroutine or different goroutines
//
// Consumers that want to wait must poll; nothing here blocks.
package queue

// Queue is a single-producer single-consumer queue.
//
// Implementations are non-blocking: Push returns false if full,
// Pop returns false if empty.
type Queue[T any] interface {
	// Push adds an item to the queue.
	// Returns false if the queue is full.
	Push(T) bool

	// Pop removes and returns an item from the queue.
	// Returns false if the queue is empty.
	Pop() (T, bool)
}

var (
	_ Queue[int] = (*LinkedQueue[int])(nil)
	_ Queue[int] = (*RingBuffer[int])(nil)
	_ Queue[int] = (*ChannelQueue[int])(nil)
)
