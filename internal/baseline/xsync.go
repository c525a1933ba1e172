package baseline

import "github.com/puzpuzpuz/xsync"

// MPMC adapts xsync.MPMCQueue to queue.Queue.
//
// It is safe for any number of producers and consumers; in a two-goroutine
// pipeline it shows what that generality costs.
type MPMC struct {
	q *xsync.MPMCQueue
}

// NewMPMC creates an MPMC queue with the given capacity (at least 1).
func NewMPMC(size int) *MPMC {
	if size < 1 {
		size = 1
	}
	return &MPMC{q: xsync.NewMPMCQueue(size)}
}

// Push adds v. Returns false if the queue is full.
func (m *MPMC) Push(v int) bool {
	return m.q.TryEnqueue(v)
}

// Pop removes the oldest value. Returns false if the queue is empty.
func (m *MPMC) Pop() (int, bool) {
	v, ok := m.q.TryDequeue()
	if !ok {
		return 0, false
	}
	return v.(int), true
}
