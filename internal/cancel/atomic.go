package cancel

import "sync/atomic"

// AtomicCanceler signals cancellation through an atomic.Bool.
//
// Done() is a single atomic load, cheap enough to sit in front of every
// TryDequeue in a spin loop. Pair it with Watch to follow a context.
type AtomicCanceler struct {
	done atomic.Bool
}

var _ Canceler = (*AtomicCanceler)(nil)

// NewAtomic creates a new AtomicCanceler.
func NewAtomic() *AtomicCanceler {
	return &AtomicCanceler{}
}

// Done returns true if cancellation has been triggered.
func (a *AtomicCanceler) Done() bool {
	return a.done.Load()
}

// Cancel triggers cancellation. Subsequent calls are no-ops.
func (a *AtomicCanceler) Cancel() {
	a.done.Store(true)
}

// Reset clears the cancellation flag so the canceler can be reused between
// runs. Not safe to call concurrently with Done() or Cancel().
func (a *AtomicCanceler) Reset() {
	a.done.Store(false)
}
