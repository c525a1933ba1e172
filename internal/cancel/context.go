package cancel

import "context"

// ContextCanceler wraps context.Context for cancellation signaling.
//
// Done() performs a non-blocking select on ctx.Done(). In a consumer spin
// loop that select runs once per poll, empty or not, so it is the slow
// reference point for AtomicCanceler.
type ContextCanceler struct {
	ctx    context.Context
	cancel context.CancelFunc
}

var _ Canceler = (*ContextCanceler)(nil)

// NewContext creates a ContextCanceler derived from parent.
// Cancelling parent also cancels the ContextCanceler.
func NewContext(parent context.Context) *ContextCanceler {
	ctx, cancel := context.WithCancel(parent)
	return &ContextCanceler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Done reports whether the context has been cancelled.
func (c *ContextCanceler) Done() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

// Cancel cancels the derived context.
func (c *ContextCanceler) Cancel() {
	c.cancel()
}

// Context returns the derived context, for code that selects on it.
func (c *ContextCanceler) Context() context.Context {
	return c.ctx
}
