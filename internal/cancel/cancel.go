// Package cancel provides stop signals for busy-polling loops.
//
// The SPSC queues never block, so both sides of a pipeline spin. Every spin
// iteration asks a Canceler whether to stop, which makes the cost of Done()
// part of the per-item cost. Two implementations are offered:
//   - ContextCanceler: Standard library approach using context.Context
//   - AtomicCanceler: Optimized approach using atomic.Bool
//
// The atomic approach is significantly faster in polling hot-loops where
// Done() is called millions of times per second.
package cancel

import (
	"context"
	"errors"
	"fmt"
)

// Canceler provides cancellation signaling to workers.
//
// Implementations must be safe for concurrent use:
//   - Multiple goroutines may call Done() concurrently
//   - Cancel() may be called concurrently with Done()
type Canceler interface {
	// Done returns true if cancellation has been triggered.
	Done() bool

	// Cancel triggers cancellation. Safe to call multiple times.
	Cancel()
}

// Kinds accepted by New.
const (
	KindAtomic  = "atomic"
	KindContext = "context"
)

// ErrUnknownKind is returned by New for an unrecognised kind.
var ErrUnknownKind = errors.New("cancel: unknown canceler kind")

// Kinds lists the names New accepts.
func Kinds() []string {
	return []string{KindAtomic, KindContext}
}

// New creates a Canceler by name.
func New(kind string) (Canceler, error) {
	switch kind {
	case KindAtomic:
		return NewAtomic(), nil
	case KindContext:
		return NewContext(context.Background()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Watch cancels c once ctx is done.
//
// The returned stop function detaches c from ctx; it reports false if c has
// already been cancelled through ctx.
func Watch(ctx context.Context, c Canceler) (stop func() bool) {
	return context.AfterFunc(ctx, c.Cancel)
}
