// Package tick provides periodic triggers for busy-polling loops.
//
// A pipeline consumer spins on TryDequeue and wants to do something every so
// often (log progress, check a deadline) without paying for a clock read on
// every poll. Implementations of Ticker:
//   - StdTicker: Standard library time.Ticker wrapper
//   - BatchTicker: Check the clock only every N calls
//   - AtomicTicker: Atomic timestamp comparison using runtime.nanotime
//
// The optimized implementations avoid the overhead of the Go runtime's
// central timer heap, which can be significant in high-throughput loops.
package tick

import (
	"errors"
	"fmt"
	"time"
)

// Ticker signals when a time interval has elapsed.
//
// StdTicker and AtomicTicker are safe for concurrent use; BatchTicker must
// stay on the goroutine that polls it.
type Ticker interface {
	// Tick returns true if the interval has elapsed since the last tick.
	// This is a non-blocking check.
	Tick() bool

	// Reset resets the ticker to start a new interval from now.
	Reset()

	// Stop releases any resources held by the ticker.
	// After Stop, the ticker should not be used.
	Stop()
}

// DefaultInterval is a reasonable default for progress reporting.
const DefaultInterval = time.Second

// DefaultEvery is the BatchTicker batch size used by New.
const DefaultEvery = 1024

// Kinds accepted by New.
const (
	KindStd    = "std"
	KindBatch  = "batch"
	KindAtomic = "atomic"
)

// ErrUnknownKind is returned by New for an unrecognised kind.
var ErrUnknownKind = errors.New("tick: unknown ticker kind")

// Kinds lists the names New accepts.
func Kinds() []string {
	return []string{KindStd, KindBatch, KindAtomic}
}

// New creates a Ticker by name. every only applies to KindBatch; values below
// 1 fall back to DefaultEvery.
func New(kind string, interval time.Duration, every int) (Ticker, error) {
	switch kind {
	case KindStd:
		return NewTicker(interval), nil
	case KindBatch:
		if every < 1 {
			every = DefaultEvery
		}
		return NewBatch(interval, every), nil
	case KindAtomic:
		return NewAtomicTicker(interval), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
