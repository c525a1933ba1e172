// Package baseline puts every queue the benchmarks compare behind the same
// queue.Queue[int] interface: the three queues of package queue plus two
// third-party queues.
//
//   - linked:  queue.LinkedQueue, unbounded SPSC with node recycling
//   - ring:    queue.RingBuffer, bounded SPSC ring with misuse guards
//   - channel: queue.ChannelQueue, buffered channel
//   - lfring:  go-lock-free-ring ShardedRing with a single shard (MPSC)
//   - xsync:   xsync.MPMCQueue (MPMC)
package baseline

import (
	"errors"
	"fmt"

	"github.com/randomizedcoder/spsc-queue/queue"
)

// Kinds accepted by New.
const (
	KindLinked  = "linked"
	KindRing    = "ring"
	KindChannel = "channel"
	KindLFRing  = "lfring"
	KindXsync   = "xsync"
)

// ErrUnknownKind is returned by New for an unrecognised kind.
var ErrUnknownKind = errors.New("baseline: unknown queue kind")

// Kinds lists the names New accepts, LinkedQueue first.
func Kinds() []string {
	return []string{KindLinked, KindRing, KindChannel, KindLFRing, KindXsync}
}

// Bounded reports whether a queue kind can refuse a Push.
func Bounded(kind string) bool {
	return kind != KindLinked
}

// New creates a queue by name. size is the capacity of bounded queues and is
// ignored by the linked queue.
func New(kind string, size int) (queue.Queue[int], error) {
	switch kind {
	case KindLinked:
		return queue.NewLinked[int](), nil
	case KindRing:
		return queue.NewRingBuffer[int](size), nil
	case KindChannel:
		return queue.NewChannel[int](size), nil
	case KindLFRing:
		r, err := NewShardedRing()
		if err != nil {
			return nil, err
		}
		return r, nil
	case KindXsync:
		return NewMPMC(size), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
