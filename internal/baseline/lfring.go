package baseline

import (
	"fmt"

	ring "github.com/randomizedcoder/go-lock-free-ring"
)

// shardedRingCapacity is the total capacity of the single-shard ring.
const shardedRingCapacity = 1024

// ShardedRing adapts go-lock-free-ring's MPSC ShardedRing to queue.Queue.
//
// With one shard and one producer it degenerates to a bounded SPSC ring,
// which makes it a like-for-like comparison. Its capacity is fixed at 1024.
type ShardedRing struct {
	r *ring.ShardedRing
}

// NewShardedRing creates a single-shard ring.
func NewShardedRing() (*ShardedRing, error) {
	r, err := ring.NewShardedRing(shardedRingCapacity, 1)
	if err != nil {
		return nil, fmt.Errorf("baseline: creating sharded ring: %w", err)
	}
	return &ShardedRing{r: r}, nil
}

// Push writes v through producer 0. Returns false if the shard is full.
func (s *ShardedRing) Push(v int) bool {
	return s.r.Write(0, v)
}

// Pop reads the oldest value. Returns false if the ring is empty.
func (s *ShardedRing) Pop() (int, bool) {
	v, ok := s.r.TryRead()
	if !ok {
		return 0, false
	}
	return v.(int), true
}
