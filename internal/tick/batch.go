package tick

import "time"

// BatchTicker checks the time only every N calls to Tick().
//
// A consumer draining millions of items per second does not need a clock
// read per item; with every=1024 and interval=1s the clock is read once per
// 1024 polls and a tick fires when a second has passed.
//
// BatchTicker is not safe for concurrent use.
type BatchTicker struct {
	interval time.Duration
	every    int
	left     int
	lastTick time.Time
}

var _ Ticker = (*BatchTicker)(nil)

// NewBatch creates a BatchTicker that reads the clock every N calls.
// every values below 1 are treated as 1.
func NewBatch(interval time.Duration, every int) *BatchTicker {
	if every < 1 {
		every = 1
	}
	return &BatchTicker{
		interval: interval,
		every:    every,
		left:     every,
		lastTick: time.Now(),
	}
}

// Tick returns true if the interval has elapsed.
//
// Only every Nth call looks at the clock; the others return false at the
// cost of a decrement.
func (b *BatchTicker) Tick() bool {
	b.left--
	if b.left > 0 {
		return false
	}
	b.left = b.every

	now := time.Now()
	if now.Sub(b.lastTick) >= b.interval {
		b.lastTick = now
		return true
	}
	return false
}

// Reset restarts both the batch count and the interval.
func (b *BatchTicker) Reset() {
	b.left = b.every
	b.lastTick = time.Now()
}

// Stop is a no-op for BatchTicker (no resources to release).
func (b *BatchTicker) Stop() {}

// Every returns the batch size.
func (b *BatchTicker) Every() int {
	return b.every
}

// Interval returns the ticker's interval.
func (b *BatchTicker) Interval() time.Duration {
	return b.interval
}
